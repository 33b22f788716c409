// ABOUTME: Library reads and writes against the view and the base tables.
// ABOUTME: Builds filtered, paginated queries in either SQL dialect.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harper/libdir/internal/models"
)

const (
	libraryColumns = `id, ` + insertColumns
	insertColumns  = `name, slug, description, framework, website_url, logo_url, created_at`
)

const (
	viewTable = "library_with_tags"
	baseTable = "libraries"
)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// CreateLibrary inserts lib and sets lib.ID to the id the database assigned.
func CreateLibrary(ctx context.Context, c *Conn, lib *models.Library) error {
	if c == nil {
		return ErrNotConfigured
	}
	if lib.CreatedAt.IsZero() {
		lib.CreatedAt = time.Now().UTC()
	}
	return c.DB.QueryRowContext(ctx, c.rebind(
		`INSERT INTO libraries (`+insertColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		lib.Name, lib.Slug, lib.Description, lib.Framework,
		lib.WebsiteURL, lib.LogoURL, toMillis(lib.CreatedAt),
	).Scan(&lib.ID)
}

// where renders the shared q/framework predicates plus any extra ones.
func where(d Dialect, f models.Filters, extra []string, extraArgs []any) (string, []any) {
	var clauses []string
	var args []any
	if f.Query != "" {
		clauses = append(clauses, d.fold("name")+` LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(f.Query))+"%")
	}
	if f.Framework != "" {
		clauses = append(clauses, "framework = ?")
		args = append(args, f.Framework)
	}
	clauses = append(clauses, extra...)
	args = append(args, extraArgs...)
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func viewWhere(c *Conn, f models.Filters) (string, []any) {
	if f.Tag == "" {
		return where(c.Dialect, f, nil, nil)
	}
	return where(c.Dialect, f, []string{c.Dialect.tagMember()}, []any{f.Tag})
}

func tableWhere(c *Conn, f models.Filters, ids []string) (string, []any) {
	if ids == nil {
		return where(c.Dialect, f, nil, nil)
	}
	clause, args := c.Dialect.inList("id", ids)
	return where(c.Dialect, f, []string{clause}, args)
}

func pageClause(offset, limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

func count(ctx context.Context, c *Conn, table, clause string, args []any) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, c.rebind(`SELECT COUNT(*) FROM `+table+clause), args...).Scan(&n)
	return n, err
}

// CountView counts view rows matching f.
func CountView(ctx context.Context, c *Conn, f models.Filters) (int, error) {
	if c == nil {
		return 0, ErrNotConfigured
	}
	clause, args := viewWhere(c, f)
	n, err := count(ctx, c, viewTable, clause, args)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", viewTable, err)
	}
	return n, nil
}

// QueryView returns one page of view rows matching f, newest first.
func QueryView(ctx context.Context, c *Conn, f models.Filters, offset, limit int) ([]models.Library, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	clause, args := viewWhere(c, f)
	query := `SELECT ` + libraryColumns + `, tags FROM ` + viewTable + clause +
		` ORDER BY created_at DESC, id DESC` + pageClause(offset, limit)

	rows, err := c.DB.QueryContext(ctx, c.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", viewTable, err)
	}
	defer func() { _ = rows.Close() }()

	libs := []models.Library{}
	for rows.Next() {
		var lib models.Library
		var created int64
		tags := c.Dialect.newTagsColumn()
		if err := rows.Scan(&lib.ID, &lib.Name, &lib.Slug, &lib.Description, &lib.Framework,
			&lib.WebsiteURL, &lib.LogoURL, &created, tags); err != nil {
			return nil, err
		}
		lib.CreatedAt = fromMillis(created)
		names, err := tags.Tags()
		if err != nil {
			return nil, err
		}
		lib.Tags = models.UniqueTags(names)
		libs = append(libs, lib)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return libs, nil
}

// CountLibraries counts base rows matching f. A non-nil ids restricts the rows to that set.
func CountLibraries(ctx context.Context, c *Conn, f models.Filters, ids []string) (int, error) {
	if c == nil {
		return 0, ErrNotConfigured
	}
	if ids != nil && len(ids) == 0 {
		return 0, nil
	}
	clause, args := tableWhere(c, f, ids)
	n, err := count(ctx, c, baseTable, clause, args)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", baseTable, err)
	}
	return n, nil
}

// QueryLibraries returns one page of base rows without tags. A limit of zero returns every row.
func QueryLibraries(ctx context.Context, c *Conn, f models.Filters, ids []string, offset, limit int) ([]models.Library, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	if ids != nil && len(ids) == 0 {
		return []models.Library{}, nil
	}
	clause, args := tableWhere(c, f, ids)
	query := `SELECT ` + libraryColumns + ` FROM ` + baseTable + clause +
		` ORDER BY created_at DESC, id DESC` + pageClause(offset, limit)

	rows, err := c.DB.QueryContext(ctx, c.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", baseTable, err)
	}
	defer func() { _ = rows.Close() }()
	return scanLibraries(rows)
}

func scanLibraries(rows *sql.Rows) ([]models.Library, error) {
	libs := []models.Library{}
	for rows.Next() {
		var lib models.Library
		var created int64
		if err := rows.Scan(&lib.ID, &lib.Name, &lib.Slug, &lib.Description, &lib.Framework,
			&lib.WebsiteURL, &lib.LogoURL, &created); err != nil {
			return nil, err
		}
		lib.CreatedAt = fromMillis(created)
		lib.Tags = []string{}
		libs = append(libs, lib)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return libs, nil
}

// GetLibraryBySlug returns the newest library with slug, tags attached.
func GetLibraryBySlug(ctx context.Context, c *Conn, slug string) (*models.Library, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	rows, err := c.DB.QueryContext(ctx, c.rebind(
		`SELECT `+libraryColumns+` FROM libraries WHERE slug = ? ORDER BY created_at DESC, id DESC LIMIT 1`), slug)
	if err != nil {
		return nil, err
	}
	libs, err := scanLibraries(rows)
	_ = rows.Close()
	if err != nil {
		return nil, err
	}
	if len(libs) == 0 {
		return nil, sql.ErrNoRows
	}

	if err := AttachTags(ctx, c, libs); err != nil {
		return nil, err
	}
	return &libs[0], nil
}

func SlugExists(ctx context.Context, c *Conn, slug string) (bool, error) {
	if c == nil {
		return false, ErrNotConfigured
	}
	var n int
	err := c.DB.QueryRowContext(ctx, c.rebind(`SELECT COUNT(*) FROM libraries WHERE slug = ?`), slug).Scan(&n)
	return n > 0, err
}

// AttachTags fills each library's tags from the association table, de-duplicated and sorted.
func AttachTags(ctx context.Context, c *Conn, libs []models.Library) error {
	if len(libs) == 0 {
		return nil
	}
	ids := make([]string, len(libs))
	for i := range libs {
		ids[i] = libs[i].ID
	}
	byLibrary, err := TagsForLibraries(ctx, c, ids)
	if err != nil {
		return err
	}
	for i := range libs {
		tags := byLibrary[libs[i].ID]
		if tags == nil {
			tags = []string{}
		}
		libs[i].Tags = tags
	}
	return nil
}
