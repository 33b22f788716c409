// ABOUTME: Database operations for tags and library-tag associations.
// ABOUTME: Provides idempotent tag upserts, lookups and usage counts.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/harper/libdir/internal/models"
)

// GetOrCreateTag upserts a tag by name and returns the stored identity.
func GetOrCreateTag(ctx context.Context, c *Conn, name string) (*models.Tag, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	tag := models.NewTag(name)
	if tag.Name == "" {
		return nil, errors.New("tag name is empty")
	}

	if _, err := c.DB.ExecContext(ctx, c.rebind(
		`INSERT INTO tags (id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`),
		tag.ID, tag.Name,
	); err != nil {
		return nil, err
	}

	if err := c.DB.QueryRowContext(ctx, c.rebind(`SELECT id FROM tags WHERE name = ?`), tag.Name).Scan(&tag.ID); err != nil {
		return nil, err
	}
	return tag, nil
}

func AddTagToLibrary(ctx context.Context, c *Conn, libraryID, tagID string) error {
	if c == nil {
		return ErrNotConfigured
	}
	_, err := c.DB.ExecContext(ctx, c.rebind(
		`INSERT INTO library_tags (library_id, tag_id) VALUES (?, ?) ON CONFLICT (library_id, tag_id) DO NOTHING`),
		libraryID, tagID,
	)
	return err
}

// TagIDByName returns sql.ErrNoRows when no tag has that name.
func TagIDByName(ctx context.Context, c *Conn, name string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	var id string
	err := c.DB.QueryRowContext(ctx, c.rebind(`SELECT id FROM tags WHERE name = ?`), name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func LibraryIDsForTag(ctx context.Context, c *Conn, tagID string) ([]string, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	rows, err := c.DB.QueryContext(ctx, c.rebind(`SELECT library_id FROM library_tags WHERE tag_id = ?`), tagID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// TagsForLibraries maps each library id to its sorted, de-duplicated tag names.
func TagsForLibraries(ctx context.Context, c *Conn, ids []string) (map[string][]string, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	clause, args := c.Dialect.inList("lt.library_id", ids)
	rows, err := c.DB.QueryContext(ctx, c.rebind(
		`SELECT lt.library_id, t.name FROM library_tags lt
		 JOIN tags t ON t.id = lt.tag_id
		 WHERE `+clause), args...)
	if err != nil {
		return nil, fmt.Errorf("query library tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var libraryID, name string
		if err := rows.Scan(&libraryID, &name); err != nil {
			return nil, err
		}
		out[libraryID] = append(out[libraryID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for id, names := range out {
		names = models.UniqueTags(names)
		sort.Strings(names)
		out[id] = names
	}
	return out, nil
}

// ListAllTags returns every tag with the number of libraries using it, ordered by name.
func ListAllTags(ctx context.Context, c *Conn) ([]models.TagCount, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	rows, err := c.DB.QueryContext(ctx,
		`SELECT t.name, COUNT(lt.library_id) AS count
		 FROM tags t
		 LEFT JOIN library_tags lt ON t.id = lt.tag_id
		 GROUP BY t.id, t.name
		 ORDER BY t.name`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tags := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// IsNoRows reports whether err is a missing-row lookup.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
