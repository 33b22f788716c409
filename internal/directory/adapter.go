// ABOUTME: Backend query adapter with the view, tables and sample read cascade.
// ABOUTME: Also owns the non-transactional library and tag write path.

package directory

import (
	"context"

	"github.com/harper/libdir/internal/db"
	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/sample"
	"go.uber.org/zap"
)

// Sources reported in Page.Source.
const (
	SourceView   = "view"
	SourceTables = "tables"
	SourceSample = "sample"
)

type Page struct {
	Libraries []models.Library `json:"libraries"`
	// Total is nil when the backend could not count the matches.
	Total  *int   `json:"total,omitempty"`
	Source string `json:"source"`
}

type Repository interface {
	QueryLibraries(ctx context.Context, f models.Filters, offset, limit int) Page
	InsertLibrary(ctx context.Context, lib *models.Library, tags []string) error
}

type Adapter struct {
	backend *db.Backend
	sample  *sample.Store
	logger  *zap.Logger
}

var _ Repository = (*Adapter)(nil)

// NewAdapter builds an adapter. A nil backend serves sample data only; a nil store uses the embedded dataset.
func NewAdapter(backend *db.Backend, store *sample.Store, logger *zap.Logger) *Adapter {
	if store == nil {
		store = sample.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{backend: backend, sample: store, logger: logger}
}

func (a *Adapter) readConn() *db.Conn {
	if a.backend == nil {
		return nil
	}
	return a.backend.Read
}

func (a *Adapter) writeConn() *db.Conn {
	if a.backend == nil {
		return nil
	}
	return a.backend.Write
}

func (a *Adapter) ReadEnabled() bool  { return a.readConn() != nil }
func (a *Adapter) WriteEnabled() bool { return a.writeConn() != nil }

// Frameworks is the framework filter vocabulary, "All" first.
func (a *Adapter) Frameworks() []string { return a.sample.Frameworks() }

// TagOptions is the curated tag filter vocabulary.
func (a *Adapter) TagOptions() []string { return a.sample.Tags() }

// QueryLibraries tries the view, then the base tables, then the sample data.
// The first non-empty result wins. Backend failures are logged, never returned.
func (a *Adapter) QueryLibraries(ctx context.Context, f models.Filters, offset, limit int) Page {
	f = f.Normalize()
	if offset < 0 {
		offset = 0
	}

	conn := a.readConn()
	if conn == nil {
		return a.fromSample(f, offset, limit)
	}

	page, err := a.queryView(ctx, conn, f, offset, limit)
	if err != nil {
		a.logger.Warn("view query failed, falling back to tables", zap.Error(err))
		page, err = a.queryTables(ctx, conn, f, offset, limit)
		if err != nil {
			a.logger.Error("table query failed", zap.Error(err))
		}
	}
	if err == nil && len(page.Libraries) > 0 {
		return page
	}
	return a.fromSample(f, offset, limit)
}

func (a *Adapter) queryView(ctx context.Context, conn *db.Conn, f models.Filters, offset, limit int) (Page, error) {
	page := Page{Source: SourceView}
	total, countErr := db.CountView(ctx, conn, f)

	rows, err := db.QueryView(ctx, conn, f, offset, limit)
	if err != nil {
		return Page{}, err
	}
	if countErr != nil {
		a.logger.Warn("view count failed", zap.Error(countErr))
	} else {
		page.Total = &total
	}
	page.Libraries = rows
	return page, nil
}

func (a *Adapter) queryTables(ctx context.Context, conn *db.Conn, f models.Filters, offset, limit int) (Page, error) {
	page := Page{Source: SourceTables}

	var ids []string
	if f.Tag != "" {
		ids = a.libraryIDsForTag(ctx, conn, f.Tag)
	}

	if total, err := db.CountLibraries(ctx, conn, f, ids); err != nil {
		a.logger.Warn("table count failed", zap.Error(err))
	} else {
		page.Total = &total
	}

	rows, err := db.QueryLibraries(ctx, conn, f, ids, offset, limit)
	if err != nil {
		return Page{}, err
	}
	if err := db.AttachTags(ctx, conn, rows); err != nil {
		a.logger.Warn("tag attachment failed", zap.Error(err))
	}
	page.Libraries = rows
	return page, nil
}

// libraryIDsForTag resolves a tag filter to library ids. Any failure yields an empty set.
func (a *Adapter) libraryIDsForTag(ctx context.Context, conn *db.Conn, tag string) []string {
	tagID, err := db.TagIDByName(ctx, conn, tag)
	if err != nil {
		if !db.IsNoRows(err) {
			a.logger.Warn("tag lookup failed", zap.String("tag", tag), zap.Error(err))
		}
		return []string{}
	}
	ids, err := db.LibraryIDsForTag(ctx, conn, tagID)
	if err != nil {
		a.logger.Warn("tag association lookup failed", zap.String("tag", tag), zap.Error(err))
		return []string{}
	}
	return ids
}

func (a *Adapter) fromSample(f models.Filters, offset, limit int) Page {
	rows, total := a.sample.Query(f, offset, limit)
	a.logger.Debug("serving sample data", zap.Int("total", total), zap.Int("offset", offset))
	return Page{Libraries: rows, Total: &total, Source: SourceSample}
}

// InsertLibrary writes the library row, then upserts each tag and its association.
// Steps are not wrapped in a transaction: the first failure stops the chain and
// leaves earlier steps committed.
func (a *Adapter) InsertLibrary(ctx context.Context, lib *models.Library, tags []string) error {
	conn := a.writeConn()
	if conn == nil {
		return ErrNotConfigured
	}

	if err := db.CreateLibrary(ctx, conn, lib); err != nil {
		a.logger.Error("insert library failed", zap.String("slug", lib.Slug), zap.Error(err))
		return err
	}

	for _, name := range models.UniqueTags(tags) {
		tag, err := db.GetOrCreateTag(ctx, conn, name)
		if err != nil {
			a.logger.Error("upsert tag failed", zap.String("tag", name), zap.Error(err))
			return err
		}
		if err := db.AddTagToLibrary(ctx, conn, lib.ID, tag.ID); err != nil {
			a.logger.Error("associate tag failed", zap.String("tag", name), zap.Error(err))
			return err
		}
	}

	a.logger.Info("library submitted", zap.String("id", lib.ID), zap.String("slug", lib.Slug), zap.Int("tags", len(tags)))
	return nil
}

// Submit normalizes a form submission and writes it.
func (a *Adapter) Submit(ctx context.Context, s Submission) (*models.Library, error) {
	if !a.WriteEnabled() {
		return nil, ErrNotConfigured
	}
	lib, tags, err := s.Normalize()
	if err != nil {
		return nil, err
	}
	if err := a.InsertLibrary(ctx, lib, tags); err != nil {
		return nil, err
	}
	return lib, nil
}

// ListTags returns tag usage counts from the backend, or the sample counts when that is unavailable or empty.
func (a *Adapter) ListTags(ctx context.Context) ([]models.TagCount, string) {
	if conn := a.readConn(); conn != nil {
		tags, err := db.ListAllTags(ctx, conn)
		if err != nil {
			a.logger.Warn("tag listing failed", zap.Error(err))
		} else if len(tags) > 0 {
			return tags, SourceTables
		}
	}
	return a.sample.TagCounts(), SourceSample
}

// GetLibrary looks a library up by slug in the backend, then in the sample data.
func (a *Adapter) GetLibrary(ctx context.Context, slug string) (*models.Library, error) {
	if conn := a.readConn(); conn != nil {
		lib, err := db.GetLibraryBySlug(ctx, conn, slug)
		if err == nil {
			return lib, nil
		}
		if !db.IsNoRows(err) {
			a.logger.Warn("library lookup failed", zap.String("slug", slug), zap.Error(err))
		}
	}
	if lib, ok := a.sample.BySlug(slug); ok {
		return &lib, nil
	}
	return nil, ErrLibraryNotFound
}
