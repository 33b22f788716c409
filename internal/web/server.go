// ABOUTME: HTTP surface for the directory: listing, submission and JSON endpoints.
// ABOUTME: Routes are served by chi with request ids, panic recovery and zap logging.

package web

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harper/libdir/internal/directory"
	"github.com/harper/libdir/internal/models"
	"go.uber.org/zap"
)

// Directory is what the handlers need from the backend adapter.
type Directory interface {
	QueryLibraries(ctx context.Context, f models.Filters, offset, limit int) directory.Page
	Submit(ctx context.Context, s directory.Submission) (*models.Library, error)
	ListTags(ctx context.Context) ([]models.TagCount, string)
	WriteEnabled() bool
	Frameworks() []string
	TagOptions() []string
}

type Server struct {
	dir    Directory
	logger *zap.Logger
	views  *views
}

func NewServer(dir Directory, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	return &Server{dir: dir, logger: logger, views: v}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/submit", s.handleSubmitForm)
	r.Post("/submit", s.handleSubmit)
	r.Get("/healthz", s.handleHealth)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Route("/api", func(api chi.Router) {
		api.Get("/libraries", s.handleAPILibraries)
		api.Get("/tags", s.handleAPITags)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"write_enabled": s.dir.WriteEnabled(),
	})
}
