// ABOUTME: Submission controller: renders the form and handles POSTed entries.
// ABOUTME: Redirects to the listing on success and back to the form with an error marker.

package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/harper/libdir/internal/directory"
	"github.com/harper/libdir/internal/models"
	"go.uber.org/zap"
)

// NotConfiguredMarker is the error marker used when submissions are disabled.
const NotConfiguredMarker = "supabase_not_configured"

type submitData struct {
	Enabled       bool
	Error         string
	NotConfigured bool
	Frameworks    []string
	Framework     string
	Tags          []models.TagCount
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	marker := r.URL.Query().Get("error")
	data := submitData{
		Enabled:       s.dir.WriteEnabled(),
		Error:         marker,
		NotConfigured: marker == NotConfiguredMarker,
		Framework:     directory.DefaultFramework,
	}
	data.Tags, _ = s.dir.ListTags(r.Context())
	for _, fw := range s.dir.Frameworks() {
		if fw != models.AllOption {
			data.Frameworks = append(data.Frameworks, fw)
		}
	}

	body, err := execute(s.views.submit, data)
	if err != nil {
		s.logger.Error("render submit failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	_ = writeHTML(w, http.StatusOK, body)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		redirectError(w, r, err.Error())
		return
	}

	sub := directory.Submission{
		Name:        r.FormValue("name"),
		Slug:        r.FormValue("slug"),
		Description: r.FormValue("description"),
		Framework:   r.FormValue("framework"),
		WebsiteURL:  r.FormValue("website_url"),
		LogoURL:     r.FormValue("logo_url"),
		Tags:        r.FormValue("tags"),
	}

	lib, err := s.dir.Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, directory.ErrNotConfigured) {
			redirectError(w, r, NotConfiguredMarker)
			return
		}
		s.logger.Warn("submission failed", zap.String("name", sub.Name), zap.Error(err))
		redirectError(w, r, err.Error())
		return
	}

	s.logger.Info("submission stored", zap.String("slug", lib.Slug))
	http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/submit?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
