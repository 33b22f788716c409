// ABOUTME: Listing page controller and its JSON mirror.
// ABOUTME: Parses filters and page, queries the directory and builds pagination links.

package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/pagination"
	"go.uber.org/zap"
)

// PlaceholderLogo is shown for libraries without a logo.
const PlaceholderLogo = "/static/placeholder-logo.svg"

type libraryCard struct {
	Name        string
	Slug        string
	Framework   string
	Description string
	WebsiteURL  string
	LogoURL     string
	Tags        []string
}

type pageLink struct {
	Page     int
	URL      string
	Active   bool
	Ellipsis bool
}

type listingData struct {
	Query      string
	Framework  string
	Tag        string
	Frameworks []string
	TagOptions []string
	Libraries  []libraryCard
	Pages      []pageLink
	PrevURL    string
	NextURL    string
	Current    int
	Submitted  bool
	Source     string
}

type listingRequest struct {
	filters models.Filters
	page    int
}

func parseListing(r *http.Request) listingRequest {
	q := r.URL.Query()
	return listingRequest{
		filters: models.Filters{
			Query:     q.Get("q"),
			Framework: q.Get("framework"),
			Tag:       q.Get("tag"),
		}.Normalize(),
		page: pagination.ParsePage(q.Get("page")),
	}
}

// pageURL links to page n keeping the active filters.
func pageURL(f models.Filters, n int) string {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Framework != "" {
		v.Set("framework", f.Framework)
	}
	if f.Tag != "" {
		v.Set("tag", f.Tag)
	}
	if n > 1 {
		v.Set("page", strconv.Itoa(n))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	req := parseListing(r)
	result := s.dir.QueryLibraries(r.Context(), req.filters, pagination.Offset(req.page), pagination.PageSize)
	view := pagination.NewView(req.page, result.Total, len(result.Libraries))

	data := listingData{
		Query:      req.filters.Query,
		Framework:  req.filters.Framework,
		Tag:        req.filters.Tag,
		Frameworks: s.dir.Frameworks(),
		TagOptions: s.dir.TagOptions(),
		Current:    view.Current,
		Submitted:  r.URL.Query().Get("submitted") == "1",
		Source:     result.Source,
	}
	if data.Framework == "" {
		data.Framework = models.AllOption
	}

	for i := range result.Libraries {
		lib := &result.Libraries[i]
		card := libraryCard{
			Name:        lib.Name,
			Slug:        lib.Slug,
			Framework:   lib.FrameworkLabel(),
			Description: lib.Description,
			WebsiteURL:  lib.WebsiteURL,
			LogoURL:     lib.LogoURL,
			Tags:        lib.SortedTags(),
		}
		if card.LogoURL == "" {
			card.LogoURL = PlaceholderLogo
		}
		data.Libraries = append(data.Libraries, card)
	}

	for _, m := range view.Markers {
		if m.Ellipsis {
			data.Pages = append(data.Pages, pageLink{Ellipsis: true})
			continue
		}
		data.Pages = append(data.Pages, pageLink{
			Page:   m.Page,
			URL:    pageURL(req.filters, m.Page),
			Active: m.Page == view.Current,
		})
	}
	if view.HasPrev {
		data.PrevURL = pageURL(req.filters, view.Current-1)
	}
	if view.HasNext {
		data.NextURL = pageURL(req.filters, view.Current+1)
	}

	body, err := execute(s.views.index, data)
	if err != nil {
		s.logger.Error("render listing failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	_ = writeHTML(w, http.StatusOK, body)
}

type librariesResponse struct {
	Libraries  []models.Library    `json:"libraries"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Pages      []pagination.Marker `json:"pages"`
	Total      *int                `json:"total,omitempty"`
	Source     string              `json:"source"`
}

func (s *Server) handleAPILibraries(w http.ResponseWriter, r *http.Request) {
	req := parseListing(r)
	result := s.dir.QueryLibraries(r.Context(), req.filters, pagination.Offset(req.page), pagination.PageSize)
	view := pagination.NewView(req.page, result.Total, len(result.Libraries))

	libs := result.Libraries
	if libs == nil {
		libs = []models.Library{}
	}
	_ = writeJSON(w, http.StatusOK, librariesResponse{
		Libraries:  libs,
		Page:       view.Current,
		TotalPages: view.Total,
		Pages:      view.Markers,
		Total:      result.Total,
		Source:     result.Source,
	})
}

func (s *Server) handleAPITags(w http.ResponseWriter, r *http.Request) {
	tags, source := s.dir.ListTags(r.Context())
	_ = writeJSON(w, http.StatusOK, map[string]any{
		"tags":   tags,
		"source": source,
	})
}
