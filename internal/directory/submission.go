// ABOUTME: Submission form fields and their normalization into a library record.
// ABOUTME: Applies defaults, slug derivation, tag splitting and URL checks.

package directory

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/harper/libdir/internal/models"
)

// DefaultFramework is applied when a submission leaves framework blank.
const DefaultFramework = "React"

type Submission struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Framework   string `json:"framework,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

// Normalize validates the submission and builds the library to store plus its tag names.
func (s Submission) Normalize() (*models.Library, []string, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", ErrInvalidSubmission)
	}

	slug := models.Slugify(strings.TrimSpace(s.Slug))
	if slug == "" {
		slug = models.Slugify(name)
	}
	if !models.IsSlug(slug) {
		return nil, nil, fmt.Errorf("%w: name must contain letters or digits", ErrInvalidSubmission)
	}

	website, err := normalizeURL("website_url", s.WebsiteURL)
	if err != nil {
		return nil, nil, err
	}
	logo, err := normalizeURL("logo_url", s.LogoURL)
	if err != nil {
		return nil, nil, err
	}

	framework := strings.TrimSpace(s.Framework)
	if framework == "" {
		framework = DefaultFramework
	}

	lib := models.NewLibrary(name, slug)
	lib.Description = strings.TrimSpace(s.Description)
	lib.Framework = framework
	lib.WebsiteURL = website
	lib.LogoURL = logo

	tags := models.SplitTags(s.Tags)
	lib.Tags = tags
	return lib, tags, nil
}

func normalizeURL(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %s must be an http(s) URL", ErrInvalidSubmission, field)
	}
	return u.String(), nil
}
