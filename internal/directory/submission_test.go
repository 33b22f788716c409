// ABOUTME: Tests for submission normalization.
// ABOUTME: Covers defaults, slug derivation, tag parsing and URL validation.

package directory

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeDefaults(t *testing.T) {
	lib, tags, err := Submission{Name: "  Foo Bar ", Tags: "a, b, a,, "}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if lib.Name != "Foo Bar" || lib.Slug != "foo-bar" || lib.Framework != "React" {
		t.Errorf("unexpected library %+v", lib)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if lib.CreatedAt.IsZero() {
		t.Error("expected creation time")
	}
}

func TestNormalizeSlug(t *testing.T) {
	lib, _, err := Submission{Name: "Anything", Slug: "My Custom Slug!"}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if lib.Slug != "my-custom-slug" {
		t.Errorf("expected re-slugified slug, got %q", lib.Slug)
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
	}{
		{"missing name", Submission{}},
		{"symbols only", Submission{Name: "!!!"}},
		{"no ascii letters", Submission{Name: "日本語"}},
		{"relative website", Submission{Name: "x", WebsiteURL: "example.com"}},
		{"bad logo scheme", Submission{Name: "x", LogoURL: "javascript:alert(1)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.sub.Normalize(); !errors.Is(err, ErrInvalidSubmission) {
				t.Errorf("expected ErrInvalidSubmission, got %v", err)
			}
		})
	}
}

func TestNormalizeKeepsURLs(t *testing.T) {
	lib, _, err := Submission{
		Name:       "x",
		WebsiteURL: " https://example.com/docs ",
		LogoURL:    "http://cdn.example.com/logo.png",
	}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if lib.WebsiteURL != "https://example.com/docs" || lib.LogoURL != "http://cdn.example.com/logo.png" {
		t.Errorf("unexpected urls %q %q", lib.WebsiteURL, lib.LogoURL)
	}
}
