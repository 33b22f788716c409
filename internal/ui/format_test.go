// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates library display, pagination and markdown rendering.

package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/pagination"
)

func init() {
	color.NoColor = true
}

func TestFormatLibraryListItem(t *testing.T) {
	lib := &models.Library{
		Name:        "Radix UI",
		Slug:        "radix-ui",
		Description: "Unstyled primitives.\nSecond line.",
		Tags:        []string{"headless", "components"},
	}

	output := FormatLibraryListItem(lib)

	for _, want := range []string{"Radix UI", "radix-ui", "[Tools]", "Unstyled primitives.", "components, headless"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Second line.") {
		t.Error("expected only the first description line")
	}
}

func TestFormatDescription(t *testing.T) {
	output, err := FormatDescription("# Hello\n\nThis is **bold** text.")
	if err != nil {
		t.Fatalf("failed to format description: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatLibraryHeader(t *testing.T) {
	lib := models.NewLibrary("Vitest", "vitest")
	lib.Framework = "Tools"
	lib.WebsiteURL = "https://vitest.dev"

	output := FormatLibraryHeader(lib)
	for _, want := range []string{"Vitest", "Slug: vitest", "https://vitest.dev", "Created:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestFormatTagList(t *testing.T) {
	output := FormatTagList([]models.TagCount{{Name: "forms", Count: 5}, {Name: "icons", Count: 3}})

	if !strings.Contains(output, "forms") || !strings.Contains(output, "(5)") {
		t.Errorf("unexpected tag list:\n%s", output)
	}
}

func TestFormatPagination(t *testing.T) {
	total := 20 * pagination.PageSize
	view := pagination.NewView(10, &total, pagination.PageSize)

	got := FormatPagination(view)
	want := "‹ 1 … 9 [10] 11 … 20 ›\n"
	if got != want {
		t.Errorf("FormatPagination() = %q, want %q", got, want)
	}
}

func TestSuccessAndError(t *testing.T) {
	if !strings.Contains(Success("done"), "done") {
		t.Error("expected success message")
	}
	if !strings.Contains(Error("failed"), "failed") {
		t.Error("expected error message")
	}
}
