// ABOUTME: Terminal UI formatting for libdir output.
// ABOUTME: Uses glamour for descriptions and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/pagination"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatLibraryListItem(lib *models.Library) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s %s\n", bold(lib.Name), faint(lib.Slug), yellow("["+lib.FrameworkLabel()+"]")))

	if desc := firstLine(lib.Description); desc != "" {
		sb.WriteString(fmt.Sprintf("      %s\n", desc))
	}
	if tags := lib.SortedTags(); len(tags) > 0 {
		sb.WriteString(fmt.Sprintf("      %s %s\n", faint("Tags:"), cyan(strings.Join(tags, ", "))))
	}
	return sb.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if len(s) > 100 {
		s = s[:97] + "..."
	}
	return s
}

func FormatDescription(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, nil //nolint:nilerr // fall back to raw text
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // fall back to raw text
	}
	return out, nil
}

func FormatLibraryHeader(lib *models.Library) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(lib.Name)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Slug:"), lib.Slug))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Framework:"), yellow(lib.FrameworkLabel())))
	if lib.WebsiteURL != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Website:"), lib.WebsiteURL))
	}
	if lib.LogoURL != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Logo:"), lib.LogoURL))
	}
	if !lib.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(lib.CreatedAt.Format("2006-01-02 15:04"))))
	}
	if tags := lib.SortedTags(); len(tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(tags, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func FormatTagList(tags []models.TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan(t.Name),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

// FormatPagination renders markers as "‹ 1 … 4 [5] 6 … 20 ›".
func FormatPagination(view pagination.View) string {
	parts := make([]string, 0, len(view.Markers)+2)
	if view.HasPrev {
		parts = append(parts, "‹")
	}
	for _, m := range view.Markers {
		switch {
		case m.Ellipsis:
			parts = append(parts, faint("…"))
		case m.Page == view.Current:
			parts = append(parts, bold(fmt.Sprintf("[%d]", m.Page)))
		default:
			parts = append(parts, fmt.Sprintf("%d", m.Page))
		}
	}
	if view.HasNext {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ") + "\n"
}

func FormatSource(source string) string {
	return faint(fmt.Sprintf("source: %s", source)) + "\n"
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
