// ABOUTME: Pagination planning for the listing page.
// ABOUTME: Computes compact page-marker sequences like 1 … 4 5 6 … 20.

package pagination

import (
	"math"
	"strconv"
	"strings"
)

// PageSize is the fixed number of libraries shown per page.
const PageSize = 30

// compactThreshold is the largest page count rendered without ellipses.
const compactThreshold = 7

// Marker is one rendered pagination slot: a page number or an ellipsis.
type Marker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func pageMarker(n int) Marker { return Marker{Page: n} }

var ellipsis = Marker{Ellipsis: true}

// Plan returns the markers to render for current out of total pages.
func Plan(current, total int) []Marker {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}

	if total <= compactThreshold {
		markers := make([]Marker, 0, total)
		for i := 1; i <= total; i++ {
			markers = append(markers, pageMarker(i))
		}
		return markers
	}

	markers := []Marker{pageMarker(1)}
	if current > 3 {
		markers = append(markers, ellipsis)
	} else {
		markers = append(markers, pageMarker(2))
	}
	for _, p := range []int{current - 1, current, current + 1} {
		if p > 1 && p < total {
			markers = append(markers, pageMarker(p))
		}
	}
	if current < total-2 {
		markers = append(markers, ellipsis)
	} else {
		markers = append(markers, pageMarker(total-1))
	}
	markers = append(markers, pageMarker(total))

	return collapse(markers)
}

// collapse drops markers equal to their predecessor.
func collapse(markers []Marker) []Marker {
	out := markers[:1]
	for _, m := range markers[1:] {
		if m == out[len(out)-1] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ParsePage converts the page query parameter into a 1-based page number.
// Non-numeric, non-finite and non-positive values yield 1; fractions floor.
func ParsePage(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}

// Offset returns the zero-based row offset of page.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// TotalPages converts a row count into a page count. It reports false when
// the count is unknown or zero.
func TotalPages(totalCount *int) (int, bool) {
	if totalCount == nil || *totalCount <= 0 {
		return 0, false
	}
	pages := (*totalCount + PageSize - 1) / PageSize
	return max(pages, 1), true
}

// EstimateTotal is the page count used for rendering. Without a known count
// it assumes one more page when the current page came back full.
func EstimateTotal(current int, totalCount *int, rows int) int {
	if pages, ok := TotalPages(totalCount); ok {
		return pages
	}
	if rows >= PageSize {
		return current + 1
	}
	return current
}

// View is the pagination state handed to renderers.
type View struct {
	Current int      `json:"page"`
	Total   int      `json:"total_pages"`
	Markers []Marker `json:"pages"`
	HasPrev bool     `json:"has_prev"`
	HasNext bool     `json:"has_next"`
}

func NewView(current int, totalCount *int, rows int) View {
	if current < 1 {
		current = 1
	}
	total := EstimateTotal(current, totalCount, rows)
	return View{
		Current: current,
		Total:   total,
		Markers: Plan(current, total),
		HasPrev: current > 1,
		HasNext: current < total,
	}
}
