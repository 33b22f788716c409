// ABOUTME: Tests for pagination planning and page parameter parsing.
// ABOUTME: Includes exhaustive property checks over small page counts.

package pagination

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pages(ns ...int) []Marker {
	out := make([]Marker, 0, len(ns))
	for _, n := range ns {
		if n == 0 {
			out = append(out, Marker{Ellipsis: true})
			continue
		}
		out = append(out, Marker{Page: n})
	}
	return out
}

func TestPlanCompactTotals(t *testing.T) {
	for total := 1; total <= 7; total++ {
		for current := 1; current <= total; current++ {
			got := Plan(current, total)
			want := make([]Marker, 0, total)
			for i := 1; i <= total; i++ {
				want = append(want, Marker{Page: i})
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Plan(%d, %d) mismatch (-want +got):\n%s", current, total, diff)
			}
		}
	}
}

func TestPlanExamples(t *testing.T) {
	// 0 stands for an ellipsis marker.
	tests := []struct {
		current, total int
		want           []Marker
	}{
		{current: 1, total: 20, want: pages(1, 2, 0, 20)},
		{current: 3, total: 20, want: pages(1, 2, 3, 4, 0, 20)},
		{current: 4, total: 20, want: pages(1, 0, 3, 4, 5, 0, 20)},
		{current: 10, total: 20, want: pages(1, 0, 9, 10, 11, 0, 20)},
		{current: 18, total: 20, want: pages(1, 0, 17, 18, 19, 20)},
		{current: 19, total: 20, want: pages(1, 0, 18, 19, 20)},
		{current: 20, total: 20, want: pages(1, 0, 19, 20)},
		{current: 1, total: 8, want: pages(1, 2, 0, 8)},
	}

	for _, tt := range tests {
		got := Plan(tt.current, tt.total)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Plan(%d, %d) mismatch (-want +got):\n%s", tt.current, tt.total, diff)
		}
	}
}

func TestPlanProperties(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for current := 1; current <= total; current++ {
			markers := Plan(current, total)

			if markers[0] != (Marker{Page: 1}) {
				t.Fatalf("Plan(%d, %d) does not start at page 1: %v", current, total, markers)
			}
			if markers[len(markers)-1] != (Marker{Page: total}) {
				t.Fatalf("Plan(%d, %d) does not end at page %d: %v", current, total, total, markers)
			}

			sawCurrent := false
			for i, m := range markers {
				if m.Page == current {
					sawCurrent = true
				}
				if i == 0 {
					continue
				}
				prev := markers[i-1]
				if m == prev {
					t.Fatalf("Plan(%d, %d) has adjacent duplicates at %d: %v", current, total, i, markers)
				}
				if m.Ellipsis || prev.Ellipsis {
					continue
				}
				if m.Page != prev.Page+1 {
					t.Fatalf("Plan(%d, %d) skips pages without an ellipsis: %v", current, total, markers)
				}
			}
			if !sawCurrent {
				t.Fatalf("Plan(%d, %d) omits the current page: %v", current, total, markers)
			}

			for i, m := range markers {
				if !m.Ellipsis {
					continue
				}
				if i == 0 || i == len(markers)-1 {
					t.Fatalf("Plan(%d, %d) has an ellipsis at the edge: %v", current, total, markers)
				}
				if markers[i+1].Page-markers[i-1].Page < 2 {
					t.Fatalf("Plan(%d, %d) has an ellipsis hiding nothing: %v", current, total, markers)
				}
			}
		}
	}
}

func TestPlanClampsInput(t *testing.T) {
	if diff := cmp.Diff(pages(1), Plan(0, 0)); diff != "" {
		t.Errorf("Plan(0, 0) mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":      1,
		"1":     1,
		"7":     7,
		"2.9":   2,
		"0":     1,
		"-4":    1,
		"abc":   1,
		"NaN":   1,
		"Inf":   1,
		" 3 ":   3,
		"1e100": 2147483647,
	}

	for raw, want := range tests {
		if got := ParsePage(raw); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1); got != 0 {
		t.Errorf("Offset(1) = %d, want 0", got)
	}
	if got := Offset(3); got != 60 {
		t.Errorf("Offset(3) = %d, want 60", got)
	}
	if got := Offset(-1); got != 0 {
		t.Errorf("Offset(-1) = %d, want 0", got)
	}
}

func TestEstimateTotal(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name    string
		current int
		count   *int
		rows    int
		want    int
	}{
		{name: "known count", current: 1, count: intPtr(61), rows: 30, want: 3},
		{name: "exact multiple", current: 1, count: intPtr(60), rows: 30, want: 2},
		{name: "unknown full page", current: 4, count: nil, rows: PageSize, want: 5},
		{name: "unknown partial page", current: 4, count: nil, rows: 10, want: 4},
		{name: "zero count treated as unknown", current: 2, count: intPtr(0), rows: 0, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTotal(tt.current, tt.count, tt.rows); got != tt.want {
				t.Errorf("EstimateTotal = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewView(t *testing.T) {
	count := 95
	v := NewView(2, &count, PageSize)

	if v.Total != 4 {
		t.Errorf("expected 4 total pages, got %d", v.Total)
	}
	if !v.HasPrev || !v.HasNext {
		t.Errorf("expected prev and next on page 2 of 4, got %+v", v)
	}

	last := NewView(4, &count, 5)
	if last.HasNext {
		t.Error("expected no next link on the last page")
	}
}
