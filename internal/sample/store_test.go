// ABOUTME: Tests for the sample dataset store.
// ABOUTME: Checks embedded data integrity, conjunctive filtering and slicing.

package sample

import (
	"testing"

	"github.com/harper/libdir/internal/models"
)

func TestDefaultLoadsEmbeddedDataset(t *testing.T) {
	s := Default()

	libs := s.Libraries()
	if len(libs) <= 30 {
		t.Fatalf("expected more than one page of sample libraries, got %d", len(libs))
	}
	if s.Frameworks()[0] != models.AllOption {
		t.Errorf("expected %q first in frameworks, got %v", models.AllOption, s.Frameworks())
	}
	for _, lib := range libs {
		if !models.IsSlug(lib.Slug) {
			t.Errorf("sample %s has invalid slug %q", lib.ID, lib.Slug)
		}
	}
}

func TestQueryIsConjunctive(t *testing.T) {
	s := Default()
	all := s.Libraries()

	queries := []string{"", "ui", "UI", "react", "zzz"}
	frameworks := append([]string{""}, s.Frameworks()...)
	tags := append([]string{""}, s.Tags()...)

	for _, q := range queries {
		for _, fw := range frameworks {
			for _, tag := range tags {
				filters := models.Filters{Query: q, Framework: fw, Tag: tag}
				got, total := s.Query(filters, 0, len(all))

				norm := filters.Normalize()
				want := 0
				for i := range all {
					if norm.Matches(&all[i]) {
						want++
					}
				}
				if total != want || len(got) != want {
					t.Fatalf("Query(%+v): total=%d len=%d, want %d", filters, total, len(got), want)
				}
				for i := range got {
					lib := &got[i]
					if norm.Query != "" && !containsFold(lib.Name, norm.Query) {
						t.Fatalf("Query(%+v) returned %q failing the name filter", filters, lib.Name)
					}
					if norm.Framework != "" && lib.Framework != norm.Framework {
						t.Fatalf("Query(%+v) returned %q failing the framework filter", filters, lib.Name)
					}
					if norm.Tag != "" && !lib.HasTag(norm.Tag) {
						t.Fatalf("Query(%+v) returned %q failing the tag filter", filters, lib.Name)
					}
				}
			}
		}
	}
}

func TestQuerySlicesPages(t *testing.T) {
	s := Default()
	total := len(s.Libraries())

	first, n := s.Query(models.Filters{}, 0, 30)
	if n != total || len(first) != 30 {
		t.Fatalf("first page: len=%d total=%d", len(first), n)
	}

	second, _ := s.Query(models.Filters{}, 30, 30)
	if len(second) != total-30 {
		t.Fatalf("second page: expected %d rows, got %d", total-30, len(second))
	}
	if second[0].ID == first[0].ID {
		t.Error("second page repeats the first page")
	}

	beyond, n := s.Query(models.Filters{}, 300, 30)
	if len(beyond) != 0 || n != total {
		t.Errorf("out of range page: len=%d total=%d", len(beyond), n)
	}
}

func TestQueryReturnsCopies(t *testing.T) {
	s := Default()

	got, _ := s.Query(models.Filters{Tag: "forms"}, 0, 1)
	got[0].Tags[0] = "mutated"

	again, _ := s.Query(models.Filters{Tag: "forms"}, 0, 1)
	if again[0].Tags[0] == "mutated" {
		t.Error("Query exposed the store's internal slice")
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	doc := []byte(`
libraries:
  - {id: a, name: One}
  - {id: a, name: Two}
`)
	if _, err := Load(doc); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestLoadDerivesSlugAndDedupesTags(t *testing.T) {
	doc := []byte(`
libraries:
  - {id: a, name: "My Lib", tags: [x, y, x]}
`)
	s, err := Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	lib, ok := s.BySlug("my-lib")
	if !ok {
		t.Fatal("expected slug derived from name")
	}
	if len(lib.Tags) != 2 {
		t.Errorf("expected 2 unique tags, got %v", lib.Tags)
	}
}

func TestTagCounts(t *testing.T) {
	counts := Default().TagCounts()
	if len(counts) == 0 {
		t.Fatal("expected tag counts")
	}
	for i := 1; i < len(counts); i++ {
		if counts[i-1].Name >= counts[i].Name {
			t.Fatalf("tag counts not sorted: %v", counts)
		}
	}
}

func containsFold(s, sub string) bool {
	return (&models.Filters{Query: sub}).Matches(&models.Library{Name: s})
}
