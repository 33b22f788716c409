// ABOUTME: Sample dataset used when no backend is configured or a query is empty.
// ABOUTME: Loaded once from embedded YAML; read-only and safe for concurrent use.

package sample

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/harper/libdir/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed libraries.yaml
var embedded []byte

type dataset struct {
	Frameworks []string         `yaml:"frameworks"`
	Tags       []string         `yaml:"tags"`
	Libraries  []models.Library `yaml:"libraries"`
}

// Store is an immutable in-memory list of libraries.
type Store struct {
	frameworks []string
	tags       []string
	libraries  []models.Library
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the embedded sample dataset.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := Load(embedded)
		if err != nil {
			panic(fmt.Sprintf("sample: embedded dataset: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Load parses a dataset document. Tags on each library are de-duplicated.
func Load(data []byte) (*Store, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	seen := make(map[string]struct{}, len(ds.Libraries))
	for i := range ds.Libraries {
		lib := &ds.Libraries[i]
		if lib.ID == "" {
			return nil, fmt.Errorf("library %d (%q) has no id", i, lib.Name)
		}
		if _, dup := seen[lib.ID]; dup {
			return nil, fmt.Errorf("duplicate library id %q", lib.ID)
		}
		seen[lib.ID] = struct{}{}
		if lib.Slug == "" {
			lib.Slug = models.Slugify(lib.Name)
		}
		lib.Tags = models.UniqueTags(lib.Tags)
	}
	return &Store{
		frameworks: ds.Frameworks,
		tags:       ds.Tags,
		libraries:  ds.Libraries,
	}, nil
}

// Query applies filters in memory and returns the [offset, offset+limit)
// slice along with the filtered length.
func (s *Store) Query(filters models.Filters, offset, limit int) ([]models.Library, int) {
	filters = filters.Normalize()
	var matched []models.Library
	for i := range s.libraries {
		if filters.Matches(&s.libraries[i]) {
			matched = append(matched, clone(s.libraries[i]))
		}
	}
	total := len(matched)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return []models.Library{}, total
	}
	end := min(offset+limit, total)
	return matched[offset:end], total
}

// Libraries returns a copy of the whole dataset.
func (s *Store) Libraries() []models.Library {
	out := make([]models.Library, len(s.libraries))
	for i := range s.libraries {
		out[i] = clone(s.libraries[i])
	}
	return out
}

func (s *Store) BySlug(slug string) (models.Library, bool) {
	for i := range s.libraries {
		if s.libraries[i].Slug == slug {
			return clone(s.libraries[i]), true
		}
	}
	return models.Library{}, false
}

// Frameworks lists the framework filter options, "All" first.
func (s *Store) Frameworks() []string {
	return append([]string(nil), s.frameworks...)
}

// Tags lists the curated tag filter options.
func (s *Store) Tags() []string {
	return append([]string(nil), s.tags...)
}

// TagCounts counts tag usage across the dataset, ordered by name.
func (s *Store) TagCounts() []models.TagCount {
	counts := make(map[string]int)
	for _, name := range s.tags {
		counts[name] = 0
	}
	for i := range s.libraries {
		for _, tag := range s.libraries[i].Tags {
			counts[tag]++
		}
	}
	out := make([]models.TagCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.TagCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func clone(lib models.Library) models.Library {
	tags := make([]string, len(lib.Tags))
	copy(tags, lib.Tags)
	lib.Tags = tags
	return lib
}
