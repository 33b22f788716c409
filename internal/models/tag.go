// ABOUTME: Tag model for categorizing libraries.
// ABOUTME: Tag names are case-sensitive; only surrounding whitespace is trimmed.

package models

import (
	"strings"

	"github.com/google/uuid"
)

type Tag struct {
	ID   string
	Name string
}

func NewTag(name string) *Tag {
	return &Tag{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(name),
	}
}

// UniqueTags trims names, drops empties and keeps the first occurrence of each.
func UniqueTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SplitTags parses a comma-separated tag field.
func SplitTags(raw string) []string {
	return UniqueTags(strings.Split(raw, ","))
}

// TagCount is a tag name with the number of libraries carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
