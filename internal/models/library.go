// ABOUTME: Library model representing one directory entry with its tags.
// ABOUTME: Provides constructor and display helpers for library lifecycle.

package models

import (
	"sort"
	"strings"
	"time"
)

// DefaultFrameworkLabel is shown for libraries that carry no framework.
const DefaultFrameworkLabel = "Tools"

type Library struct {
	ID          string    `json:"id" yaml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Slug        string    `json:"slug" yaml:"slug"`
	Description string    `json:"description" yaml:"description"`
	Framework   string    `json:"framework" yaml:"framework"`
	WebsiteURL  string    `json:"website_url,omitempty" yaml:"website_url,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty" yaml:"logo_url,omitempty"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at,omitempty"`
}

// NewLibrary returns an unsaved library. The store assigns its ID on insert.
func NewLibrary(name, slug string) *Library {
	return &Library{
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
}

// SortedTags returns a sorted copy of the library's tags.
func (l *Library) SortedTags() []string {
	tags := append([]string(nil), l.Tags...)
	sort.Strings(tags)
	return tags
}

func (l *Library) HasTag(name string) bool {
	for _, t := range l.Tags {
		if t == name {
			return true
		}
	}
	return false
}

func (l *Library) FrameworkLabel() string {
	if strings.TrimSpace(l.Framework) == "" {
		return DefaultFrameworkLabel
	}
	return l.Framework
}
