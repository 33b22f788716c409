// ABOUTME: Slug generation for URL-safe library identifiers.
// ABOUTME: Slugify is idempotent and only emits [a-z0-9-].

package models

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify lower-cases name and turns every run of whitespace or punctuation
// into a single hyphen, trimming hyphens from both ends.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
