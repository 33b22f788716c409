// ABOUTME: Listing filter state derived from request parameters.
// ABOUTME: Filters combine conjunctively: substring, exact and membership.

package models

import "strings"

// AllOption is the drop-down value that disables a framework or tag filter.
const AllOption = "All"

type Filters struct {
	Query     string `json:"q,omitempty"`
	Framework string `json:"framework,omitempty"`
	Tag       string `json:"tag,omitempty"`
}

// Normalize trims every field and clears the "All" sentinel.
func (f Filters) Normalize() Filters {
	out := Filters{
		Query:     strings.TrimSpace(f.Query),
		Framework: strings.TrimSpace(f.Framework),
		Tag:       strings.TrimSpace(f.Tag),
	}
	if out.Framework == AllOption {
		out.Framework = ""
	}
	if out.Tag == AllOption {
		out.Tag = ""
	}
	return out
}

// Matches reports whether lib satisfies every non-empty filter.
func (f Filters) Matches(lib *Library) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(lib.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.Framework != "" && lib.Framework != f.Framework {
		return false
	}
	if f.Tag != "" && !lib.HasTag(f.Tag) {
		return false
	}
	return true
}
