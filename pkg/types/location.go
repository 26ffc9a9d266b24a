package types

import "strings"

// Location is a navigation position: a pathname plus an optional query
// string. The search component, when present, excludes the leading "?".
type Location struct {
	Pathname string `json:"pathname" yaml:"pathname"`
	Search   string `json:"search" yaml:"search"`
}

// FullPath returns the pathname joined with the search component.
func (l Location) FullPath() string {
	if l.Search == "" {
		return l.Pathname
	}
	return l.Pathname + "?" + l.Search
}

// ParseLocation splits a full path into pathname and search components.
// A missing or empty path parses to the root location "/".
func ParseLocation(full string) Location {
	if full == "" {
		return Location{Pathname: "/"}
	}
	pathname, search, _ := strings.Cut(full, "?")
	if pathname == "" {
		pathname = "/"
	}
	return Location{Pathname: pathname, Search: search}
}
