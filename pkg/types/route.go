package types

import "errors"

// Route describes a navigable destination. Descriptors are immutable once
// registered; replacing one means removing and re-adding it by ID.
type Route struct {
	// ID is the unique, stable identifier for the route. Tabs opened for
	// this route share the same ID.
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// Path is the match pattern: literal segments, ":name" parameter
	// segments, and an optional trailing "*" wildcard.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Title is the human-readable label shown on the tab.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// KeepAlive marks the route as part of the tab session. Routes with
	// KeepAlive false render outside the session and reset it on visit.
	KeepAlive bool `json:"keep_alive" yaml:"keep_alive" mapstructure:"keep_alive"`
}

// Route registration errors.
var (
	ErrRouteIDEmpty   = errors.New("route id must not be empty")
	ErrRoutePathEmpty = errors.New("route path must not be empty")
	ErrRouteExists    = errors.New("route already registered")
	ErrRouteNotFound  = errors.New("route not found")
)

// Validate checks that the Route is well-formed. It returns a sentinel error
// from this package on failure.
func (r Route) Validate() error {
	if r.ID == "" {
		return ErrRouteIDEmpty
	}
	if r.Path == "" {
		return ErrRoutePathEmpty
	}
	return nil
}
