// Package types defines the route, tab, and location types, the Navigator
// interface, and standard error values for the tabdeck engine.
package types
