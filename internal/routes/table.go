// Package routes maintains the registry of route descriptors and matches
// pathnames against their patterns.
package routes

import (
	"strings"
	"sync"

	"github.com/strayware/tabdeck/pkg/types"
)

// Table is the route registry. Descriptors are matched in registration
// order; the first pattern that accepts the pathname wins.
type Table struct {
	mu       sync.RWMutex
	order    []string
	byID     map[string]types.Route
	onRemove func(routeID string)
}

// New creates a Table pre-populated with the given routes. Invalid or
// duplicate descriptors are rejected.
func New(rs ...types.Route) (*Table, error) {
	t := &Table{byID: make(map[string]types.Route)}
	for _, r := range rs {
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// SetRemoveHook registers a callback invoked with the route ID before a
// descriptor is removed. The tab store uses this to close the matching tab
// while the descriptor still exists, so close-time re-navigation always has
// a valid target.
func (t *Table) SetRemoveHook(fn func(routeID string)) {
	t.mu.Lock()
	t.onRemove = fn
	t.mu.Unlock()
}

// Add registers a new route descriptor.
func (t *Table) Add(r types.Route) error {
	if err := r.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[r.ID]; ok {
		return types.ErrRouteExists
	}
	t.byID[r.ID] = r
	t.order = append(t.order, r.ID)
	return nil
}

// Update replaces the descriptor with the same ID, keeping its position.
func (t *Table) Update(r types.Route) error {
	if err := r.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[r.ID]; !ok {
		return types.ErrRouteNotFound
	}
	t.byID[r.ID] = r
	return nil
}

// Remove deletes the descriptor with the given ID, notifying the removal
// hook first.
func (t *Table) Remove(id string) error {
	t.mu.Lock()
	if _, ok := t.byID[id]; !ok {
		t.mu.Unlock()
		return types.ErrRouteNotFound
	}
	hook := t.onRemove
	t.mu.Unlock()

	// Notify while the descriptor is still registered.
	if hook != nil {
		hook(id)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byID, id)
	for i, rid := range t.order {
		if rid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the descriptor with the given ID.
func (t *Table) Get(id string) (types.Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.byID[id]
	return r, ok
}

// List returns all descriptors in registration order.
func (t *Table) List() []types.Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rs := make([]types.Route, 0, len(t.order))
	for _, id := range t.order {
		rs = append(rs, t.byID[id])
	}
	return rs
}

// Match returns the first registered route whose pattern accepts the
// pathname. The query string must already be stripped.
func (t *Table) Match(pathname string) (types.Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		r := t.byID[id]
		if matchPattern(r.Path, pathname) {
			return r, true
		}
	}
	return types.Route{}, false
}

// matchPattern matches a pathname against a pattern segment by segment.
// ":name" segments accept any single non-empty segment; a trailing "*"
// accepts the remainder of the path, including nothing.
func matchPattern(pattern, pathname string) bool {
	if pattern == pathname {
		return true
	}
	pat := splitPath(pattern)
	path := splitPath(pathname)

	for i, seg := range pat {
		if seg == "*" && i == len(pat)-1 {
			return true
		}
		if i >= len(path) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return len(pat) == len(path)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
