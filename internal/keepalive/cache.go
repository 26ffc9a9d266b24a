// Package keepalive stores rendered view subtrees keyed by route ID.
//
// The cache is deliberately policy-free: entries live until the tab store
// evicts them through Remove or Clear. All capture and eviction decisions
// belong to the sync controller and render surface.
package keepalive

import (
	"sync"

	"github.com/strayware/tabdeck/pkg/types"
)

// Cache maps route IDs to previously rendered views, preserving insertion
// order for stable slot layout across renders.
type Cache struct {
	mu    sync.RWMutex
	order []string
	views map[string]types.View
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{views: make(map[string]types.View)}
}

// Set stores the view for routeID. An existing entry is overwritten in
// place and keeps its original insertion position.
func (c *Cache) Set(routeID string, view types.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.views[routeID]; !ok {
		c.order = append(c.order, routeID)
	}
	c.views[routeID] = view
}

// Has reports whether a view is cached for routeID.
func (c *Cache) Has(routeID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.views[routeID]
	return ok
}

// Get returns the cached view for routeID.
func (c *Cache) Get(routeID string) (types.View, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view, ok := c.views[routeID]
	return view, ok
}

// Remove evicts the entry for routeID. Unknown IDs are ignored.
func (c *Cache) Remove(routeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.views[routeID]; !ok {
		return
	}
	delete(c.views, routeID)
	for i, id := range c.order {
		if id == routeID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear evicts every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.views = make(map[string]types.View)
}

// IDs returns the cached route IDs in insertion order.
func (c *Cache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.views)
}
