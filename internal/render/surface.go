// Package render decides what is painted for the current location: which
// cached subtrees stay mounted, which one is visible, and when a freshly
// rendered subtree is captured into the keep-alive cache.
package render

import (
	"github.com/strayware/tabdeck/internal/keepalive"
	"github.com/strayware/tabdeck/internal/routes"
	"github.com/strayware/tabdeck/internal/tabs"
	"github.com/strayware/tabdeck/pkg/types"
)

// Surface computes render frames against the route table, tab store, and
// keep-alive cache.
type Surface struct {
	routes *routes.Table
	tabs   *tabs.Store
	cache  *keepalive.Cache
}

// New wires a Surface over the given stores.
func New(rt *routes.Table, ts *tabs.Store, cache *keepalive.Cache) *Surface {
	return &Surface{routes: rt, tabs: ts, cache: cache}
}

// Render produces the frame for loc. fresh is the host's rendered output
// for the current location, treated as opaque; it is captured into the
// cache the first time its route's tab is active, and painted directly when
// no cache entry covers the active tab.
func (s *Surface) Render(loc types.Location, fresh types.View) types.Frame {
	route, ok := s.routes.Match(loc.Pathname)
	if !ok {
		// Unmatched locations render the host's not-found subtree and
		// participate in neither tabbing nor caching.
		return types.Frame{NotFound: true, Fresh: fresh}
	}

	if !route.KeepAlive {
		return types.Frame{RouteID: route.ID, Fresh: fresh}
	}

	activeID := s.tabs.ActiveID()

	// Capture at most once per route lifetime, and only once the tab is
	// actually active. The Has guard makes re-entrant renders before the
	// switch commits harmless.
	if activeID == route.ID && fresh != nil && !s.cache.Has(route.ID) {
		s.cache.Set(route.ID, fresh)
	}

	frame := types.Frame{RouteID: route.ID, KeepAlive: true}
	activeCovered := false
	for _, id := range s.cache.IDs() {
		view, ok := s.cache.Get(id)
		if !ok {
			continue
		}
		visible := id == activeID
		if visible {
			activeCovered = true
		}
		frame.Slots = append(frame.Slots, types.Slot{RouteID: id, View: view, Visible: visible})
	}

	// First render before the capture commits: paint the fresh subtree in
	// place of the missing cache slot.
	if !activeCovered {
		frame.Fresh = fresh
	}
	return frame
}
