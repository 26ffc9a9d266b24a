// Package syncer keeps the navigation location and the tab store mutually
// consistent.
//
// Three rules run inside one bounded reconcile pass:
//
//   - location → tabs: a matched keep-alive location upserts its tab; a
//     matched non-keep-alive location resets the whole tab session.
//   - tabs → location: an active-tab change navigates to the tab's
//     last-visited path.
//   - pending navigation: a close-time target set by the tab store is
//     consumed exactly once and navigated to.
//
// Each rule only acts when its input actually changed, comparing against
// held-over snapshots. That change detection is what keeps the two
// directions from re-triggering each other forever; the historical failure
// mode here is an infinite navigate/update loop.
package syncer

import (
	"log/slog"
	"sync"

	"github.com/strayware/tabdeck/internal/routes"
	"github.com/strayware/tabdeck/internal/tabs"
	"github.com/strayware/tabdeck/pkg/types"
)

// maxPasses bounds one Sync call. A converging reconcile needs at most a
// few passes; hitting the bound means a guard is broken.
const maxPasses = 8

// Controller bridges the route table, tab store, and host navigator.
type Controller struct {
	routes *routes.Table
	tabs   *tabs.Store
	nav    types.Navigator
	log    *slog.Logger

	mu           sync.Mutex
	syncing      bool
	lastActiveID string
	lastLocation string
}

// New wires a Controller. The logger may be nil.
func New(rt *routes.Table, ts *tabs.Store, nav types.Navigator, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{routes: rt, tabs: ts, nav: nav, log: log}
}

// Sync reconciles tabs and location until neither rule has work left.
// Re-entrant calls (from tab-store listeners firing during the pass) return
// immediately; the running pass picks the new state up on its next
// iteration.
func (c *Controller) Sync() {
	c.mu.Lock()
	if c.syncing {
		c.mu.Unlock()
		return
	}
	c.syncing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.syncing = false
		c.mu.Unlock()
	}()

	for pass := 0; pass < maxPasses; pass++ {
		navigated := c.applyTabs()
		changed := c.applyLocation(c.nav.Location())
		if !navigated && !changed {
			return
		}
	}
	c.log.Error("tab sync did not converge",
		"passes", maxPasses,
		"location", c.nav.Location().FullPath(),
		"active", c.tabs.ActiveID())
}

// applyTabs runs the tabs→location direction. Returns true when it issued
// a navigation request.
func (c *Controller) applyTabs() bool {
	// Close-time target: consume exactly once.
	if target, ok := c.tabs.TakePendingNavigation(); ok {
		c.lastActiveID = c.tabs.ActiveID()
		if target != c.nav.Location().FullPath() {
			c.log.Debug("navigating after close", "target", target)
			c.nav.Navigate(target, false)
			return true
		}
		return false
	}

	active := c.tabs.ActiveID()
	if active == c.lastActiveID {
		return false
	}
	c.lastActiveID = active
	if active == "" {
		return false
	}

	target := ""
	if lp, ok := c.tabs.LastPath(active); ok {
		target = lp
	} else if tab, ok := c.tabs.TabByID(active); ok {
		target = tab.Path
	}
	if target == "" || target == c.nav.Location().FullPath() {
		return false
	}
	c.log.Debug("navigating to activated tab", "route", active, "target", target)
	c.nav.Navigate(target, false)
	return true
}

// applyLocation runs the location→tabs direction. Returns true when it
// mutated the tab store.
func (c *Controller) applyLocation(loc types.Location) bool {
	full := loc.FullPath()
	if full == c.lastLocation {
		return false
	}
	c.lastLocation = full

	route, ok := c.routes.Match(loc.Pathname)
	if !ok {
		// Unmatched locations participate in neither tabbing nor caching.
		return false
	}

	if !route.KeepAlive {
		// Visiting a page outside the tab session resets it.
		if c.tabs.Len() == 0 && c.tabs.ActiveID() == "" {
			return false
		}
		c.log.Debug("non keep-alive route visited, resetting tab session", "route", route.ID)
		c.tabs.CloseAll()
		c.lastActiveID = ""
		return true
	}

	if tab, ok := c.tabs.ActiveTab(); ok && tab.ID == route.ID && tab.Path == full {
		return false
	}
	c.tabs.OpenByRoute(route.ID, route.Title, full, true)
	// Hold the new active id over so the tabs→location rule does not fire
	// for a change this rule caused itself.
	c.lastActiveID = route.ID
	return true
}
