// Package tabdeck exposes the public API of the tab session engine: an
// Engine facade over the route table, tab store, keep-alive cache, sync
// controller, and render surface, plus an in-memory Navigator for hosts
// without their own history.
//
// Example:
//
//	eng, err := tabdeck.New(tabdeck.Options{
//	    Routes: []types.Route{
//	        {ID: "home", Path: "/", Title: "Home", KeepAlive: true},
//	        {ID: "users", Path: "/users", Title: "Users", KeepAlive: true},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	eng.Navigate("/users")
//	frame := eng.Render(usersView)
package tabdeck

import (
	"log/slog"

	"github.com/strayware/tabdeck/internal/keepalive"
	"github.com/strayware/tabdeck/internal/render"
	"github.com/strayware/tabdeck/internal/routes"
	"github.com/strayware/tabdeck/internal/syncer"
	"github.com/strayware/tabdeck/internal/tabs"
	"github.com/strayware/tabdeck/pkg/types"
)

// Version is the tabdeck release version.
const Version = "0.1.0"

// Options configures a new Engine.
type Options struct {
	// Routes is the initial route table. More can be added at runtime.
	Routes []types.Route

	// Navigator is the host's navigation primitive. When nil the engine
	// uses a MemoryNavigator rooted at "/".
	Navigator types.Navigator

	// Logger receives engine debug output. When nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Engine is the assembled tab session: explicitly constructed state
// containers bridged by the sync controller. All methods operate on and
// return pkg/types values.
type Engine struct {
	routes  *routes.Table
	tabs    *tabs.Store
	cache   *keepalive.Cache
	ctrl    *syncer.Controller
	surface *render.Surface
	nav     types.Navigator
}

// New wires an Engine from the given options.
func New(opts Options) (*Engine, error) {
	rt, err := routes.New(opts.Routes...)
	if err != nil {
		return nil, err
	}

	nav := opts.Navigator
	if nav == nil {
		nav = NewMemoryNavigator("/")
	}

	store := tabs.New()
	cache := keepalive.New()
	store.SetEvictor(cache)

	ctrl := syncer.New(rt, store, nav, opts.Logger)
	store.OnChange(ctrl.Sync)
	rt.SetRemoveHook(store.HandleRouteRemoved)

	return &Engine{
		routes:  rt,
		tabs:    store,
		cache:   cache,
		ctrl:    ctrl,
		surface: render.New(rt, store, cache),
		nav:     nav,
	}, nil
}

// Navigate issues a host navigation to path and reconciles the session.
func (e *Engine) Navigate(path string) {
	e.nav.Navigate(path, false)
	e.ctrl.Sync()
}

// HandleLocationChange reconciles after the host changed the location
// through its own navigator (back button, deep link).
func (e *Engine) HandleLocationChange() {
	e.ctrl.Sync()
}

// Location returns the current navigation position.
func (e *Engine) Location() types.Location {
	return e.nav.Location()
}

// Render computes the frame for the current location. fresh is the host's
// rendered output for that location, passed through opaquely.
func (e *Engine) Render(fresh types.View) types.Frame {
	return e.surface.Render(e.nav.Location(), fresh)
}

// Tabs returns the open tabs in strip order.
func (e *Engine) Tabs() []types.Tab {
	return e.tabs.Tabs()
}

// ActiveTab returns the active tab.
func (e *Engine) ActiveTab() (types.Tab, bool) {
	return e.tabs.ActiveTab()
}

// ActiveID returns the active tab's route ID, or "" when none is active.
func (e *Engine) ActiveID() string {
	return e.tabs.ActiveID()
}

// Activate makes the tab for routeID active, navigating to its last
// visited path. Unknown IDs are ignored.
func (e *Engine) Activate(routeID string) {
	e.tabs.Activate(routeID)
}

// CloseTab closes the tab for routeID. Unknown IDs are ignored.
func (e *Engine) CloseTab(routeID string) {
	e.tabs.Close(routeID)
}

// CloseAll closes every tab and clears the cache.
func (e *Engine) CloseAll() {
	e.tabs.CloseAll()
}

// CloseOthers closes every tab except the one for routeID.
func (e *Engine) CloseOthers(routeID string) {
	e.tabs.CloseOthers(routeID)
}

// RenameTab changes the tab title. Unknown IDs are ignored.
func (e *Engine) RenameTab(routeID, title string) {
	e.tabs.Rename(routeID, title)
}

// UpdateTabPath rewrites the tab's current and last-visited path without
// navigating. Unknown IDs are ignored.
func (e *Engine) UpdateTabPath(routeID, path string) {
	e.tabs.UpdateTabPath(routeID, path)
}

// MoveTab reorders the strip, moving the tab at from to position to.
func (e *Engine) MoveTab(from, to int) {
	e.tabs.Reorder(from, to)
}

// CachedIDs returns the route IDs with live cache entries, in capture
// order.
func (e *Engine) CachedIDs() []string {
	return e.cache.IDs()
}

// AddRoute registers a route descriptor at runtime.
func (e *Engine) AddRoute(r types.Route) error {
	return e.routes.Add(r)
}

// UpdateRoute replaces the descriptor with the same ID.
func (e *Engine) UpdateRoute(r types.Route) error {
	return e.routes.Update(r)
}

// RemoveRoute unregisters a route. An open tab for it is closed first, so
// the session always lands somewhere valid.
func (e *Engine) RemoveRoute(id string) error {
	return e.routes.Remove(id)
}

// Routes returns the registered descriptors in registration order.
func (e *Engine) Routes() []types.Route {
	return e.routes.List()
}

// Match matches a pathname against the route table.
func (e *Engine) Match(pathname string) (types.Route, bool) {
	return e.routes.Match(pathname)
}

// Snapshot captures the current session under the given name. Cached
// views are not part of snapshots.
func (e *Engine) Snapshot(name string) types.SessionSnapshot {
	return types.SessionSnapshot{
		Name:     name,
		Tabs:     e.tabs.Tabs(),
		ActiveID: e.tabs.ActiveID(),
		Location: e.nav.Location(),
	}
}

// Restore replaces the session from a snapshot: location first, then the
// tab strip, then one reconcile pass.
func (e *Engine) Restore(snap types.SessionSnapshot) {
	if snap.Location.Pathname != "" {
		e.nav.Navigate(snap.Location.FullPath(), true)
	}
	e.tabs.Restore(snap)
	e.ctrl.Sync()
}
