// Package tabs implements the authoritative state machine for the open-tab
// strip: the ordered tab list, the active-tab pointer, per-route last-visited
// paths, and the one-shot pending-navigation target.
//
// Every operation is total: unknown route IDs are tolerated as silent no-ops
// so a desynchronized host can never crash the session. Operations that
// change state notify registered listeners after the mutation commits;
// no-ops stay silent, which is what lets the sync controller reach a fixed
// point.
package tabs

import (
	"sync"

	"github.com/strayware/tabdeck/pkg/types"
)

// RootPath is the fallback navigation target when the last open tab closes.
const RootPath = "/"

// Evictor receives cache-eviction requests when tabs close. The keep-alive
// cache satisfies this; the store itself holds no views.
type Evictor interface {
	Remove(routeID string)
	Clear()
}

// Store holds the open tabs. The zero value is not usable; call New.
type Store struct {
	mu         sync.Mutex
	tabs       []types.Tab
	activeID   string
	lastPath   map[string]string
	pending    string
	hasPending bool
	rev        uint64

	evictor   Evictor
	listeners []func()
}

// New creates an empty Store.
func New() *Store {
	return &Store{lastPath: make(map[string]string)}
}

// SetEvictor wires the cache that should drop entries when tabs close.
func (s *Store) SetEvictor(e Evictor) {
	s.mu.Lock()
	s.evictor = e
	s.mu.Unlock()
}

// OnChange registers a listener invoked synchronously after every state
// change. Listeners run outside the store lock and may call back into the
// store.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// OpenByRoute upserts the tab for routeID and makes it active. An existing
// tab keeps its position and has its title, path, and last path refreshed;
// otherwise a new tab is appended. Idempotent: reopening with identical
// values changes nothing.
func (s *Store) OpenByRoute(routeID, title, path string, closable bool) {
	s.mu.Lock()
	changed := false
	if i, ok := s.indexOf(routeID); ok {
		tab := &s.tabs[i]
		if tab.Title != title || tab.Path != path || tab.LastPath != path {
			tab.Title = title
			tab.Path = path
			tab.LastPath = path
			changed = true
		}
	} else {
		s.tabs = append(s.tabs, types.Tab{
			ID:       routeID,
			Title:    title,
			Path:     path,
			LastPath: path,
			Closable: closable,
		})
		changed = true
	}
	if s.activeID != routeID {
		s.activeID = routeID
		changed = true
	}
	if s.lastPath[routeID] != path {
		s.lastPath[routeID] = path
		changed = true
	}
	s.commit(changed)
}

// Activate sets the active tab. Unknown IDs are ignored.
func (s *Store) Activate(routeID string) {
	s.mu.Lock()
	changed := false
	if _, ok := s.indexOf(routeID); ok && s.activeID != routeID {
		s.activeID = routeID
		changed = true
	}
	s.commit(changed)
}

// Close removes the tab for routeID. Closing the active tab picks a
// replacement by the left-neighbor tie-break and records a pending
// navigation target for the sync controller (the root path when no tabs
// remain). The cache entry for the closed route is evicted.
func (s *Store) Close(routeID string) {
	s.mu.Lock()
	i, ok := s.indexOf(routeID)
	if !ok {
		s.commit(false)
		return
	}

	wasActive := s.activeID == routeID
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	delete(s.lastPath, routeID)

	if wasActive {
		s.activateNeighbor(i)
	}

	// Evict before listeners run so a re-render never sees the dead entry.
	if s.evictor != nil {
		s.evictor.Remove(routeID)
	}
	s.commit(true)
}

// activateNeighbor applies the tie-break after the active tab at original
// index i was removed: prefer the tab now left of the closed slot, then the
// one that shifted into it, then the first tab. Must be called with the
// lock held and the tab already removed.
func (s *Store) activateNeighbor(i int) {
	if len(s.tabs) == 0 {
		s.activeID = ""
		s.pending = RootPath
		s.hasPending = true
		return
	}

	var next types.Tab
	switch {
	case i > 0:
		next = s.tabs[i-1]
	case i < len(s.tabs):
		next = s.tabs[i]
	default:
		next = s.tabs[0]
	}

	s.activeID = next.ID
	target := next.Path
	if lp, ok := s.lastPath[next.ID]; ok {
		target = lp
	}
	s.pending = target
	s.hasPending = true
}

// CloseAll removes every tab, clears the active pointer and path map, and
// clears the cache. No pending navigation is emitted; the caller decides
// where the session goes next.
func (s *Store) CloseAll() {
	s.mu.Lock()
	if len(s.tabs) == 0 && s.activeID == "" {
		s.commit(false)
		return
	}
	s.tabs = nil
	s.activeID = ""
	s.lastPath = make(map[string]string)
	s.pending = ""
	s.hasPending = false
	if s.evictor != nil {
		s.evictor.Clear()
	}
	s.commit(true)
}

// CloseOthers keeps only the tab for routeID and makes it active, evicting
// every other route's cache entry. Unknown IDs are ignored.
func (s *Store) CloseOthers(routeID string) {
	s.mu.Lock()
	i, ok := s.indexOf(routeID)
	if !ok {
		s.commit(false)
		return
	}
	if len(s.tabs) == 1 && s.activeID == routeID {
		s.commit(false)
		return
	}

	keep := s.tabs[i]
	evicted := make([]string, 0, len(s.tabs)-1)
	for _, tab := range s.tabs {
		if tab.ID != routeID {
			evicted = append(evicted, tab.ID)
			delete(s.lastPath, tab.ID)
		}
	}
	s.tabs = []types.Tab{keep}
	s.activeID = routeID
	s.pending = ""
	s.hasPending = false

	if s.evictor != nil {
		for _, id := range evicted {
			s.evictor.Remove(id)
		}
	}
	s.commit(true)
}

// Rename updates the tab title in place. Unknown IDs are ignored.
func (s *Store) Rename(routeID, title string) {
	s.mu.Lock()
	changed := false
	if i, ok := s.indexOf(routeID); ok && s.tabs[i].Title != title {
		s.tabs[i].Title = title
		changed = true
	}
	s.commit(changed)
}

// UpdateTabPath updates the tab's current path and last-visited path.
// Unknown IDs are ignored.
func (s *Store) UpdateTabPath(routeID, path string) {
	s.mu.Lock()
	changed := false
	if i, ok := s.indexOf(routeID); ok {
		if s.tabs[i].Path != path || s.tabs[i].LastPath != path {
			s.tabs[i].Path = path
			s.tabs[i].LastPath = path
			changed = true
		}
		if s.lastPath[routeID] != path {
			s.lastPath[routeID] = path
			changed = true
		}
	}
	s.commit(changed)
}

// Reorder moves the tab at from to position to. Out-of-range indexes are
// ignored. Identity and the active pointer are unaffected.
func (s *Store) Reorder(from, to int) {
	s.mu.Lock()
	if from < 0 || from >= len(s.tabs) || to < 0 || to >= len(s.tabs) || from == to {
		s.commit(false)
		return
	}
	tab := s.tabs[from]
	s.tabs = append(s.tabs[:from], s.tabs[from+1:]...)
	s.tabs = append(s.tabs[:to], append([]types.Tab{tab}, s.tabs[to:]...)...)
	s.commit(true)
}

// HandleRouteRemoved closes the tab whose route descriptor is being
// removed from the route table. Uses the same left-neighbor tie-break as
// Close so the session always lands on a still-valid target.
func (s *Store) HandleRouteRemoved(routeID string) {
	s.Close(routeID)
}

// Tabs returns a copy of the open tabs in order.
func (s *Store) Tabs() []types.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// Len returns the number of open tabs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tabs)
}

// ActiveID returns the active tab's route ID, or "" when no tab is active.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveTab returns the active tab.
func (s *Store) ActiveTab() (types.Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.indexOf(s.activeID); ok {
		return s.tabs[i], true
	}
	return types.Tab{}, false
}

// TabByID returns the tab for routeID.
func (s *Store) TabByID(routeID string) (types.Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.indexOf(routeID); ok {
		return s.tabs[i], true
	}
	return types.Tab{}, false
}

// LastPath returns the last-visited full path recorded for routeID.
func (s *Store) LastPath(routeID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.lastPath[routeID]
	return p, ok
}

// TakePendingNavigation consumes the one-shot navigation target set by
// Close when the active tab went away. The second return is false when no
// target is pending. Consumption does not notify listeners.
func (s *Store) TakePendingNavigation() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPending {
		return "", false
	}
	target := s.pending
	s.pending = ""
	s.hasPending = false
	return target, true
}

// Revision returns a counter incremented on every state change.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Restore replaces the store contents from a session snapshot. The active
// ID is kept only if it names a restored tab.
func (s *Store) Restore(snap types.SessionSnapshot) {
	s.mu.Lock()
	s.tabs = make([]types.Tab, len(snap.Tabs))
	copy(s.tabs, snap.Tabs)
	s.lastPath = make(map[string]string, len(snap.Tabs))
	for _, tab := range s.tabs {
		if tab.LastPath != "" {
			s.lastPath[tab.ID] = tab.LastPath
		}
	}
	s.activeID = ""
	if _, ok := s.indexOf(snap.ActiveID); ok {
		s.activeID = snap.ActiveID
	}
	s.pending = ""
	s.hasPending = false
	s.commit(true)
}

// indexOf returns the position of routeID. Must be called with the lock
// held.
func (s *Store) indexOf(routeID string) (int, bool) {
	if routeID == "" {
		return 0, false
	}
	for i, tab := range s.tabs {
		if tab.ID == routeID {
			return i, true
		}
	}
	return 0, false
}

// commit finalizes a mutation: bumps the revision, releases the lock, and
// notifies listeners when something actually changed.
func (s *Store) commit(changed bool) {
	var listeners []func()
	if changed {
		s.rev++
		listeners = make([]func(), len(s.listeners))
		copy(listeners, s.listeners)
	}
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
