package tabdeck

import (
	"sync"

	"github.com/strayware/tabdeck/pkg/types"
)

// MemoryNavigator is an in-process history stack implementing
// types.Navigator. Hosts without a real router (CLIs, tests) use it as
// their navigation primitive.
type MemoryNavigator struct {
	mu    sync.Mutex
	stack []types.Location
}

// NewMemoryNavigator creates a navigator with initial as its only history
// entry.
func NewMemoryNavigator(initial string) *MemoryNavigator {
	return &MemoryNavigator{stack: []types.Location{types.ParseLocation(initial)}}
}

// Navigate pushes path onto the history stack, or replaces the current
// entry when replace is true.
func (n *MemoryNavigator) Navigate(path string, replace bool) {
	loc := types.ParseLocation(path)
	n.mu.Lock()
	defer n.mu.Unlock()
	if replace && len(n.stack) > 0 {
		n.stack[len(n.stack)-1] = loc
		return
	}
	n.stack = append(n.stack, loc)
}

// Location returns the current position.
func (n *MemoryNavigator) Location() types.Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 0 {
		return types.Location{Pathname: "/"}
	}
	return n.stack[len(n.stack)-1]
}

// Back pops the current entry and returns the new position. It reports
// false when the stack has no earlier entry to go back to.
func (n *MemoryNavigator) Back() (types.Location, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) < 2 {
		if len(n.stack) == 0 {
			return types.Location{Pathname: "/"}, false
		}
		return n.stack[0], false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.stack[len(n.stack)-1], true
}

// Depth returns the history stack depth.
func (n *MemoryNavigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}
