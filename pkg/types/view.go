package types

// View is an opaque rendered subtree handle supplied by the host. The
// engine never inspects a View; it only stores views and hands them back
// through Frame slots.
type View = any

// Slot is one mounted subtree in a rendered frame. Every cached view gets
// a slot on every frame; only the slot for the active tab is visible.
// Keeping hidden slots mounted is what preserves their internal state
// across tab switches.
type Slot struct {
	RouteID string
	View    View
	Visible bool
}

// Frame is the result of one render pass: which cached subtrees to mount,
// and whether fresh (non-cached) content is painted in place.
type Frame struct {
	// RouteID is the matched route's ID, or empty when nothing matched.
	RouteID string

	// NotFound is set when the location matched no route. Fresh then
	// holds the host's not-found subtree.
	NotFound bool

	// KeepAlive reports whether the matched route participates in the
	// tab session.
	KeepAlive bool

	// Fresh is the host-rendered subtree to paint directly, set for
	// unmatched and non-keep-alive locations and for an active tab whose
	// cache entry does not exist yet. Nil when a cached slot covers the
	// active tab.
	Fresh View

	// Slots lists every cached subtree in cache insertion order.
	Slots []Slot
}

// VisibleSlot returns the currently visible slot, if any.
func (f Frame) VisibleSlot() (Slot, bool) {
	for _, s := range f.Slots {
		if s.Visible {
			return s, true
		}
	}
	return Slot{}, false
}
