package types

// Tab is one entry in the open-tab strip. A tab is bound to a route by ID:
// at most one tab exists per route, created the first time the route is
// visited and updated in place on revisits.
type Tab struct {
	// ID equals the route ID of the route this tab was opened for.
	ID string `json:"id" yaml:"id"`

	// Title is the label shown on the tab.
	Title string `json:"title" yaml:"title"`

	// Path is the current full path (pathname plus search) for the tab.
	Path string `json:"path" yaml:"path"`

	// LastPath is the most recent full path visited for this route. It is
	// the navigation target used when the tab is re-activated.
	LastPath string `json:"last_path" yaml:"last_path"`

	// Closable reports whether the tab may be closed by the user. Pinned
	// tabs (for example a home tab) set this to false.
	Closable bool `json:"closable" yaml:"closable"`
}
