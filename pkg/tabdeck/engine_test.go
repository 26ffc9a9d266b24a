package tabdeck

import (
	"testing"

	"github.com/strayware/tabdeck/pkg/types"
)

func defaultRoutes() []types.Route {
	return []types.Route{
		{ID: "home", Path: "/", Title: "Home", KeepAlive: true},
		{ID: "dashboard", Path: "/dashboard", Title: "Dashboard", KeepAlive: true},
		{ID: "users", Path: "/users", Title: "Users", KeepAlive: true},
		{ID: "login", Path: "/login", Title: "Login", KeepAlive: false},
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(Options{Routes: defaultRoutes()})
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestEngineNavigateOpensAndRenders(t *testing.T) {
	eng := newEngine(t)

	eng.Navigate("/dashboard")
	if eng.ActiveID() != "dashboard" {
		t.Fatalf("expected dashboard active, got %q", eng.ActiveID())
	}

	frame := eng.Render("dashboard view")
	slot, ok := frame.VisibleSlot()
	if !ok || slot.View != "dashboard view" {
		t.Fatalf("expected captured dashboard view, got %+v", frame)
	}

	eng.Navigate("/users")
	eng.Render("users view")
	if got := eng.CachedIDs(); len(got) != 2 {
		t.Fatalf("expected two cached routes, got %v", got)
	}
}

func TestEngineTabSwitchKeepsSubtrees(t *testing.T) {
	eng := newEngine(t)
	eng.Navigate("/dashboard")
	eng.Render("dashboard view")
	eng.Navigate("/users")
	eng.Render("users view")

	eng.Activate("dashboard")
	if got := eng.Location().Pathname; got != "/dashboard" {
		t.Fatalf("activation should navigate, got %q", got)
	}

	frame := eng.Render(nil)
	if len(frame.Slots) != 2 {
		t.Fatalf("both subtrees must stay mounted, got %d slots", len(frame.Slots))
	}
	slot, _ := frame.VisibleSlot()
	if slot.RouteID != "dashboard" || slot.View != "dashboard view" {
		t.Fatalf("wrong visible slot %+v", slot)
	}
}

func TestEngineCloseTabRoundTrip(t *testing.T) {
	eng := newEngine(t)
	eng.Navigate("/")
	eng.Render("home view")
	eng.Navigate("/users")
	eng.Render("users view")

	eng.CloseTab("users")
	if eng.ActiveID() != "home" || eng.Location().Pathname != "/" {
		t.Fatalf("expected fallback to home, got %q at %q", eng.ActiveID(), eng.Location().Pathname)
	}
	if got := eng.CachedIDs(); len(got) != 1 || got[0] != "home" {
		t.Fatalf("users cache entry should be gone: %v", got)
	}
}

func TestEngineNonKeepAliveWipes(t *testing.T) {
	eng := newEngine(t)
	eng.Navigate("/dashboard")
	eng.Render("dashboard view")

	eng.Navigate("/login")
	if len(eng.Tabs()) != 0 || len(eng.CachedIDs()) != 0 {
		t.Fatal("login visit must reset the session")
	}
	frame := eng.Render("login form")
	if frame.KeepAlive || frame.Fresh != "login form" {
		t.Fatalf("login renders outside the session: %+v", frame)
	}
}

func TestEngineRouteManagement(t *testing.T) {
	eng := newEngine(t)
	eng.Navigate("/dashboard")
	eng.Navigate("/users")

	if err := eng.AddRoute(types.Route{ID: "reports", Path: "/reports", Title: "Reports", KeepAlive: true}); err != nil {
		t.Fatal(err)
	}
	eng.Navigate("/reports")
	if eng.ActiveID() != "reports" {
		t.Fatalf("expected reports active, got %q", eng.ActiveID())
	}

	// Removing the active route closes its tab and re-navigates.
	if err := eng.RemoveRoute("reports"); err != nil {
		t.Fatal(err)
	}
	if eng.ActiveID() != "users" {
		t.Fatalf("expected users after removal, got %q", eng.ActiveID())
	}
	if _, ok := eng.Match("/reports"); ok {
		t.Fatal("reports should not match anymore")
	}
}

func TestEngineSnapshotRestore(t *testing.T) {
	eng := newEngine(t)
	eng.Navigate("/dashboard")
	eng.Navigate("/users")
	eng.Activate("dashboard")

	snap := eng.Snapshot("current")
	if snap.ActiveID != "dashboard" || len(snap.Tabs) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	other, err := New(Options{Routes: defaultRoutes()})
	if err != nil {
		t.Fatal(err)
	}
	other.Restore(snap)
	if other.ActiveID() != "dashboard" {
		t.Fatalf("expected dashboard active after restore, got %q", other.ActiveID())
	}
	if len(other.Tabs()) != 2 {
		t.Fatalf("expected 2 restored tabs, got %d", len(other.Tabs()))
	}
	if other.Location().Pathname != "/dashboard" {
		t.Fatalf("expected restored location, got %q", other.Location().Pathname)
	}
	// Restored sessions start cold: views are re-captured, not restored.
	if len(other.CachedIDs()) != 0 {
		t.Fatalf("cache must start empty, got %v", other.CachedIDs())
	}
}

func TestMemoryNavigator(t *testing.T) {
	nav := NewMemoryNavigator("/")

	nav.Navigate("/users", false)
	nav.Navigate("/users?page=2", true)
	if got := nav.Location().FullPath(); got != "/users?page=2" {
		t.Fatalf("got %q", got)
	}
	if nav.Depth() != 2 {
		t.Fatalf("replace must not grow the stack, depth=%d", nav.Depth())
	}

	loc, ok := nav.Back()
	if !ok || loc.Pathname != "/" {
		t.Fatalf("back gave %+v %v", loc, ok)
	}
	if _, ok := nav.Back(); ok {
		t.Fatal("cannot go back past the first entry")
	}
}
