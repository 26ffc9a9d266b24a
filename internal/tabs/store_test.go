package tabs

import (
	"testing"

	"github.com/strayware/tabdeck/pkg/types"
)

// fakeEvictor records eviction requests.
type fakeEvictor struct {
	removed []string
	cleared int
}

func (f *fakeEvictor) Remove(routeID string) { f.removed = append(f.removed, routeID) }
func (f *fakeEvictor) Clear()                { f.cleared++ }

func openThree(s *Store) {
	s.OpenByRoute("home", "Home", "/", false)
	s.OpenByRoute("dashboard", "Dashboard", "/dashboard", true)
	s.OpenByRoute("users", "Users", "/users", true)
}

func tabIDs(s *Store) []string {
	tabs := s.Tabs()
	ids := make([]string, len(tabs))
	for i, tab := range tabs {
		ids[i] = tab.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOpenByRoute(t *testing.T) {
	t.Run("appends and activates", func(t *testing.T) {
		s := New()
		openThree(s)
		if !equalIDs(tabIDs(s), []string{"home", "dashboard", "users"}) {
			t.Fatalf("unexpected order %v", tabIDs(s))
		}
		if s.ActiveID() != "users" {
			t.Fatalf("expected users active, got %q", s.ActiveID())
		}
	})

	t.Run("single tab per route id", func(t *testing.T) {
		s := New()
		s.OpenByRoute("users", "Users", "/users?page=1", true)
		s.OpenByRoute("users", "Users", "/users?page=2", true)
		s.OpenByRoute("users", "Users", "/users?page=3", true)

		if s.Len() != 1 {
			t.Fatalf("expected one tab, got %d", s.Len())
		}
		tab, _ := s.TabByID("users")
		if tab.Path != "/users?page=3" || tab.LastPath != "/users?page=3" {
			t.Fatalf("expected latest path, got %+v", tab)
		}
		if lp, _ := s.LastPath("users"); lp != "/users?page=3" {
			t.Fatalf("lastPath map stale: %q", lp)
		}
	})

	t.Run("revisit preserves position", func(t *testing.T) {
		s := New()
		openThree(s)
		s.OpenByRoute("home", "Home", "/?welcome=1", false)
		if !equalIDs(tabIDs(s), []string{"home", "dashboard", "users"}) {
			t.Fatalf("position changed: %v", tabIDs(s))
		}
		if s.ActiveID() != "home" {
			t.Fatalf("expected home active, got %q", s.ActiveID())
		}
	})

	t.Run("identical reopen does not notify", func(t *testing.T) {
		s := New()
		s.OpenByRoute("home", "Home", "/", true)
		rev := s.Revision()
		s.OpenByRoute("home", "Home", "/", true)
		if s.Revision() != rev {
			t.Fatal("idempotent reopen should not bump revision")
		}
	})
}

func TestActivate(t *testing.T) {
	s := New()
	openThree(s)

	s.Activate("home")
	if s.ActiveID() != "home" {
		t.Fatalf("expected home, got %q", s.ActiveID())
	}

	// Idempotent: second call leaves state unchanged.
	rev := s.Revision()
	s.Activate("home")
	if s.Revision() != rev {
		t.Fatal("repeat activation should not bump revision")
	}

	// Unknown id is a no-op.
	s.Activate("nonexistent")
	if s.ActiveID() != "home" || s.Revision() != rev {
		t.Fatal("unknown id must be ignored")
	}
}

func TestCloseActiveTab(t *testing.T) {
	t.Run("middle tab falls to left neighbor", func(t *testing.T) {
		s := New()
		openThree(s)
		s.Activate("dashboard")

		s.Close("dashboard")
		if !equalIDs(tabIDs(s), []string{"home", "users"}) {
			t.Fatalf("unexpected tabs %v", tabIDs(s))
		}
		if s.ActiveID() != "home" {
			t.Fatalf("expected left neighbor home, got %q", s.ActiveID())
		}
		target, ok := s.TakePendingNavigation()
		if !ok || target != "/" {
			t.Fatalf("expected pending navigation to /, got %q %v", target, ok)
		}
	})

	t.Run("first tab falls to right neighbor", func(t *testing.T) {
		s := New()
		s.OpenByRoute("home", "Home", "/", true)
		s.OpenByRoute("users", "Users", "/users", true)
		s.Activate("home")

		s.Close("home")
		if !equalIDs(tabIDs(s), []string{"users"}) {
			t.Fatalf("unexpected tabs %v", tabIDs(s))
		}
		if s.ActiveID() != "users" {
			t.Fatalf("expected users, got %q", s.ActiveID())
		}
		target, _ := s.TakePendingNavigation()
		if target != "/users" {
			t.Fatalf("expected /users, got %q", target)
		}
	})

	t.Run("last remaining tab clears active", func(t *testing.T) {
		s := New()
		s.OpenByRoute("home", "Home", "/", true)

		s.Close("home")
		if s.Len() != 0 || s.ActiveID() != "" {
			t.Fatalf("expected empty store, got %v active=%q", tabIDs(s), s.ActiveID())
		}
		target, ok := s.TakePendingNavigation()
		if !ok || target != RootPath {
			t.Fatalf("expected root pending, got %q %v", target, ok)
		}
	})

	t.Run("replacement target prefers last path", func(t *testing.T) {
		s := New()
		openThree(s)
		s.OpenByRoute("dashboard", "Dashboard", "/dashboard?range=7d", true)
		s.Activate("users")

		s.Close("users")
		if s.ActiveID() != "dashboard" {
			t.Fatalf("expected dashboard, got %q", s.ActiveID())
		}
		target, _ := s.TakePendingNavigation()
		if target != "/dashboard?range=7d" {
			t.Fatalf("expected last path target, got %q", target)
		}
	})
}

func TestCloseInactiveTab(t *testing.T) {
	s := New()
	openThree(s)
	s.Activate("users")

	s.Close("dashboard")
	if s.ActiveID() != "users" {
		t.Fatalf("active must not change, got %q", s.ActiveID())
	}
	if _, ok := s.TakePendingNavigation(); ok {
		t.Fatal("closing an inactive tab must not emit pending navigation")
	}
	if _, ok := s.LastPath("dashboard"); ok {
		t.Fatal("lastPath entry should be cleaned up")
	}
}

func TestCloseEvictsCache(t *testing.T) {
	ev := &fakeEvictor{}
	s := New()
	s.SetEvictor(ev)
	openThree(s)

	s.Close("dashboard")
	if len(ev.removed) != 1 || ev.removed[0] != "dashboard" {
		t.Fatalf("expected dashboard eviction, got %v", ev.removed)
	}
}

func TestCloseAll(t *testing.T) {
	ev := &fakeEvictor{}
	s := New()
	s.SetEvictor(ev)
	openThree(s)

	s.CloseAll()
	if s.Len() != 0 || s.ActiveID() != "" {
		t.Fatal("expected empty store")
	}
	if ev.cleared != 1 {
		t.Fatalf("expected one cache clear, got %d", ev.cleared)
	}
	if _, ok := s.TakePendingNavigation(); ok {
		t.Fatal("closeAll must not emit pending navigation")
	}

	// Second call is a no-op.
	rev := s.Revision()
	s.CloseAll()
	if s.Revision() != rev || ev.cleared != 1 {
		t.Fatal("repeat closeAll should be silent")
	}
}

func TestCloseOthers(t *testing.T) {
	ev := &fakeEvictor{}
	s := New()
	s.SetEvictor(ev)
	openThree(s)
	s.Activate("home")

	s.CloseOthers("dashboard")
	if !equalIDs(tabIDs(s), []string{"dashboard"}) {
		t.Fatalf("unexpected tabs %v", tabIDs(s))
	}
	if s.ActiveID() != "dashboard" {
		t.Fatalf("expected dashboard active, got %q", s.ActiveID())
	}
	if len(ev.removed) != 2 {
		t.Fatalf("expected two evictions, got %v", ev.removed)
	}
	if _, ok := s.LastPath("home"); ok {
		t.Fatal("other lastPath entries should be dropped")
	}
	if lp, ok := s.LastPath("dashboard"); !ok || lp != "/dashboard" {
		t.Fatalf("kept tab lastPath lost: %q %v", lp, ok)
	}

	// Unknown id is a no-op.
	rev := s.Revision()
	s.CloseOthers("nonexistent")
	if s.Revision() != rev || s.Len() != 1 {
		t.Fatal("unknown id must be ignored")
	}
}

func TestRenameAndUpdatePath(t *testing.T) {
	s := New()
	openThree(s)

	s.Rename("users", "Members")
	tab, _ := s.TabByID("users")
	if tab.Title != "Members" {
		t.Fatalf("expected renamed title, got %q", tab.Title)
	}

	s.UpdateTabPath("users", "/users?page=9")
	tab, _ = s.TabByID("users")
	if tab.Path != "/users?page=9" || tab.LastPath != "/users?page=9" {
		t.Fatalf("path not updated: %+v", tab)
	}
	if lp, _ := s.LastPath("users"); lp != "/users?page=9" {
		t.Fatalf("lastPath map not refreshed: %q", lp)
	}

	// Unknown ids leave state unchanged.
	rev := s.Revision()
	s.Rename("nonexistent", "X")
	s.UpdateTabPath("nonexistent", "/x")
	if s.Revision() != rev {
		t.Fatal("unknown ids must be ignored")
	}
}

func TestReorder(t *testing.T) {
	s := New()
	s.OpenByRoute("home", "Home", "/", true)
	s.OpenByRoute("users", "Users", "/users", true)
	s.OpenByRoute("settings", "Settings", "/settings", true)

	s.Reorder(0, 2)
	if !equalIDs(tabIDs(s), []string{"users", "settings", "home"}) {
		t.Fatalf("unexpected order %v", tabIDs(s))
	}

	// Out-of-range indexes are ignored.
	rev := s.Revision()
	s.Reorder(-1, 1)
	s.Reorder(0, 5)
	s.Reorder(2, 2)
	if s.Revision() != rev {
		t.Fatal("invalid reorder must be a no-op")
	}
	if s.ActiveID() != "settings" {
		t.Fatalf("reorder must not touch active pointer, got %q", s.ActiveID())
	}
}

func TestNoOpSafety(t *testing.T) {
	s := New()
	openThree(s)
	rev := s.Revision()

	s.Close("nonexistent")
	s.Activate("nonexistent")
	s.Rename("nonexistent", "t")

	if s.Revision() != rev || s.Len() != 3 {
		t.Fatal("state must be unchanged after unknown-id operations")
	}
}

func TestHandleRouteRemoved(t *testing.T) {
	s := New()
	openThree(s)
	s.Activate("dashboard")

	s.HandleRouteRemoved("dashboard")
	if s.ActiveID() != "home" {
		t.Fatalf("expected same tie-break as Close, got %q", s.ActiveID())
	}
	if _, ok := s.TakePendingNavigation(); !ok {
		t.Fatal("expected pending navigation")
	}
}

func TestPendingNavigationConsumedOnce(t *testing.T) {
	s := New()
	s.OpenByRoute("home", "Home", "/", true)
	s.Close("home")

	if _, ok := s.TakePendingNavigation(); !ok {
		t.Fatal("expected pending target")
	}
	if _, ok := s.TakePendingNavigation(); ok {
		t.Fatal("pending target must be one-shot")
	}
}

func TestPendingNavigationLastWriteWins(t *testing.T) {
	s := New()
	openThree(s)
	s.Activate("users")

	s.Close("users") // pending -> dashboard's path
	s.Close("dashboard")

	target, ok := s.TakePendingNavigation()
	if !ok || target != "/" {
		t.Fatalf("superseding close should overwrite pending, got %q %v", target, ok)
	}
}

func TestOnChangeNotification(t *testing.T) {
	s := New()
	var calls int
	s.OnChange(func() { calls++ })

	s.OpenByRoute("home", "Home", "/", true)
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}

	// No-ops stay silent.
	s.Activate("nonexistent")
	s.Close("nonexistent")
	if calls != 1 {
		t.Fatalf("no-ops must not notify, got %d", calls)
	}

	// Listener re-entry must not deadlock.
	s.OnChange(func() { _ = s.ActiveID() })
	s.OpenByRoute("users", "Users", "/users", true)
}

func TestRestore(t *testing.T) {
	s := New()
	snap := types.SessionSnapshot{
		Tabs: []types.Tab{
			{ID: "home", Title: "Home", Path: "/", LastPath: "/", Closable: false},
			{ID: "users", Title: "Users", Path: "/users?page=2", LastPath: "/users?page=2", Closable: true},
		},
		ActiveID: "users",
	}

	s.Restore(snap)
	if !equalIDs(tabIDs(s), []string{"home", "users"}) {
		t.Fatalf("unexpected tabs %v", tabIDs(s))
	}
	if s.ActiveID() != "users" {
		t.Fatalf("expected users active, got %q", s.ActiveID())
	}
	if lp, _ := s.LastPath("users"); lp != "/users?page=2" {
		t.Fatalf("lastPath not rebuilt: %q", lp)
	}

	// Active id not present in the snapshot tabs is dropped.
	snap.ActiveID = "ghost"
	s.Restore(snap)
	if s.ActiveID() != "" {
		t.Fatalf("expected no active tab, got %q", s.ActiveID())
	}
}
