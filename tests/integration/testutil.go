// Package integration provides end-to-end tests for the tabdeck engine,
// session persistence, and CLI host.
package integration

import (
	"bytes"
	"testing"

	"github.com/strayware/tabdeck/internal/cli"
	"github.com/strayware/tabdeck/pkg/tabdeck"
	"github.com/strayware/tabdeck/pkg/types"
)

// adminRoutes is the route table used across integration tests. It mirrors
// the default table the CLI writes on init: keep-alive pages plus one
// transient login route.
func adminRoutes() []types.Route {
	return []types.Route{
		{ID: "home", Path: "/", Title: "Home", KeepAlive: true},
		{ID: "dashboard", Path: "/dashboard", Title: "Dashboard", KeepAlive: true},
		{ID: "users", Path: "/users", Title: "Users", KeepAlive: true},
		{ID: "user-detail", Path: "/users/:id", Title: "User", KeepAlive: true},
		{ID: "settings", Path: "/settings", Title: "Settings", KeepAlive: true},
		{ID: "login", Path: "/login", Title: "Login", KeepAlive: false},
	}
}

// newEngine builds an engine over adminRoutes with a fresh in-memory
// navigator, failing the test on wiring errors.
func newEngine(t *testing.T) (*tabdeck.Engine, *tabdeck.MemoryNavigator) {
	t.Helper()
	nav := tabdeck.NewMemoryNavigator("/")
	eng, err := tabdeck.New(tabdeck.Options{Routes: adminRoutes(), Navigator: nav})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng, nav
}

// cliResult holds the output of one in-process CLI invocation.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the tabdeck root command in-process against an isolated
// config and data directory.
func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", dir, "--data-dir", dir}, args...))
	err := root.Execute()
	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// mustRunCLI is runCLI that fails the test on error.
func mustRunCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	result := runCLI(t, dir, args...)
	if result.Err != nil {
		t.Fatalf("run %v: %v\nstderr: %s", args, result.Err, result.Stderr)
	}
	return result
}
