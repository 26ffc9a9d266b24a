// In-process CLI tests: each invocation is a fresh root command run against
// an isolated config and data directory, the way one shell call would be.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strayware/tabdeck/pkg/types"
)

// stripJSON mirrors the CLI's --json tab strip output.
type stripJSON struct {
	Session  string         `json:"session"`
	Location types.Location `json:"location"`
	ActiveID string         `json:"active_id"`
	Tabs     []types.Tab    `json:"tabs"`
}

func parseStrip(t *testing.T, out string) stripJSON {
	t.Helper()
	var strip stripJSON
	require.NoError(t, json.Unmarshal([]byte(out), &strip), "parse CLI output: %s", out)
	return strip
}

func TestInitCreatesConfigAndDatabase(t *testing.T) {
	dir := t.TempDir()

	result := mustRunCLI(t, dir, "init")
	assert.Contains(t, result.Stdout, "initialized")

	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err, "config.yaml not written")
	_, err = os.Stat(filepath.Join(dir, "tabdeck.db"))
	require.NoError(t, err, "session database not created")

	// Second init is a no-op, not an error.
	mustRunCLI(t, dir, "init")
}

func TestNavBuildsPersistentStrip(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "init")

	mustRunCLI(t, dir, "nav", "/dashboard")
	mustRunCLI(t, dir, "nav", "/users")
	result := mustRunCLI(t, dir, "--json", "tabs", "list")

	strip := parseStrip(t, result.Stdout)
	require.Len(t, strip.Tabs, 2)
	assert.Equal(t, "dashboard", strip.Tabs[0].ID)
	assert.Equal(t, "users", strip.Tabs[1].ID)
	assert.Equal(t, "users", strip.ActiveID)
	assert.Equal(t, "/users", strip.Location.FullPath())
}

func TestTabOperationsAcrossInvocations(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "init")
	mustRunCLI(t, dir, "nav", "/")
	mustRunCLI(t, dir, "nav", "/dashboard")
	mustRunCLI(t, dir, "nav", "/users")

	result := mustRunCLI(t, dir, "--json", "tabs", "close", "users")
	strip := parseStrip(t, result.Stdout)
	assert.Equal(t, "dashboard", strip.ActiveID)
	assert.Equal(t, "/dashboard", strip.Location.FullPath())

	result = mustRunCLI(t, dir, "--json", "tabs", "rename", "home", "Start")
	strip = parseStrip(t, result.Stdout)
	assert.Equal(t, "Start", strip.Tabs[0].Title)

	result = mustRunCLI(t, dir, "--json", "tabs", "move", "0", "1")
	strip = parseStrip(t, result.Stdout)
	require.Len(t, strip.Tabs, 2)
	assert.Equal(t, "dashboard", strip.Tabs[0].ID)
	assert.Equal(t, "home", strip.Tabs[1].ID)

	result = mustRunCLI(t, dir, "--json", "tabs", "close-all")
	strip = parseStrip(t, result.Stdout)
	assert.Empty(t, strip.Tabs)
	assert.Equal(t, "", strip.ActiveID)
}

func TestSeparateSessionsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "init")

	mustRunCLI(t, dir, "--session", "alpha", "nav", "/dashboard")
	mustRunCLI(t, dir, "--session", "beta", "nav", "/users")

	result := mustRunCLI(t, dir, "--session", "alpha", "--json", "tabs", "list")
	strip := parseStrip(t, result.Stdout)
	require.Len(t, strip.Tabs, 1)
	assert.Equal(t, "dashboard", strip.Tabs[0].ID)

	result = mustRunCLI(t, dir, "--session", "beta", "--json", "tabs", "list")
	strip = parseStrip(t, result.Stdout)
	require.Len(t, strip.Tabs, 1)
	assert.Equal(t, "users", strip.Tabs[0].ID)
}

func TestSessionsListAndDelete(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "init")
	mustRunCLI(t, dir, "--session", "alpha", "nav", "/dashboard")
	mustRunCLI(t, dir, "--session", "beta", "nav", "/users")

	result := mustRunCLI(t, dir, "--json", "sessions", "list")
	var snaps []types.SessionSnapshot
	require.NoError(t, json.Unmarshal([]byte(result.Stdout), &snaps))
	require.Len(t, snaps, 2)

	var alphaID string
	for _, snap := range snaps {
		if snap.Name == "alpha" {
			alphaID = snap.SessionID
		}
	}
	require.NotEmpty(t, alphaID)

	mustRunCLI(t, dir, "sessions", "delete", alphaID)

	result = mustRunCLI(t, dir, "--json", "sessions", "list")
	snaps = nil
	require.NoError(t, json.Unmarshal([]byte(result.Stdout), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, "beta", snaps[0].Name)
}

func TestRoutesListShowsConfiguredTable(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "init")

	result := mustRunCLI(t, dir, "--json", "routes", "list")
	var rs []types.Route
	require.NoError(t, json.Unmarshal([]byte(result.Stdout), &rs))
	require.Len(t, rs, 6)
	assert.Equal(t, "home", rs[0].ID)
	assert.Equal(t, "/", rs[0].Path)
	assert.False(t, rs[5].KeepAlive, "login route is transient")
}

func TestTransientRouteResetsViaCLI(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "init")
	mustRunCLI(t, dir, "nav", "/dashboard")

	result := mustRunCLI(t, dir, "--json", "nav", "/login")
	strip := parseStrip(t, result.Stdout)
	assert.Empty(t, strip.Tabs)
	assert.Equal(t, "/login", strip.Location.FullPath())
}

func TestVersionPrintsModule(t *testing.T) {
	result := mustRunCLI(t, t.TempDir(), "version")
	assert.True(t, strings.HasPrefix(result.Stdout, "tabdeck v"), "got %q", result.Stdout)
}
