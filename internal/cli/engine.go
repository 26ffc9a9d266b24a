package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strayware/tabdeck/internal/session"
	"github.com/strayware/tabdeck/pkg/tabdeck"
	"github.com/strayware/tabdeck/pkg/types"
)

// withEngine loads the configured route table and the named session,
// builds an engine around them, runs fn, and saves the session back.
func withEngine(cmd *cobra.Command, fn func(eng *tabdeck.Engine) error) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	rs, err := loadRoutes(v)
	if err != nil {
		return err
	}
	dataDir, err := resolveDataDir(v)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	store := session.New()
	if err := store.Open(dataDir); err != nil {
		return fmt.Errorf("open session storage: %w", err)
	}
	defer store.Close()

	eng, err := tabdeck.New(tabdeck.Options{Routes: rs})
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	var sessionID string
	snap, err := store.LoadByName(flags.session)
	switch {
	case err == nil:
		sessionID = snap.SessionID
		eng.Restore(snap)
	case errors.Is(err, types.ErrSessionNotFound):
		// First use of this session name; start empty.
	default:
		return fmt.Errorf("load session %q: %w", flags.session, err)
	}

	if err := fn(eng); err != nil {
		return err
	}

	out := eng.Snapshot(flags.session)
	out.SessionID = sessionID
	if _, err := store.Save(out); err != nil {
		return fmt.Errorf("save session %q: %w", flags.session, err)
	}
	return nil
}

// tabsOutput is the JSON shape printed by commands that show the strip.
type tabsOutput struct {
	Session  string         `json:"session"`
	Location types.Location `json:"location"`
	ActiveID string         `json:"active_id"`
	Tabs     []types.Tab    `json:"tabs"`
}

// printStrip writes the current tab strip, as JSON with --json or as an
// aligned text listing otherwise. The active tab is marked with "*".
func printStrip(cmd *cobra.Command, eng *tabdeck.Engine) error {
	out := tabsOutput{
		Session:  flags.session,
		Location: eng.Location(),
		ActiveID: eng.ActiveID(),
		Tabs:     eng.Tabs(),
	}

	if flags.jsonMode {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "session %s at %s\n", out.Session, out.Location.FullPath())
	if len(out.Tabs) == 0 {
		fmt.Fprintln(w, "no open tabs")
		return nil
	}
	for _, tab := range out.Tabs {
		marker := " "
		if tab.ID == out.ActiveID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %-24s %s\n", marker, tab.ID, tab.Path, tab.Title)
	}
	return nil
}
