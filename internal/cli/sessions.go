package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strayware/tabdeck/internal/session"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved sessions",
	}
	cmd.AddCommand(newSessionsListCmd(), newSessionsDeleteCmd())
	return cmd
}

// withSessionStore opens session storage from the resolved data dir and
// runs fn against it, without building an engine.
func withSessionStore(fn func(store *session.Store) error) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
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
	return fn(store)
}

func newSessionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionStore(func(store *session.Store) error {
				snaps, err := store.List()
				if err != nil {
					return fmt.Errorf("list sessions: %w", err)
				}

				if flags.jsonMode {
					data, err := json.MarshalIndent(snaps, "", "  ")
					if err != nil {
						return fmt.Errorf("marshal output: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}

				w := cmd.OutOrStdout()
				if len(snaps) == 0 {
					fmt.Fprintln(w, "no saved sessions")
					return nil
				}
				for _, snap := range snaps {
					fmt.Fprintf(w, "%-36s %-16s %2d tabs  %s\n",
						snap.SessionID, snap.Name, len(snap.Tabs), snap.Location.FullPath())
				}
				return nil
			})
		},
	}
}

func newSessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionStore(func(store *session.Store) error {
				if err := store.Delete(args[0]); err != nil {
					return fmt.Errorf("delete session %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
				return nil
			})
		},
	}
}
