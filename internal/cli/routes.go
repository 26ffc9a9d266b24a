package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strayware/tabdeck/pkg/tabdeck"
	"github.com/strayware/tabdeck/pkg/types"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect the configured route table",
	}
	cmd.AddCommand(newRoutesListCmd())
	return cmd
}

func newRoutesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				return printRoutes(cmd, eng.Routes())
			})
		},
	}
}

func printRoutes(cmd *cobra.Command, rs []types.Route) error {
	if flags.jsonMode {
		data, err := json.MarshalIndent(rs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := cmd.OutOrStdout()
	for _, r := range rs {
		keep := "keep-alive"
		if !r.KeepAlive {
			keep = "transient"
		}
		fmt.Fprintf(w, "%-16s %-24s %-12s %s\n", r.ID, r.Path, keep, r.Title)
	}
	return nil
}
