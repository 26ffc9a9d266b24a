package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/strayware/tabdeck/pkg/tabdeck"
)

func newTabsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Inspect and manipulate the tab strip",
	}
	cmd.AddCommand(
		newTabsListCmd(),
		newTabsActivateCmd(),
		newTabsCloseCmd(),
		newTabsCloseAllCmd(),
		newTabsCloseOthersCmd(),
		newTabsRenameCmd(),
		newTabsMoveCmd(),
	)
	return cmd
}

func newTabsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the open tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				return printStrip(cmd, eng)
			})
		},
	}
}

func newTabsActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <route-id>",
		Short: "Activate an open tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.Activate(args[0])
				return printStrip(cmd, eng)
			})
		},
	}
}

func newTabsCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <route-id>",
		Short: "Close a tab",
		Long: `Close a tab.

Closing the active tab activates its left neighbor; closing the last
tab navigates the session back to the root path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.CloseTab(args[0])
				return printStrip(cmd, eng)
			})
		},
	}
}

func newTabsCloseAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close-all",
		Short: "Close every tab and clear the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.CloseAll()
				return printStrip(cmd, eng)
			})
		},
	}
}

func newTabsCloseOthersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close-others <route-id>",
		Short: "Close every tab except the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.CloseOthers(args[0])
				return printStrip(cmd, eng)
			})
		},
	}
}

func newTabsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <route-id> <title>",
		Short: "Rename a tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.RenameTab(args[0], args[1])
				return printStrip(cmd, eng)
			})
		},
	}
}

func newTabsMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a tab to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse from index %q: %w", args[0], err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse to index %q: %w", args[1], err)
			}
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.MoveTab(from, to)
				return printStrip(cmd, eng)
			})
		},
	}
}
