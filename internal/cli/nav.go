package cli

import (
	"github.com/spf13/cobra"

	"github.com/strayware/tabdeck/pkg/tabdeck"
)

func newNavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav <path>",
		Short: "Navigate the session to a path",
		Long: `Navigate the session to a path.

Matching the path against the route table opens or activates the
corresponding tab. Paths that match no route leave the strip unchanged,
and paths matching a route without keep-alive reset the session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(eng *tabdeck.Engine) error {
				eng.Navigate(args[0])
				return printStrip(cmd, eng)
			})
		},
	}
	return cmd
}
