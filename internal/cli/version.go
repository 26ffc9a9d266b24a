package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strayware/tabdeck/pkg/tabdeck"
)

const modulePath = "github.com/strayware/tabdeck"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tabdeck version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tabdeck v%s\nmodule: %s\n", tabdeck.Version, modulePath)
			return nil
		},
	}
}
