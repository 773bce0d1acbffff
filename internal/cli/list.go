package cli

import (
	"fmt"

	"go-puzzles/internal/games"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List the available games",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, g := range games.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", g.Name())
			}
			return nil
		},
	}
}
