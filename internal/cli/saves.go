package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// NewSavesCommand creates the saves command.
func NewSavesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "saves [game]",
		Short:        "List saved games, newest first",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			game := ""
			if len(args) > 0 {
				game = args[0]
			}
			return runSaves(rootOpts, game, cmd)
		},
	}
}

func runSaves(opts *RootOptions, game string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	entries, err := store.List(game)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved games")
		return nil
	}

	t := table.New().Headers("GAME", "SLOT", "SAVED", "GAME ID")
	for _, e := range entries {
		t.Row(e.Game, e.Slot, e.Saved, e.GameID)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
