package cli

import (
	"fmt"
	"strconv"

	"go-puzzles/internal/frontend"
	"go-puzzles/internal/games"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets <game>",
		Short: "List a game's presets",
		Long: `List a game's presets: the built-in ones, then any from the
<GAME>_PRESETS environment variable and the config file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(rootOpts, args[0], cmd)
		},
	}
}

func runPresets(opts *RootOptions, name string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	game, err := games.Lookup(name)
	if err != nil {
		return err
	}

	mid := frontend.New(game, frontend.Options{
		Logger:  zerolog.Nop(),
		Presets: cfg.Presets(game.Name()),
	}).Midend()

	t := table.New().Headers("KEY", "TITLE", "PARAMS")
	for i := 0; i < mid.NumPresets(); i++ {
		title, p := mid.Preset(i)
		t.Row(strconv.Itoa(i+1), title, game.EncodeParams(p, true))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
