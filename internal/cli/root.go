// Package cli wires the command line: the root command plays a puzzle in the
// terminal and the subcommands inspect games, presets and saves.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-puzzles/internal/config"
	"go-puzzles/internal/frontend"
	"go-puzzles/internal/games"
	"go-puzzles/internal/savestore"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// PlayOptions holds the flags of the root command itself.
type PlayOptions struct {
	ID   string
	Load string
	Slot string
}

// NewRootCommand creates the root command, which plays a game.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	play := &PlayOptions{}

	cmd := &cobra.Command{
		Use:   "go-puzzles [game]",
		Short: "Logic puzzles in the terminal",
		Long: `Play logic puzzles in the terminal.

A game ID may be given as params ("4x4"), params and seed ("4x4#1234")
or params and description ("4x4:..."). Press ? in a game for help.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, play, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level, overriding the config file")

	cmd.Flags().StringVar(&play.ID, "id", "", "game ID to start with")
	cmd.Flags().StringVar(&play.Load, "load", "", "saved game file to load")
	cmd.Flags().StringVar(&play.Slot, "slot", "", "save slot to load")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewPresetsCommand(opts))
	cmd.AddCommand(NewSavesCommand(opts))

	return cmd
}

// loadConfig reads .env and the config file.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if err := config.LoadEnv(".env"); err != nil {
		return nil, err
	}
	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

func openStore(cfg *config.Config) (*savestore.FileStorage, error) {
	dir := cfg.SaveDir
	if dir == "" {
		d, err := savestore.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return savestore.NewFileStorage(dir), nil
}

// newLogger logs to the configured file; a terminal UI has nowhere else to
// write. Without a log file nothing is logged.
func newLogger(opts *RootOptions, cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	level := cfg.Level()
	if opts.LogLevel != "" {
		l, err := zerolog.ParseLevel(opts.LogLevel)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", opts.LogLevel, err)
		}
		level = l
	}
	if cfg.LogFile == "" {
		return zerolog.Nop(), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
}

// setup builds a ready-to-run model from the flags and arguments.
func setup(play *PlayOptions, args []string, log zerolog.Logger, cfg *config.Config) (*frontend.Model, error) {
	name := cfg.DefaultGame
	if len(args) > 0 {
		name = args[0]
	}
	game, err := games.Lookup(name)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	model := frontend.New(game, frontend.Options{
		Logger:  log,
		Store:   store,
		Presets: cfg.Presets(game.Name()),
	})

	switch {
	case play.Load != "":
		f, err := os.Open(play.Load)
		if err != nil {
			return nil, fmt.Errorf("failed to open saved game: %w", err)
		}
		defer f.Close()
		if err := model.Load(f); err != nil {
			return nil, fmt.Errorf("%s: %w", play.Load, err)
		}
	case play.Slot != "":
		data, err := store.Load(game.Name(), play.Slot)
		if err != nil {
			return nil, err
		}
		if err := model.Load(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("slot %s: %w", play.Slot, err)
		}
	default:
		id := play.ID
		if id == "" {
			id = cfg.Game(game.Name()).Params
		}
		if err := model.Start(id); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func runPlay(opts *RootOptions, play *PlayOptions, args []string) error {
	if play.Load != "" && play.Slot != "" {
		return errors.New("--load and --slot cannot be used together")
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(opts, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	model, err := setup(play, args, log, cfg)
	if err != nil {
		return err
	}

	log.Info().Str("game", model.Midend().Game().Name()).Msg("starting")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
