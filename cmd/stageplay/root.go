package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nathoo/stageplay/cli"
	"github.com/nathoo/stageplay/config"
	"github.com/nathoo/stageplay/engine"
	"github.com/nathoo/stageplay/engine/save"
	"github.com/nathoo/stageplay/loader"
	"github.com/nathoo/stageplay/logging"
	"github.com/nathoo/stageplay/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultWorldFile is played when no world file is named.
const defaultWorldFile = "game.yaml"

type playOptions struct {
	plain   bool
	script  string
	trace   bool
	debug   bool
	saveDir string
}

func newRootCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "stageplay [world-file]",
		Short: "Play an interactive fiction world",
		Long: `stageplay loads a world of stages, paths, items and triggers from a
YAML, JSON or Lua document and runs it as a text adventure.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultWorldFile
			if len(args) > 0 {
				path = args[0]
			}
			return runPlay(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Use the line-oriented console instead of the full-screen UI")
	cmd.Flags().StringVar(&opts.script, "script", "", "Play commands from a file, echoing each one")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print the effects and events of every command")
	cmd.Flags().StringVar(&opts.saveDir, "save-dir", "", "Directory for save files (overrides STAGEPLAY_SAVE_DIR)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")

	cmd.AddCommand(newVersionCmd(), newValidateCmd())
	return cmd
}

func runPlay(cmd *cobra.Command, path string, opts playOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.saveDir != "" {
		cfg.SaveDir = opts.saveDir
	}
	logger := newLogger(cfg, opts.debug)

	w, err := loader.Load(path, logger)
	if err != nil {
		// A broken world is reported and the session never starts.
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	}

	store, closeStore := newStore(cfg)
	defer closeStore()
	logger.Debug("save store ready", "backend", cfg.SaveBackend, "location", store.Location(w.SaveName))

	eng := engine.New(w, engine.WithStore(store), engine.WithLogger(logger))

	// Script mode: read commands from the file, force plain, echo commands.
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()

		c := cli.New(eng)
		c.In = f
		c.Out = out
		c.Logger = logger
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run(ctx)
		return nil
	}

	// Use the plain console if asked to or when stdout is not a terminal.
	if opts.plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		c := cli.New(eng)
		c.Out = out
		c.Logger = logger
		c.Trace = opts.trace
		c.Run(ctx)
		return nil
	}

	return tui.Run(ctx, eng)
}

// newLogger picks the level from --debug, then STAGEPLAY_LOG_LEVEL, and
// defaults to warnings only.
func newLogger(cfg *config.Config, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if l, ok := logging.ParseLevel(cfg.LogLevel); ok {
		level = l
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// newStore builds the configured slot store and its release function.
func newStore(cfg *config.Config) (save.Store, func()) {
	if cfg.SaveBackend == config.BackendRedis {
		rs := save.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, save.WithPrefix(cfg.RedisPrefix))
		return rs, func() { _ = rs.Close() }
	}
	return save.NewFileStore(cfg.SaveDir), func() {}
}
