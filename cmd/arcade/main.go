// arcade is a passcode-gated arcade vault for the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game directly
//	arcade vault             - Open the vault and pick a game
//	arcade serve             - Host the vault over SSH
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Racer config YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-vault/internal/config"
	"github.com/vovakirdan/arcade-vault/internal/core"
	"github.com/vovakirdan/arcade-vault/internal/games/racer"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Vault - hidden games behind a passcode",
	Long: `Arcade Vault hides a set of keyboard-only mini games behind a
passcode panel. Unlock it to pick a game; runs finished during a session
are listed until you leave, nothing is kept afterwards.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  vault    - Open the vault
  serve    - Host the vault over SSH

Examples:
  arcade list
  arcade play racer --difficulty hard
  arcade vault
  arcade serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom racer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(vaultCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Interactive sessions own the
// terminal, so without --log-file their logs are discarded. The returned
// func closes the log file, if any.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	cleanup := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		cleanup = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
	return logger, cleanup, nil
}

// configureRacer loads the racer config, applies the difficulty preset and
// hands the result to the racer package for games created afterwards.
func configureRacer(logger *log.Logger) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, source, err := config.LoadRacer(flagConfig, logSkipped(logger))
	if err != nil {
		return err
	}
	config.ApplyRacerPreset(&cfg, preset)
	racer.SetConfig(cfg)

	logger.Debug("racer config loaded", "source", source, "difficulty", preset)
	return nil
}

// logSkipped warns about config files on the search path that were ignored.
func logSkipped(logger *log.Logger) config.LoadOption {
	return config.WithSkipHandler(func(path string, err error) {
		logger.Warn("config file skipped, falling back", "path", path, "err", err)
	})
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
