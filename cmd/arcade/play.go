package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-vault/internal/platform/tui"
	"github.com/vovakirdan/arcade-vault/internal/registry"
	"github.com/vovakirdan/arcade-vault/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game without going through the vault.

Controls:
  Left/A, Right/D  - Change lane
  Space            - Pause / resume
  R                - Reset the run
  Esc/B            - Close the game
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, fewer obstacles
  normal - Defaults
  hard   - Faster start, denser traffic

Examples:
  arcade play racer
  arcade play racer --difficulty hard
  arcade play racer --config ./my-racer.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := configureRacer(logger); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	ledger, err := storage.OpenSession()
	if err != nil {
		logger.Warn("run ledger unavailable", "err", err)
		ledger = nil
	}
	if ledger != nil {
		defer ledger.Close()
	}

	logger.Info("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, ledger, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
