package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-vault/internal/config"
	"github.com/vovakirdan/arcade-vault/internal/platform/tui"
	"github.com/vovakirdan/arcade-vault/internal/storage"
	"github.com/vovakirdan/arcade-vault/internal/vault"
)

var flagVaultConfig string

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Open the passcode vault",
	Long: `Open the vault panel. Type the passcode with the digit keys to
reveal the hidden games, then pick one with the arrow keys and Enter.

Controls (locked):
  0-9        - Enter a digit
  Backspace  - Erase
  X          - Clear the code

Controls (unlocked):
  Up/Down    - Move the selection
  Enter      - Play the selected game
  Tab        - Show the runs finished this session
  Esc/B      - Lock the vault again
  Q/Ctrl+C   - Quit

Examples:
  arcade vault
  arcade vault --vault-config ./vault.yaml
  arcade vault --difficulty easy`,
	RunE: runVault,
}

func init() {
	vaultCmd.Flags().StringVar(&flagVaultConfig, "vault-config", "", "Path to custom vault config YAML")
}

func runVault(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := configureRacer(logger); err != nil {
		return err
	}

	vcfg, source, err := config.LoadVault(flagVaultConfig, logSkipped(logger))
	if err != nil {
		return err
	}
	logger.Debug("vault config loaded", "source", source)

	ledger, err := storage.OpenSession()
	if err != nil {
		return fmt.Errorf("opening run ledger: %w", err)
	}
	defer ledger.Close()

	if err := tui.RunVault(vault.New(vcfg), ledger, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running vault: %w", err)
	}
	return nil
}
