package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

//go:embed defaults/vault.yaml
var defaultVaultYAML []byte

// DefaultRacerConfig returns the built-in racer configuration. It matches
// defaults/racer.yaml and is used when even the embedded file cannot be parsed.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Playfield: RacerPlayfield{Width: 400, Height: 600},
		Road:      RacerRoad{Width: 300, Lanes: 3, TilePeriod: 40},
		Car:       RacerCar{Width: 40, Height: 70, BottomMargin: 20},
		Obstacles: RacerObstacles{
			Width:      40,
			Height:     70,
			SpawnRate:  0.015,
			Variants:   3,
			DangerBand: 140, // two obstacle lengths
		},
		Speed:  RacerSpeed{Initial: 5, Increment: 0.0005},
		Render: RacerRender{LaneColumns: 7},
	}
}

// DefaultVaultConfig returns the built-in vault configuration.
func DefaultVaultConfig() VaultConfig {
	return VaultConfig{
		Title:    "Hidden Arcade",
		Passcode: "2005",
		Hint:     "Hint: check below my résumé for the year I was established",
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "racer":
		return defaultRacerYAML
	case "vault":
		return defaultVaultYAML
	default:
		return nil
	}
}
