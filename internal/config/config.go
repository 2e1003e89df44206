// Package config provides YAML-based configuration for the racer and the
// vault, plus difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// RacerConfig contains all configuration for the lane racer.
type RacerConfig struct {
	Playfield RacerPlayfield `yaml:"playfield"`
	Road      RacerRoad      `yaml:"road"`
	Car       RacerCar       `yaml:"car"`
	Obstacles RacerObstacles `yaml:"obstacles"`
	Speed     RacerSpeed     `yaml:"speed"`
	Render    RacerRender    `yaml:"render"`
}

// RacerPlayfield is the logical playfield size. Simulation runs in these units.
type RacerPlayfield struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RacerRoad describes the road centered in the playfield.
type RacerRoad struct {
	Width      float64 `yaml:"width"`
	Lanes      int     `yaml:"lanes"`
	TilePeriod float64 `yaml:"tile_period"` // Scroll offset wraps at this value
}

// RacerCar is the player's car.
type RacerCar struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between car and playfield bottom
}

// RacerObstacles controls oncoming traffic.
type RacerObstacles struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	SpawnRate  float64 `yaml:"spawn_rate"`  // Per-tick spawn probability
	Variants   int     `yaml:"variants"`    // Number of visual variants
	DangerBand float64 `yaml:"danger_band"` // Look-ahead depth below the top edge
}

// RacerSpeed controls the speed ramp.
type RacerSpeed struct {
	Initial   float64 `yaml:"initial"`
	Increment float64 `yaml:"increment"` // Added every tick
}

// RacerRender controls terminal rendering.
type RacerRender struct {
	LaneColumns int `yaml:"lane_columns"` // Terminal columns per lane
}

// LaneX returns the left edge of an object of the given width centered in lane.
func (c RacerConfig) LaneX(lane int, width float64) float64 {
	laneW := c.LaneWidth()
	return c.RoadLeft() + float64(lane)*laneW + (laneW-width)/2
}

// LaneWidth returns the width of one lane.
func (c RacerConfig) LaneWidth() float64 {
	return c.Road.Width / float64(c.Road.Lanes)
}

// RoadLeft returns the x coordinate of the road's left edge.
func (c RacerConfig) RoadLeft() float64 {
	return (c.Playfield.Width - c.Road.Width) / 2
}

// Validate checks that the config describes a playable road.
func (c RacerConfig) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield must have positive size", ErrInvalidConfig)
	case c.Road.Width <= 0 || c.Road.Width > c.Playfield.Width:
		return fmt.Errorf("%w: road width %.0f must be in (0, %.0f]", ErrInvalidConfig, c.Road.Width, c.Playfield.Width)
	case c.Road.Lanes < 1:
		return fmt.Errorf("%w: road needs at least one lane", ErrInvalidConfig)
	case c.Road.TilePeriod <= 0:
		return fmt.Errorf("%w: tile_period must be positive", ErrInvalidConfig)
	case c.Car.Width <= 0 || c.Car.Height <= 0 || c.Car.Width > c.LaneWidth():
		return fmt.Errorf("%w: car must fit in a lane", ErrInvalidConfig)
	case c.Car.Height+c.Car.BottomMargin > c.Playfield.Height:
		return fmt.Errorf("%w: car does not fit in the playfield", ErrInvalidConfig)
	case c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 || c.Obstacles.Width > c.LaneWidth():
		return fmt.Errorf("%w: obstacles must fit in a lane", ErrInvalidConfig)
	case c.Obstacles.SpawnRate < 0 || c.Obstacles.SpawnRate > 1:
		return fmt.Errorf("%w: spawn_rate %.4f must be a probability", ErrInvalidConfig, c.Obstacles.SpawnRate)
	case c.Obstacles.Variants < 1:
		return fmt.Errorf("%w: need at least one obstacle variant", ErrInvalidConfig)
	case c.Obstacles.DangerBand < 0:
		return fmt.Errorf("%w: danger_band must not be negative", ErrInvalidConfig)
	case c.Speed.Initial <= 0 || c.Speed.Increment < 0:
		return fmt.Errorf("%w: speed must start positive and never decrease", ErrInvalidConfig)
	case c.Render.LaneColumns < 1:
		return fmt.Errorf("%w: lane_columns must be positive", ErrInvalidConfig)
	}
	return nil
}

// VaultConfig configures the passcode gate.
type VaultConfig struct {
	Passcode string `yaml:"passcode"`
	Hint     string `yaml:"hint"`
	Title    string `yaml:"title"`
}

// Validate checks that the passcode is a non-empty string of decimal digits.
func (c VaultConfig) Validate() error {
	if c.Passcode == "" {
		return fmt.Errorf("%w: vault passcode is empty", ErrInvalidConfig)
	}
	for _, r := range c.Passcode {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: vault passcode must be digits only", ErrInvalidConfig)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means keep the config as loaded.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyRacerPreset scales the speed ramp and traffic density for a preset.
// Normal leaves the loaded config untouched.
func ApplyRacerPreset(cfg *RacerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Initial *= 0.8
		cfg.Speed.Increment *= 0.5
		cfg.Obstacles.SpawnRate *= 0.75
	case DifficultyHard:
		cfg.Speed.Initial *= 1.4
		cfg.Speed.Increment *= 2
		cfg.Obstacles.SpawnRate *= 1.5
		if cfg.Obstacles.SpawnRate > 1 {
			cfg.Obstacles.SpawnRate = 1
		}
	}
}
