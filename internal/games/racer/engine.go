// Package racer implements a three-lane dodging game: oncoming cars scroll
// down the road, the player switches lanes to avoid them, and every car that
// leaves the bottom of the playfield scores a point.
package racer

import (
	"github.com/vovakirdan/arcade-vault/internal/config"
	"github.com/vovakirdan/arcade-vault/internal/core"
)

// Source is the randomness the engine draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Obstacle is an oncoming car.
type Obstacle struct {
	X, Y    float64 // Top-left corner in playfield units
	Lane    int
	Variant int // Visual variant, purely cosmetic
}

// TickOutcome describes what one Tick did.
type TickOutcome struct {
	Advanced bool // False when the tick was skipped (paused or over)
	Spawned  bool
	Passed   int  // Obstacles that left the playfield this tick
	Crashed  bool // The run ended this tick
}

// Snapshot is a read-only copy of the run state for renderers and tests.
type Snapshot struct {
	Lane      int
	Player    core.Box
	Obstacles []Obstacle
	Offset    float64
	Speed     float64
	Score     int
	HighScore int
	Ticks     int
	Paused    bool
	Over      bool
}

// Engine owns all mutable run state. It is not safe for concurrent use;
// the host serializes ticks and input on one goroutine.
type Engine struct {
	cfg config.RacerConfig
	rng Source

	lane      int
	obstacles []Obstacle
	offset    float64
	speed     float64
	score     int
	highScore int
	ticks     int
	paused    bool
	over      bool
}

// NewEngine creates an engine at the initial run state.
func NewEngine(cfg config.RacerConfig, rng Source) *Engine {
	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
	e.Reset()
	return e
}

// Reset starts a new run. The session high score is kept.
func (e *Engine) Reset() {
	e.obstacles = e.obstacles[:0]
	e.offset = 0
	e.score = 0
	e.speed = e.cfg.Speed.Initial
	e.lane = e.centerLane()
	e.ticks = 0
	e.paused = false
	e.over = false
}

func (e *Engine) centerLane() int {
	return (e.cfg.Road.Lanes - 1) / 2
}

// Tick advances the run by one frame: scroll, spawn, integrate and prune,
// collide, then ramp the speed. It does nothing while paused or over.
func (e *Engine) Tick() TickOutcome {
	if e.over || e.paused {
		return TickOutcome{}
	}
	out := TickOutcome{Advanced: true}
	e.ticks++

	e.offset += e.speed
	if e.offset >= e.cfg.Road.TilePeriod {
		e.offset = 0
	}

	if e.rng.Float64() < e.cfg.Obstacles.SpawnRate {
		out.Spawned = e.spawn()
	}

	out.Passed = e.advanceObstacles()
	e.score += out.Passed

	player := e.PlayerBox()
	for _, o := range e.obstacles {
		if player.Overlaps(e.obstacleBox(o)) {
			e.over = true
			e.highScore = max(e.highScore, e.score)
			out.Crashed = true
			return out
		}
	}

	e.speed += e.cfg.Speed.Increment
	return out
}

// MoveLeft shifts the player one lane left, stopping at the edge.
func (e *Engine) MoveLeft() {
	e.shiftLane(-1)
}

// MoveRight shifts the player one lane right, stopping at the edge.
func (e *Engine) MoveRight() {
	e.shiftLane(1)
}

func (e *Engine) shiftLane(delta int) {
	if e.paused || e.over {
		return
	}
	e.lane = core.Clamp(e.lane+delta, 0, e.cfg.Road.Lanes-1)
}

// Pause suspends an active run.
func (e *Engine) Pause() {
	if e.over {
		return
	}
	e.paused = true
}

// Resume continues a paused run exactly where it stopped.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.paused = false
}

// PlayerBox returns the player's hitbox. The car sits at a fixed height near
// the bottom of the playfield and only its lane varies.
func (e *Engine) PlayerBox() core.Box {
	c := e.cfg.Car
	return core.NewBox(
		e.cfg.LaneX(e.lane, c.Width),
		e.cfg.Playfield.Height-c.Height-c.BottomMargin,
		c.Width,
		c.Height,
	)
}

func (e *Engine) obstacleBox(o Obstacle) core.Box {
	return core.NewBox(o.X, o.Y, e.cfg.Obstacles.Width, e.cfg.Obstacles.Height)
}

// State returns the platform-facing part of the run state.
func (e *Engine) State() core.GameState {
	return core.GameState{
		Score:     e.score,
		HighScore: e.highScore,
		GameOver:  e.over,
		Paused:    e.paused,
	}
}

// Speed returns the current scroll speed in playfield units per tick.
func (e *Engine) Speed() float64 {
	return e.speed
}

// Ticks returns the number of frames simulated in the current run.
func (e *Engine) Ticks() int {
	return e.ticks
}

// Snapshot returns a copy of the run state.
func (e *Engine) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(e.obstacles))
	copy(obstacles, e.obstacles)

	return Snapshot{
		Lane:      e.lane,
		Player:    e.PlayerBox(),
		Obstacles: obstacles,
		Offset:    e.offset,
		Speed:     e.speed,
		Score:     e.score,
		HighScore: e.highScore,
		Ticks:     e.ticks,
		Paused:    e.paused,
		Over:      e.over,
	}
}
