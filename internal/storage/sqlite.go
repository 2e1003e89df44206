// Package storage keeps the run ledger of one vault session in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk: the ledger is gone once the
// session closes it.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Ledger records finished runs for the lifetime of a session.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one finished run.
type Run struct {
	ID         int64
	GameID     string
	Score      int
	Speed      float64
	Ticks      int
	RecordedAt time.Time
}

// GameStats contains aggregated statistics for a game within the session.
type GameStats struct {
	GameID     string
	Runs       int
	Best       int
	AvgScore   float64
	TopSpeed   float64
	LastPlayed time.Time
}

// OpenSession creates an empty ledger. Every call returns an independent
// database.
func OpenSession() (*Ledger, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Each connection to :memory: is a separate database, so the pool must
	// hold exactly one and never let it go.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	l := &Ledger{db: db, now: time.Now}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return l, nil
}

// migrate creates the schema.
func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			speed REAL NOT NULL,
			ticks INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	`

	_, err := l.db.Exec(schema)
	return err
}

// Close drops the ledger.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// RecordRun appends a finished run and returns its ID.
func (l *Ledger) RecordRun(gameID string, score int, speed float64, ticks int) (int64, error) {
	result, err := l.db.Exec(
		"INSERT INTO runs (game_id, score, speed, ticks, recorded_at) VALUES (?, ?, ?, ?, ?)",
		gameID, score, speed, ticks, l.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Runs returns the most recent runs of a game, newest first.
// A non-positive limit means 10.
func (l *Ledger) Runs(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.Query(
		`SELECT id, game_id, score, speed, ticks, recorded_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var recorded int64
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Speed, &r.Ticks, &recorded); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.RecordedAt = time.UnixMilli(recorded)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Best returns the highest score recorded for a game, or 0 without runs.
func (l *Ledger) Best(gameID string) (int, error) {
	var score sql.NullInt64
	err := l.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Summary returns per-game statistics for every game played, ordered by
// game ID.
func (l *Ledger) Summary() ([]GameStats, error) {
	rows, err := l.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), MAX(speed), MAX(recorded_at)
		 FROM runs
		 GROUP BY game_id
		 ORDER BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	defer rows.Close()

	var stats []GameStats
	for rows.Next() {
		var s GameStats
		var last int64
		if err := rows.Scan(&s.GameID, &s.Runs, &s.Best, &s.AvgScore, &s.TopSpeed, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		s.LastPlayed = time.UnixMilli(last)
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
