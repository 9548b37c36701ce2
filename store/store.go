// Package store keeps the match history in SQLite: one row per match and
// the events the agent detected during it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a match id is unknown.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

type Match struct {
	ID        string
	Player    string
	Race      string
	EnemyRace string
	Map       string
	StartedAt time.Time
	EndedAt   time.Time // zero while running
	Result    string
	FinalLoop int
}

type Event struct {
	Loop   int
	Kind   string
	Detail string
}

const schema = `
CREATE TABLE IF NOT EXISTS matches (
  id          TEXT PRIMARY KEY,
  player      TEXT NOT NULL,
  race        TEXT NOT NULL,
  enemy_race  TEXT NOT NULL,
  map         TEXT NOT NULL,
  started_at  INTEGER NOT NULL,
  ended_at    INTEGER NOT NULL DEFAULT 0,
  result      TEXT NOT NULL DEFAULT '',
  final_loop  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS events (
  match_id TEXT NOT NULL REFERENCES matches(id),
  loop     INTEGER NOT NULL,
  kind     TEXT NOT NULL,
  detail   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS events_match ON events(match_id, loop);
`

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer; concurrent matches queue on the connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// StartMatch inserts a running match and returns its new id.
func (s *Store) StartMatch(ctx context.Context, m Match) (string, error) {
	id := uuid.NewString()
	started := m.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (id, player, race, enemy_race, map, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, m.Player, m.Race, m.EnemyRace, m.Map, started.UTC().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("insert match: %w", err)
	}
	return id, nil
}

func (s *Store) RecordEvent(ctx context.Context, matchID string, e Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (match_id, loop, kind, detail) VALUES (?, ?, ?, ?)`,
		matchID, e.Loop, e.Kind, e.Detail)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// EndMatch stores the result. Ending an unknown match is ErrNotFound.
func (s *Store) EndMatch(ctx context.Context, matchID string, loop int, result string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE matches SET ended_at = ?, result = ?, final_loop = ? WHERE id = ?`,
		time.Now().UTC().UnixMilli(), result, loop, matchID)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return nil
}

func (s *Store) Match(ctx context.Context, id string) (Match, error) {
	var (
		m              Match
		started, ended int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, player, race, enemy_race, map, started_at, ended_at, result, final_loop FROM matches WHERE id = ?`, id,
	).Scan(&m.ID, &m.Player, &m.Race, &m.EnemyRace, &m.Map, &started, &ended, &m.Result, &m.FinalLoop)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Match{}, fmt.Errorf("select match: %w", err)
	}
	m.StartedAt = time.UnixMilli(started).UTC()
	if ended > 0 {
		m.EndedAt = time.UnixMilli(ended).UTC()
	}
	return m, nil
}

// Events returns a match's events in loop order.
func (s *Store) Events(ctx context.Context, matchID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT loop, kind, detail FROM events WHERE match_id = ? ORDER BY loop, rowid`, matchID)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Loop, &e.Kind, &e.Detail); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
