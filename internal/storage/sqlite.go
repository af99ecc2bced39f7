// Package storage provides SQLite-based match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only finished matches are stored. Records are history for the history and
// show commands and the leaderboard; a match cannot be resumed from them.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-battleship/internal/match"
)

// ErrNotFinished is returned when saving a match that has no winner yet.
var ErrNotFinished = errors.New("storage: match is not finished")

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is the summary row of a finished match.
type MatchRecord struct {
	ID         int64
	MatchID    string
	Variant    string
	Player1    string
	Player2    string
	Winner     string
	WinnerSlot int
	Score1     int
	Score2     int
	Hits1      int
	Misses1    int
	Hits2      int
	Misses2    int
	Turns      int
	CreatedAt  time.Time
}

// StoredMatch is a summary row together with its decoded snapshot.
type StoredMatch struct {
	MatchRecord
	Snapshot match.Snapshot
}

// MoveEntry is one recorded command of a stored match.
type MoveEntry struct {
	Player  int
	Seq     int
	Turn    int
	Kind    match.MoveKind
	X       int
	Y       int
	Vessel  string
	Outcome match.Outcome
	Sunk    bool
}

// PlayerStats aggregates results per player name.
type PlayerStats struct {
	Name   string
	Games  int
	Wins   int
	Hits   int
	Misses int
}

// Accuracy returns hits over shots, or 0 without shots.
func (p PlayerStats) Accuracy() float64 {
	if p.Hits+p.Misses == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.Hits+p.Misses)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			winner TEXT NOT NULL,
			winner_slot INTEGER NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			hits1 INTEGER NOT NULL DEFAULT 0,
			misses1 INTEGER NOT NULL DEFAULT 0,
			hits2 INTEGER NOT NULL DEFAULT 0,
			misses2 INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			snapshot TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches(player1);
		CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches(player2);

		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id),
			player INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			kind TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			vessel TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			sunk INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_moves_match ON moves(match_id, turn);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and its full move history in one
// transaction. Returns the ID of the inserted summary row.
func (s *Store) SaveMatch(matchID, variant string, snap match.Snapshot) (int64, error) {
	if snap.Phase != match.PhaseFinished {
		return 0, ErrNotFinished
	}
	p1, ok1 := snap.Player(1)
	p2, ok2 := snap.Player(2)
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("storage: snapshot is missing a player")
	}
	encoded, err := snap.Encode()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, variant, player1, player2, winner, winner_slot,
		  score1, score2, hits1, misses1, hits2, misses2, turns, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		matchID, variant, p1.Name, p2.Name, snap.WinnerName(), int(snap.Winner),
		p1.Score, p2.Score, p1.Hits, p1.Misses, p2.Hits, p2.Misses, snap.Turn, string(encoded),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO moves (match_id, player, seq, turn, kind, x, y, vessel, outcome, sunk)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare moves: %w", err)
	}
	defer stmt.Close()

	for _, p := range snap.Players {
		for seq, mv := range p.History {
			if _, err := stmt.Exec(matchID, int(p.ID), seq, mv.Turn, string(mv.Kind),
				mv.X, mv.Y, mv.Vessel, string(mv.Outcome), mv.Sunk); err != nil {
				return 0, fmt.Errorf("storage: cannot save move: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, variant, player1, player2, winner, winner_slot,
		        score1, score2, hits1, misses1, hits2, misses2, turns, created_at`

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return scanMatches(rows)
}

// PlayerMatches retrieves the most recent matches a player took part in.
func (s *Store) PlayerMatches(name string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE player1 = ? OR player2 = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		name, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	return scanMatches(rows)
}

// MatchByID retrieves a match and its decoded snapshot.
// Returns nil without error if no such match exists.
func (s *Store) MatchByID(matchID string) (*StoredMatch, error) {
	var (
		m         StoredMatch
		createdAt any
		encoded   string
	)
	err := s.db.QueryRow(
		`SELECT `+matchColumns+`, snapshot
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	).Scan(
		&m.ID, &m.MatchID, &m.Variant, &m.Player1, &m.Player2, &m.Winner, &m.WinnerSlot,
		&m.Score1, &m.Score2, &m.Hits1, &m.Misses1, &m.Hits2, &m.Misses2, &m.Turns,
		&createdAt, &encoded,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	m.CreatedAt = parseTime(createdAt)

	snap, err := match.DecodeSnapshot([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("storage: match %s: %w", matchID, err)
	}
	m.Snapshot = snap
	return &m, nil
}

// Moves retrieves the recorded commands of a match in play order.
func (s *Store) Moves(matchID string) ([]MoveEntry, error) {
	rows, err := s.db.Query(
		`SELECT player, seq, turn, kind, x, y, vessel, outcome, sunk
		 FROM moves
		 WHERE match_id = ?
		 ORDER BY turn, player, seq`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveEntry
	for rows.Next() {
		var (
			mv            MoveEntry
			kind, outcome string
		)
		if err := rows.Scan(&mv.Player, &mv.Seq, &mv.Turn, &kind, &mv.X, &mv.Y,
			&mv.Vessel, &outcome, &mv.Sunk); err != nil {
			return nil, fmt.Errorf("storage: cannot scan move: %w", err)
		}
		mv.Kind = match.MoveKind(kind)
		mv.Outcome = match.Outcome(outcome)
		moves = append(moves, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return moves, nil
}

// Leaderboard aggregates wins, games and shots per player name, best first.
func (s *Store) Leaderboard(limit int) ([]PlayerStats, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT name, COUNT(*), SUM(won), SUM(hits), SUM(misses)
		 FROM (
			SELECT player1 AS name, winner_slot = 1 AS won, hits1 AS hits, misses1 AS misses FROM matches
			UNION ALL
			SELECT player2, winner_slot = 2, hits2, misses2 FROM matches
		 )
		 GROUP BY name
		 ORDER BY SUM(won) DESC, COUNT(*) ASC, name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var p PlayerStats
		if err := rows.Scan(&p.Name, &p.Games, &p.Wins, &p.Hits, &p.Misses); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func scanMatches(rows *sql.Rows) ([]MatchRecord, error) {
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var (
			m         MatchRecord
			createdAt any
		)
		if err := rows.Scan(
			&m.ID, &m.MatchID, &m.Variant, &m.Player1, &m.Player2, &m.Winner, &m.WinnerSlot,
			&m.Score1, &m.Score2, &m.Hits1, &m.Misses1, &m.Hits2, &m.Misses2, &m.Turns,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
