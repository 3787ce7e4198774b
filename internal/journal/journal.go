// Package journal keeps an audit trail of playthroughs in sqlite: which rooms were
// entered, which clues turned up and how the accusation ended.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath keeps the journal in memory for the lifetime of the process.
const MemoryPath = ":memory:"

type Visit struct {
	Step int
	Room string
	Clue string
}

type SessionRecord struct {
	ID        string
	StartedAt time.Time
	Accused   string
	Count     int
	Outcome   string
	Visits    int
}

type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal at path. Use MemoryPath for a throwaway journal.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == MemoryPath {
		// Every new connection to :memory: is a separate, empty database.
		db.SetMaxOpenConns(1)
	}

	j := &Journal{db: db}
	if err := j.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

func (j *Journal) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		accused TEXT,
		clue_count INTEGER,
		outcome TEXT
	);

	CREATE TABLE IF NOT EXISTS visits (
		session_id TEXT NOT NULL REFERENCES sessions(id),
		step INTEGER NOT NULL,
		room TEXT NOT NULL,
		clue TEXT,
		PRIMARY KEY (session_id, step)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
	`

	_, err := j.db.Exec(schema)
	return err
}

func (j *Journal) StartSession(ctx context.Context, id string) error {
	_, err := j.db.ExecContext(ctx, `INSERT INTO sessions (id) VALUES (?)`, id)
	if err != nil {
		return fmt.Errorf("failed to start session %s: %w", id, err)
	}
	return nil
}

// LogVisit records that the player entered room at the given step. clue is empty when
// the room held nothing.
func (j *Journal) LogVisit(ctx context.Context, sessionID string, step int, room, clue string) error {
	var cluePtr *string
	if clue != "" {
		cluePtr = &clue
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO visits (session_id, step, room, clue)
		VALUES (?, ?, ?, ?)
	`, sessionID, step, room, cluePtr)
	if err != nil {
		return fmt.Errorf("failed to log visit to %s: %w", room, err)
	}
	return nil
}

func (j *Journal) FinishSession(ctx context.Context, id, accused string, count int, outcome string) error {
	_, err := j.db.ExecContext(ctx, `
		UPDATE sessions
		SET accused = ?, clue_count = ?, outcome = ?
		WHERE id = ?
	`, accused, count, outcome, id)
	if err != nil {
		return fmt.Errorf("failed to finish session %s: %w", id, err)
	}
	return nil
}

// Trail returns the visits of a session in the order they happened.
func (j *Journal) Trail(ctx context.Context, sessionID string) ([]Visit, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT step, room, clue
		FROM visits
		WHERE session_id = ?
		ORDER BY step
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			v    Visit
			clue sql.NullString
		)
		if err := rows.Scan(&v.Step, &v.Room, &clue); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		v.Clue = clue.String
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

func (j *Journal) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT s.id, s.started_at, s.accused, s.clue_count, s.outcome,
		       (SELECT COUNT(*) FROM visits v WHERE v.session_id = s.id)
		FROM sessions s
		ORDER BY s.started_at DESC, s.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var (
			s       SessionRecord
			accused sql.NullString
			count   sql.NullInt64
			outcome sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.StartedAt, &accused, &count, &outcome, &s.Visits); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.Accused = accused.String
		s.Count = int(count.Int64)
		s.Outcome = outcome.String
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func (j *Journal) Close() error {
	return j.db.Close()
}
