// Package history records build outcomes in a SQLite database under the
// state directory so the editor can show what happened and when.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome classifies how a build run ended.
type Outcome string

const (
	OutcomeBuilt   Outcome = "built"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Entry is one recorded build run.
type Entry struct {
	ID         int64             `json:"id"`
	BuildID    string            `json:"build_id"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Outcome    Outcome           `json:"outcome"`
	Posts      int               `json:"posts"`
	Pages      int               `json:"pages"`
	Deployed   bool              `json:"deployed"`
	Error      string            `json:"error,omitempty"`
	Stages     map[string]string `json:"stages,omitempty"`
}

// Store persists build history. Use ":memory:" for tests.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the history database at dbPath, creating the parent
// directory when needed.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history state directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		posts INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		deployed INTEGER NOT NULL,
		error TEXT,
		stages TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	CREATE INDEX IF NOT EXISTS idx_builds_outcome ON builds(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one build run.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stagesJSON []byte
	if e.Stages != nil {
		var err error
		stagesJSON, err = json.Marshal(e.Stages)
		if err != nil {
			return fmt.Errorf("marshal stage timings: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, started_at, duration_ms, outcome, posts, pages, deployed, error, stages) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.BuildID, e.StartedAt.Unix(), e.DurationMS, string(e.Outcome), e.Posts, e.Pages, boolToInt(e.Deployed), e.Error, stagesJSON,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, build_id, started_at, duration_ms, outcome, posts, pages, deployed, error, stages FROM builds ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedUnix int64
		var deployed int
		var errText sql.NullString
		var stagesJSON []byte

		if err := rows.Scan(&e.ID, &e.BuildID, &startedUnix, &e.DurationMS, &e.Outcome, &e.Posts, &e.Pages, &deployed, &errText, &stagesJSON); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		e.StartedAt = time.Unix(startedUnix, 0)
		e.Deployed = deployed != 0
		e.Error = errText.String
		if len(stagesJSON) > 0 {
			if err := json.Unmarshal(stagesJSON, &e.Stages); err != nil {
				return nil, fmt.Errorf("unmarshal stage timings: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate build records: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
