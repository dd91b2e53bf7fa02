package agenda

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Cache stores the last fetched session rows locally so the agenda can be
// rendered offline. Statuses and labels are re-derived at render time, not
// cached, since they depend on the current instant.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the SQLite cache database at dir/agenda.db.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "agenda.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id               TEXT PRIMARY KEY,
		program_id       TEXT NOT NULL,
		scheduled_at     TEXT NOT NULL,
		duration_minutes INTEGER,
		completed        INTEGER NOT NULL DEFAULT 0,
		cancelled        INTEGER NOT NULL DEFAULT 0,
		started_at       TEXT,
		notes            TEXT NOT NULL DEFAULT '',
		fetched_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Store replaces the cached sessions with the given entries.
func (c *Cache) Store(entries []Entry) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO sessions
		(id, program_id, scheduled_at, duration_minutes, completed, cancelled, started_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing cache insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var startedAt any
		if e.StartedAt != nil {
			startedAt = e.StartedAt.Format(time.RFC3339Nano)
		}
		var duration any
		if e.DurationMinutes != nil {
			duration = *e.DurationMinutes
		}
		_, err := stmt.Exec(
			e.ID.String(), e.ProgramID.String(),
			e.ScheduledAt.Format(time.RFC3339Nano),
			duration, e.Completed, e.Cancelled, startedAt, e.Notes,
		)
		if err != nil {
			return fmt.Errorf("caching session %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// Load returns all cached session rows.
func (c *Cache) Load() ([]Entry, error) {
	rows, err := c.db.Query(`SELECT id, program_id, scheduled_at, duration_minutes,
		completed, cancelled, started_at, notes FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var id, programID, scheduledAt string
		var duration sql.NullInt64
		var startedAt sql.NullString
		if err := rows.Scan(&id, &programID, &scheduledAt, &duration,
			&e.Completed, &e.Cancelled, &startedAt, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning cached session: %w", err)
		}
		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("cached session id %q: %w", id, err)
		}
		e.ProgramID, err = uuid.Parse(programID)
		if err != nil {
			return nil, fmt.Errorf("cached program id %q: %w", programID, err)
		}
		e.ScheduledAt, err = time.Parse(time.RFC3339Nano, scheduledAt)
		if err != nil {
			return nil, fmt.Errorf("cached scheduled_at %q: %w", scheduledAt, err)
		}
		if duration.Valid {
			d := int(duration.Int64)
			e.DurationMinutes = &d
		}
		if startedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, startedAt.String)
			if err != nil {
				return nil, fmt.Errorf("cached started_at %q: %w", startedAt.String, err)
			}
			e.StartedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}
