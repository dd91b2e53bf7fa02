package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, program_id, scheduled_at, duration_minutes, completed, cancelled, started_at, notes, created_at, updated_at`

// QuerySessions retrieves sessions scheduled in a time range, oldest
// first. The caller classifies and reorders them; storage order is only a
// stable base.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time) ([]models.SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE scheduled_at >= $1 AND scheduled_at < $2
		 ORDER BY scheduled_at ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionRows(rows)
}

// QueryProgramSessions retrieves all sessions belonging to a program.
func (db *DB) QueryProgramSessions(ctx context.Context, programID uuid.UUID) ([]models.SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE program_id = $1
		 ORDER BY scheduled_at ASC`,
		programID)
	if err != nil {
		return nil, fmt.Errorf("querying program sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionRows(rows)
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.SessionRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)

	var s models.SessionRow
	if err := scanSession(row, &s); err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// MarkCompleted flips the completion flag. Returns false if the session
// does not exist.
func (db *DB) MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sessions SET completed = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("marking session completed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkCancelled flips the cancellation flag. Returns false if the session
// does not exist.
func (db *DB) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sessions SET cancelled = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("marking session cancelled: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// StartSession records the explicit start transition. A closed-out session
// cannot be started; the WHERE clause makes the operation a no-op then.
func (db *DB) StartSession(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sessions SET started_at = $2, updated_at = now()
		 WHERE id = $1 AND NOT completed AND NOT cancelled AND started_at IS NULL`,
		id, at)
	if err != nil {
		return false, fmt.Errorf("starting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanSessionRows(rows pgx.Rows) ([]models.SessionRow, error) {
	var out []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := scanSession(rows, &s); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row, s *models.SessionRow) error {
	return row.Scan(&s.ID, &s.ProgramID, &s.ScheduledAt, &s.DurationMinutes,
		&s.Completed, &s.Cancelled, &s.StartedAt, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
}
