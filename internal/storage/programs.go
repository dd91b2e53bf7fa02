package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
)

// InsertProgram inserts a program row.
func (db *DB) InsertProgram(ctx context.Context, row models.ProgramRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO programs (id, name, coach_name, athlete_name, start_date, duration_weeks, weekdays)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		row.ID, row.Name, row.CoachName, row.AthleteName,
		row.StartDate, row.DurationWeeks, weekdaysToInts(row.Weekdays))
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	return nil
}

// GetProgram retrieves a program by ID.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID) (*models.ProgramRow, error) {
	var row models.ProgramRow
	var weekdays []int32
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, coach_name, athlete_name, start_date, duration_weeks, weekdays, created_at
		 FROM programs WHERE id = $1`, id).
		Scan(&row.ID, &row.Name, &row.CoachName, &row.AthleteName,
			&row.StartDate, &row.DurationWeeks, &weekdays, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying program: %w", err)
	}
	row.Weekdays = intsToWeekdays(weekdays)
	return &row, nil
}

// ListPrograms retrieves all programs, newest first.
func (db *DB) ListPrograms(ctx context.Context) ([]models.ProgramRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, coach_name, athlete_name, start_date, duration_weeks, weekdays, created_at
		 FROM programs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var out []models.ProgramRow
	for rows.Next() {
		var row models.ProgramRow
		var weekdays []int32
		if err := rows.Scan(&row.ID, &row.Name, &row.CoachName, &row.AthleteName,
			&row.StartDate, &row.DurationWeeks, &weekdays, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		row.Weekdays = intsToWeekdays(weekdays)
		out = append(out, row)
	}
	return out, rows.Err()
}

// InsertSessions batch-inserts the generated sessions for a program.
// Returns the count inserted.
func (db *DB) InsertSessions(ctx context.Context, rows []models.SessionRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO sessions (id, program_id, scheduled_at, duration_minutes, notes) VALUES `
	args := make([]any, 0, len(rows)*5)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, r.ID, r.ProgramID, r.ScheduledAt, r.DurationMinutes, r.Notes)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func intsToWeekdays(ints []int32) []time.Weekday {
	out := make([]time.Weekday, len(ints))
	for i, v := range ints {
		out[i] = time.Weekday(v)
	}
	return out
}
