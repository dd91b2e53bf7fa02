package mcp

import (
	"context"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools, so tests can swap in
// an in-memory implementation.
type DataSource interface {
	ListPrograms(ctx context.Context) ([]models.ProgramRow, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*models.ProgramRow, error)
	QuerySessions(ctx context.Context, start, end time.Time) ([]models.SessionRow, error)
	QueryProgramSessions(ctx context.Context, programID uuid.UUID) ([]models.SessionRow, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.SessionRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
