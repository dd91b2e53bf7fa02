package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/coachplan/internal/config"
	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the storage surface the handlers need. *storage.DB satisfies
// it; tests substitute an in-memory fake.
type Store interface {
	InsertProgram(ctx context.Context, row models.ProgramRow) error
	GetProgram(ctx context.Context, id uuid.UUID) (*models.ProgramRow, error)
	ListPrograms(ctx context.Context) ([]models.ProgramRow, error)
	InsertSessions(ctx context.Context, rows []models.SessionRow) (int64, error)
	QuerySessions(ctx context.Context, start, end time.Time) ([]models.SessionRow, error)
	QueryProgramSessions(ctx context.Context, programID uuid.UUID) ([]models.SessionRow, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.SessionRow, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	StartSession(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers. The clock is injected so
// status derivation stays deterministic in tests; handlers sample it once
// per request and pass the instant down, the scheduling core never reads
// it.
type Server struct {
	db     Store
	log    *slog.Logger
	apiKey string
	limits config.LimitsConfig
	now    func() time.Time
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db Store, apiKey string, limits config.LimitsConfig, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		limits: limits,
		now:    time.Now,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	if s.limits.RequestsPerSecond > 0 {
		s.router.Use(RateLimit(NewIPRateLimiter(s.limits.RequestsPerSecond, s.limits.Burst)))
	}

	// Mutation endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/programs", s.handleCreateProgram)
		r.Post("/api/v1/sessions/{id}/complete", s.handleCompleteSession)
		r.Post("/api/v1/sessions/{id}/cancel", s.handleCancelSession)
		r.Post("/api/v1/sessions/{id}/start", s.handleStartSession)
	})

	// Read endpoints (no auth — tsnet handles access), optionally cached
	s.router.Group(func(r chi.Router) {
		if s.limits.CacheTTLSeconds > 0 {
			r.Use(CacheGET(time.Duration(s.limits.CacheTTLSeconds) * time.Second))
		}
		r.Get("/api/v1/programs", s.handleListPrograms)
		r.Get("/api/v1/programs/{id}", s.handleGetProgram)
		r.Get("/api/v1/programs/{id}/schedule", s.handleProgramSchedule)
		r.Get("/api/v1/sessions", s.handleListSessions)
		r.Get("/api/v1/sessions/{id}", s.handleGetSession)
	})
}
