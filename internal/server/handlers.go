package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// createProgramRequest is the program-creation payload. Weekdays are
// 0=Sunday..6=Saturday; ScheduledAt-style dates arrive as FlexTime so a
// bad date degrades instead of erroring.
type createProgramRequest struct {
	Name            string          `json:"name"`
	CoachName       string          `json:"coach_name"`
	AthleteName     string          `json:"athlete_name"`
	StartDate       models.FlexTime `json:"start_date"`
	DurationWeeks   int             `json:"duration_weeks"`
	Weekdays        []int           `json:"weekdays"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
}

// sessionView is the status-tagged session handed to list rendering.
type sessionView struct {
	models.SessionRow
	Status schedule.Status `json:"status"`
	Label  string          `json:"label"`
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	weekdays := make([]time.Weekday, len(req.Weekdays))
	for i, d := range req.Weekdays {
		weekdays[i] = time.Weekday(d)
	}

	program := models.ProgramRow{
		ID:            uuid.New(),
		Name:          req.Name,
		CoachName:     req.CoachName,
		AthleteName:   req.AthleteName,
		StartDate:     req.StartDate.Time,
		DurationWeeks: req.DurationWeeks,
		Weekdays:      weekdays,
	}

	if err := s.db.InsertProgram(r.Context(), program); err != nil {
		s.log.Error("program insert error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// A malformed definition generates nothing to schedule; the program
	// is still created.
	instants := schedule.Generate(schedule.Program{
		StartDate:     program.StartDate,
		DurationWeeks: program.DurationWeeks,
		Weekdays:      program.Weekdays,
	})

	sessions := make([]models.SessionRow, len(instants))
	for i, at := range instants {
		sessions[i] = models.SessionRow{
			ID:              uuid.New(),
			ProgramID:       program.ID,
			ScheduledAt:     at,
			DurationMinutes: req.DurationMinutes,
		}
	}

	inserted, err := s.db.InsertSessions(r.Context(), sessions)
	if err != nil {
		s.log.Error("session insert error", "error", err, "program_id", program.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"program":          program,
		"sessions_created": inserted,
	})
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.db.ListPrograms(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	program, err := s.db.GetProgram(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}
	writeJSON(w, http.StatusOK, program)
}

// handleProgramSchedule returns the regenerated instants for a stored
// program. Generation is idempotent, so this always matches the sessions
// created with the program.
func (s *Server) handleProgramSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	program, err := s.db.GetProgram(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}

	instants := schedule.Generate(schedule.Program{
		StartDate:     program.StartDate,
		DurationWeeks: program.DurationWeeks,
		Weekdays:      program.Weekdays,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"program_id": program.ID,
		"instants":   instants,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.QuerySessions(r.Context(), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	now := s.now()
	items := classifyAll(rows, now)

	if statuses := parseStatusFilter(r.URL.Query().Get("status")); len(statuses) > 0 {
		items = schedule.Filter(items, statuses...)
	}

	if r.URL.Query().Get("group") != "" {
		writeJSON(w, http.StatusOK, groupedViews(items, now))
		return
	}
	writeJSON(w, http.StatusOK, views(schedule.Order(items, now), now))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	row, err := s.db.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	now := s.now()
	writeJSON(w, http.StatusOK, sessionView{
		SessionRow: *row,
		Status:     schedule.Classify(toRecord(*row), now),
		Label:      schedule.RelativeLabel(row.ScheduledAt, now),
	})
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.db.MarkCompleted)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.db.MarkCancelled)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	started, err := s.db.StartSession(r.Context(), id, s.now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !started {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "session cannot be started"})
		return
	}
	s.respondWithSession(w, r, id)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (bool, error)) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	changed, err := op(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !changed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	s.respondWithSession(w, r, id)
}

func (s *Server) respondWithSession(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	row, err := s.db.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	now := s.now()
	writeJSON(w, http.StatusOK, sessionView{
		SessionRow: *row,
		Status:     schedule.Classify(toRecord(*row), now),
		Label:      schedule.RelativeLabel(row.ScheduledAt, now),
	})
}

func toRecord(row models.SessionRow) schedule.Record {
	return schedule.Record{
		ScheduledAt: row.ScheduledAt,
		Completed:   row.Completed,
		Cancelled:   row.Cancelled,
		InProgress:  row.InProgress(),
	}
}

func classifyAll(rows []models.SessionRow, now time.Time) []schedule.Item {
	items := make([]schedule.Item, len(rows))
	for i, row := range rows {
		rec := toRecord(row)
		items[i] = schedule.Item{
			Record: rec,
			Status: schedule.Classify(rec, now),
			Ref:    row,
		}
	}
	return items
}

func views(items []schedule.Item, now time.Time) []sessionView {
	out := make([]sessionView, len(items))
	for i, it := range items {
		row := it.Ref.(models.SessionRow)
		out[i] = sessionView{
			SessionRow: row,
			Status:     it.Status,
			Label:      schedule.RelativeLabel(row.ScheduledAt, now),
		}
	}
	return out
}

type groupView struct {
	Status   schedule.Status `json:"status"`
	Sessions []sessionView   `json:"sessions"`
}

func groupedViews(items []schedule.Item, now time.Time) []groupView {
	groups := schedule.Group(items, now)
	out := make([]groupView, len(groups))
	for i, g := range groups {
		out[i] = groupView{Status: g.Status, Sessions: views(g.Items, now)}
	}
	return out
}

// parseStatusFilter splits a comma-separated status list, dropping
// unrecognized values rather than erroring, in keeping with the
// fall-back-to-defaults handling of bad sort keys.
func parseStatusFilter(raw string) []schedule.Status {
	if raw == "" {
		return nil
	}
	var out []schedule.Status
	for _, part := range strings.Split(raw, ",") {
		st := schedule.Status(strings.TrimSpace(part))
		if st.IsValid() {
			out = append(out, st)
		}
	}
	return out
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads optional start/end query params, defaulting to two
// weeks back through eight weeks ahead so both recent and upcoming
// sessions land in the default view.
func parseTimeRange(r *http.Request, now time.Time) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		start = now.AddDate(0, 0, -14)
	} else {
		start, err = parseFlexParam(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = now.AddDate(0, 0, 56)
	} else {
		end, err = parseFlexParam(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func parseFlexParam(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
