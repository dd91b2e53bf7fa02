package mcp

import (
	"context"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to two weeks back through
// eight weeks ahead, the same window the HTTP session list uses.
func defaultTimeRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = now.AddDate(0, 0, -14)
	}

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = now.AddDate(0, 0, 56)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Tool definitions ---

var toolGetAgenda = mcp.NewTool("get_agenda",
	mcp.WithDescription("Retrieve the sorted session agenda: a running session first, then upcoming sessions soonest-first, then past sessions most-recent-first. Each entry carries its derived lifecycle status and a relative label."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 14 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to 8 weeks ahead.")),
	mcp.WithString("status", mcp.Description("Filter to one status"), mcp.Enum("completed", "cancelled", "in_progress", "today", "overdue", "upcoming")),
)

var toolGetProgramSchedule = mcp.NewTool("get_program_schedule",
	mcp.WithDescription("Expand a stored program's weekday pattern into its full list of scheduled instants. Generation is deterministic and matches the persisted sessions."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolGetSessionStatus = mcp.NewTool("get_session_status",
	mcp.WithDescription("Derive a single session's lifecycle status (completed, cancelled, in_progress, today, overdue, upcoming) and relative label at the current instant."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID")),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List all training programs with their start dates, durations, and weekday patterns."),
)

// --- Tool handlers ---

type agendaEntry struct {
	models.SessionRow
	Status schedule.Status `json:"status"`
	Label  string          `json:"label"`
}

func (h *handlers) getAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.QuerySessions(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_agenda", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	now := h.now()
	items := make([]schedule.Item, len(rows))
	for i, row := range rows {
		rec := schedule.Record{
			ScheduledAt: row.ScheduledAt,
			Completed:   row.Completed,
			Cancelled:   row.Cancelled,
			InProgress:  row.InProgress(),
		}
		items[i] = schedule.Item{Record: rec, Status: schedule.Classify(rec, now), Ref: row}
	}

	if st := schedule.Status(req.GetString("status", "")); st.IsValid() {
		items = schedule.Filter(items, st)
	}

	ordered := schedule.Order(items, now)
	entries := make([]agendaEntry, len(ordered))
	for i, it := range ordered {
		row := it.Ref.(models.SessionRow)
		entries[i] = agendaEntry{
			SessionRow: row,
			Status:     it.Status,
			Label:      schedule.RelativeLabel(row.ScheduledAt, now),
		}
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgramSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("program_id")
	if err != nil {
		return mcp.NewToolResultError("program_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid program_id"), nil
	}

	program, err := h.ds.GetProgram(ctx, id)
	if err != nil {
		h.log.Error("mcp get_program_schedule", "error", err)
		return mcp.NewToolResultError("program not found"), nil
	}

	instants := schedule.Generate(schedule.Program{
		StartDate:     program.StartDate,
		DurationWeeks: program.DurationWeeks,
		Weekdays:      program.Weekdays,
	})

	result, err := mcp.NewToolResultJSON(map[string]any{
		"program":  program,
		"instants": instants,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid session_id"), nil
	}

	row, err := h.ds.GetSession(ctx, id)
	if err != nil {
		h.log.Error("mcp get_session_status", "error", err)
		return mcp.NewToolResultError("session not found"), nil
	}

	now := h.now()
	rec := schedule.Record{
		ScheduledAt: row.ScheduledAt,
		Completed:   row.Completed,
		Cancelled:   row.Cancelled,
		InProgress:  row.InProgress(),
	}

	result, err := mcp.NewToolResultJSON(agendaEntry{
		SessionRow: *row,
		Status:     schedule.Classify(rec, now),
		Label:      schedule.RelativeLabel(row.ScheduledAt, now),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPrograms(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(programs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
