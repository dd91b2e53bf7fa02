package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/coachplan/internal/schedule"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) todayAgenda(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := h.now()
	today := schedule.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	rows, err := h.ds.QuerySessions(ctx, today, tomorrow)
	if err != nil {
		return nil, err
	}

	entries := make([]agendaEntry, len(rows))
	for i, row := range rows {
		rec := schedule.Record{
			ScheduledAt: row.ScheduledAt,
			Completed:   row.Completed,
			Cancelled:   row.Cancelled,
			InProgress:  row.InProgress(),
		}
		entries[i] = agendaEntry{
			SessionRow: row,
			Status:     schedule.Classify(rec, now),
			Label:      schedule.RelativeLabel(row.ScheduledAt, now),
		}
	}

	summary := map[string]any{
		"date":     today.Format("2006-01-02"),
		"sessions": entries,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
