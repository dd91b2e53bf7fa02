package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered. The
// clock is injected so agenda tools classify sessions deterministically in
// tests.
func New(ds DataSource, version string, now func() time.Time, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CoachPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CoachPlan training session server. Query programs, generated schedules, and session agendas with derived lifecycle statuses."),
	)

	h := &handlers{ds: ds, now: now, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetAgenda, Handler: h.getAgenda},
		server.ServerTool{Tool: toolGetProgramSchedule, Handler: h.getProgramSchedule},
		server.ServerTool{Tool: toolGetSessionStatus, Handler: h.getSessionStatus},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTodayAgenda, Handler: h.todayAgenda},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	now func() time.Time
	log *slog.Logger
}

// --- Resource definitions ---

var resTodayAgenda = mcp.NewResource(
	"coachplan://today_agenda",
	"Today's Agenda",
	mcp.WithResourceDescription("Sessions scheduled for today with derived statuses and relative labels"),
	mcp.WithMIMEType("application/json"),
)
