package agenda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
)

// Entry is a session as the server reports it: the row plus its derived
// status and relative label.
type Entry struct {
	models.SessionRow
	Status schedule.Status `json:"status"`
	Label  string          `json:"label"`
}

// Client fetches session agendas from the CoachPlan server over HTTP.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the CoachPlan server.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchSessions retrieves the sorted session list for the given window.
// Zero bounds are omitted and the server applies its defaults.
func (c *Client) FetchSessions(ctx context.Context, start, end time.Time) ([]Entry, error) {
	params := url.Values{}
	if !start.IsZero() {
		params.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		params.Set("end", end.Format(time.RFC3339))
	}

	u := c.serverURL + "/api/v1/sessions"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sessions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sessions request failed (status %d): %s", resp.StatusCode, body)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}
	return entries, nil
}
