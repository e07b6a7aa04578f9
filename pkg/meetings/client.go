package meetings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

// DefaultBaseURL is the hosted meetings service.
const DefaultBaseURL = "https://shadowpm-api.redstone-c46110a3.uksouth.azurecontainerapps.io"

// Client talks to the meetings API.
type Client struct {
	baseURL string
	token   string
	logger  *slog.Logger
	client  *http.Client
}

// NewClient creates a meetings client. An empty baseURL selects the hosted
// default; token is optional and sent as a bearer credential when set.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger,
		client:  &http.Client{},
	}
}

// Fetch returns the recorded meeting logs. Any failure surfaces as a
// MeetingsError; callers are expected to keep their previous list.
func (c *Client) Fetch(ctx context.Context) ([]Meeting, error) {
	url := c.baseURL + "/meetings"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, shadowerrors.NewMeetingsErrorWithCause("Fetch", "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logDebug("fetching meeting logs", "url", url)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, shadowerrors.NewMeetingsErrorWithCause("Fetch", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, shadowerrors.NewMeetingsErrorWithStatus("Fetch", resp.StatusCode,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shadowerrors.NewMeetingsErrorWithCause("Fetch", "failed to read response", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, shadowerrors.NewMeetingsErrorWithCause("Fetch", "failed to parse response", err)
	}

	if env.Status != "success" {
		return nil, shadowerrors.NewMeetingsError("Fetch",
			fmt.Sprintf("service reported status %q", env.Status))
	}

	c.logDebug("fetched meeting logs", "count", len(env.Meetings))

	return env.Meetings, nil
}

// logDebug logs a debug message if verbose logging is enabled.
func (c *Client) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
