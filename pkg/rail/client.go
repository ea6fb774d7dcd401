package rail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Huxley 2 bridge to the National Rail
// departure board service.
const DefaultBaseURL = "https://huxley2.azurewebsites.net"

// Client fetches live departure boards. Calls are synchronous snapshots;
// the caller bounds each call with a context timeout.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a departures client. An empty baseURL selects the
// default endpoint; a zero timeout defaults to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Departures returns the current board of upcoming services from the origin
// station filtered to those calling at the destination.
func (c *Client) Departures(ctx context.Context, from, to string) (*DepartureBoard, error) {
	endpoint := fmt.Sprintf("%s/departures/%s/to/%s",
		c.baseURL,
		url.PathEscape(strings.ToUpper(from)),
		url.PathEscape(strings.ToUpper(to)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create departures request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch departures %s->%s: %w", from, to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("departures %s->%s: unexpected status %d", from, to, resp.StatusCode)
	}

	var board DepartureBoard
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("decode departure board: %w", err)
	}
	return &board, nil
}
