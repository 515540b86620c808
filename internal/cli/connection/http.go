package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPClient provides HTTP communication with the server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new HTTP client.
func NewHTTPClient(server string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: httpURL(server),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON performs a GET request and decodes the JSON body into target.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// BaseURL returns the HTTP base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// httpURL normalizes a server address to an http(s) base URL.
func httpURL(server string) string {
	switch {
	case strings.HasPrefix(server, "ws://"):
		server = "http://" + strings.TrimPrefix(server, "ws://")
	case strings.HasPrefix(server, "wss://"):
		server = "https://" + strings.TrimPrefix(server, "wss://")
	case !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://"):
		server = "http://" + server
	}
	return strings.TrimSuffix(server, "/")
}

// wsURL normalizes a server address to the WebSocket endpoint URL.
func wsURL(server string) string {
	u := httpURL(server)
	if strings.HasPrefix(u, "https://") {
		return "wss://" + strings.TrimPrefix(u, "https://") + "/ws"
	}
	return "ws://" + strings.TrimPrefix(u, "http://") + "/ws"
}
