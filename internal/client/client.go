// Package client asks a render service for a new video.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultServerURL is used when LIFEDEMO_SERVER_URL is unset.
const DefaultServerURL = "http://localhost:5000"

// fallbackError is shown when the server gives no reason.
const fallbackError = "Failed to render"

// RenderResponse mirrors the body of POST /render.
type RenderResponse struct {
	OK               bool    `json:"ok"`
	ID               string  `json:"id"`
	LocalURL         string  `json:"localUrl"`
	AbsoluteLocalURL string  `json:"absoluteLocalUrl"`
	TempURL          *string `json:"tempUrl"`
	Error            string  `json:"error"`
}

// PlaybackURL prefers the share link and falls back to the server's own download URL.
func (r *RenderResponse) PlaybackURL() string {
	if r.TempURL != nil && *r.TempURL != "" {
		return *r.TempURL
	}
	return r.AbsoluteLocalURL
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// ServerURLFromEnv reads LIFEDEMO_SERVER_URL without its trailing slash.
func ServerURLFromEnv() string {
	raw := strings.TrimSpace(os.Getenv("LIFEDEMO_SERVER_URL"))
	if raw == "" {
		raw = DefaultServerURL
	}
	return strings.TrimRight(raw, "/")
}

// New creates a client for baseURL. Renders can take minutes, so the default timeout is long.
func New(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Minute}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultServerURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// BaseURL returns the server this client talks to.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Render issues one POST /render. A response with ok=false becomes an error
// carrying the server's message.
func (c *HTTPClient) Render(ctx context.Context) (*RenderResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body RenderResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, fmt.Errorf("%s (http %d)", fallbackError, res.StatusCode)
		}
		return nil, fmt.Errorf("decode render response: %w", err)
	}
	if !body.OK {
		msg := strings.TrimSpace(body.Error)
		if msg == "" {
			msg = fallbackError
		}
		return nil, &RenderError{Status: res.StatusCode, Message: msg}
	}
	return &body, nil
}

// RenderError is a failure reported by the server. Message is shown verbatim.
type RenderError struct {
	Status  int
	Message string
}

func (e *RenderError) Error() string { return e.Message }
