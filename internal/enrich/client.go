// Package enrich talks to the remote service that gives Memmi something to
// say about a new quote.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBadResponse is returned for any non-2xx reply
var ErrBadResponse = errors.New("bad response from enrichment service")

// Path is the enrichment endpoint relative to the base URL
const Path = "/api/v1/quotes/enrich"

// Response is the enrichment service reply
type Response struct {
	Received string `json:"received"`
	Memmi    string `json:"memmi"`
	Source   string `json:"source"`
}

// Enricher annotates quote text
type Enricher interface {
	Enrich(ctx context.Context, text string) (Response, error)
}

// Client is an HTTP Enricher
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. It returns nil when baseURL is
// empty, meaning enrichment is off.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Enrich implements Enricher
func (c *Client) Enrich(ctx context.Context, text string) (Response, error) {
	body, err := json.Marshal(map[string]string{"quote": text})
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("enrichment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Response{}, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("failed to decode enrichment response: %w", err)
	}
	return out, nil
}
