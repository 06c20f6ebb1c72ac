// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway implements the client for the draftly generation service.
//
// The service exposes a single blog-drafting endpoint: the client POSTs a
// topic plus generation options and gets back a markdown article. Latency
// is measured around the whole round trip so the UI can report it next to
// the reply.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the generation service.
const (
	// DefaultBaseURL is where a locally run generation service listens.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout is the default timeout for generation requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// EmptyContentNotice is shown in place of a draft when the service
	// replies 200 but the payload carries no article text.
	EmptyContentNotice = "⚠️ No content generated"
)

// Error variables for common gateway errors.
var (
	// ErrNoEndpoint indicates the client has no service URL configured.
	ErrNoEndpoint = errors.New("generation service URL not configured")
)

// StatusError represents a non-2xx reply from the generation service.
// The body is kept verbatim so callers can surface it in the transcript.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("generation service error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("generation service error (HTTP %d)", e.Status)
}

// Is implements errors.Is support by matching on status code.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Options carries the generation knobs sent alongside the topic.
type Options struct {
	Persona string `json:"persona"`
	Tone    string `json:"tone"`
}

// Request is the payload for a draft request.
type Request struct {
	Topic   string  `json:"topic"`
	Options Options `json:"options"`
}

// generateResponse is the wire shape of a successful service reply.
type generateResponse struct {
	Topic string `json:"topic"`
	Blog  string `json:"blog"`
}

// Result is the outcome of a successful generation round trip.
type Result struct {
	// Text is the markdown draft, or EmptyContentNotice when the service
	// replied without one.
	Text string

	// Latency is the full round-trip duration, encode to decode.
	Latency time.Duration

	// Empty reports whether the service replied 200 with no article,
	// in which case Text holds EmptyContentNotice.
	Empty bool
}

// Client talks to the draftly generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient swaps the underlying HTTP client. Tests use this to point
// the gateway at an httptest server with custom transports.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST/RESPONSE LOGGING
// =============================================================================

// logRequest logs an outgoing generation request. Only the topic is logged,
// not the full payload.
func logRequest(req Request) {
	log.Printf("generate request: topic=%q persona=%s tone=%s",
		req.Topic, req.Options.Persona, req.Options.Tone)
}

// logResponse logs the reply status and round-trip duration.
func logResponse(status int, latency time.Duration) {
	log.Printf("generate response: %d (%v)", status, latency)
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate requests a draft for req.Topic and returns the article text with
// the measured round-trip latency.
//
// Error taxonomy:
//   - transport failures (connection refused, timeout, cancelled context)
//     come back wrapped with "request failed";
//   - non-2xx replies come back as *StatusError carrying the status code
//     and the verbatim body;
//   - a 2xx reply without article text is NOT an error: the Result carries
//     EmptyContentNotice with Empty set.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	if c.baseURL == "" {
		return nil, ErrNoEndpoint
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	latency := time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logResponse(resp.StatusCode, latency)

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	result := &Result{
		Text:    genResp.Blog,
		Latency: latency,
	}
	if genResp.Blog == "" {
		result.Text = EmptyContentNotice
		result.Empty = true
	}
	return result, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
