// Package callback delivers final-result reports to an external HTTP
// endpoint.
package callback

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

	"honeypot-agent/internal/domain"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// Client POSTs final reports to a configured endpoint with bounded
// retries. Delivery runs on a background context; a slow or failing
// receiver never blocks the conversational reply.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRetries(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
		if baseDelay > 0 {
			c.baseDelay = baseDelay
		}
	}
}

func NewClient(url string, opts ...Option) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("callback: url must not be empty")
	}
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string { return "callback" }

// Deliver POSTs the report, retrying with exponential backoff
// (2s, 4s, 8s by default) until the context expires or the attempts
// are exhausted.
func (c *Client) Deliver(ctx context.Context, report domain.FinalReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("callback: marshal report: %w", err)
	}

	var lastErr error
	delay := c.baseDelay
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		lastErr = c.post(ctx, body)
		if lastErr == nil {
			return nil
		}
		if attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("callback: give up after attempt %d: %w", attempt, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("callback: all %d attempts failed: %w", c.maxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("callback: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("callback: unexpected status %d", res.StatusCode)
	}
	return nil
}
