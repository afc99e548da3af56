package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"MismatchScanner/internal/ports"
)

// Summary decoding parameters sent with every summarize call. Beam search
// keeps window summaries reproducible across runs.
const (
	summaryMaxLength = 64
	summaryNumBeams  = 4
	summaryMaxInput  = 512
)

// Client talks to the inference service hosting the mismatch classifier and
// the window summarizer.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
}

var (
	_ ports.Classifier = (*Client)(nil)
	_ ports.Summarizer = (*Client)(nil)
	_ ports.Tokenizer  = (*Client)(nil)
)

// Options configures the inference client.
type Options struct {
	Endpoint          string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// NewClient creates a reusable HTTP client. RequestsPerSecond <= 0 disables throttling.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		endpoint: strings.TrimSuffix(opts.Endpoint, "/"),
		apiKey:   opts.APIKey,
		http:     httpClient,
		limiter:  limiter,
	}
}

// Score asks the classifier for the probability that title and body disagree.
func (c *Client) Score(ctx context.Context, title, body string) (float64, error) {
	payload := map[string]any{
		"title": title,
		"body":  body,
	}

	var resp struct {
		Probability *float64 `json:"mismatch_probability"`
	}
	if err := c.post(ctx, "/score", payload, &resp); err != nil {
		return 0, fmt.Errorf("score: %w", err)
	}
	if resp.Probability == nil {
		return 0, fmt.Errorf("score: response has no mismatch_probability")
	}
	return *resp.Probability, nil
}

// Summarize requests a short summary of one body window.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	payload := map[string]any{
		"text":           text,
		"max_length":     summaryMaxLength,
		"num_beams":      summaryNumBeams,
		"max_input":      summaryMaxInput,
		"early_stopping": true,
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := c.post(ctx, "/summarize", payload, &resp); err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return resp.Summary, nil
}

// TokenLength returns the untruncated token count of text under the summarizer tokenizer.
func (c *Client) TokenLength(ctx context.Context, text string) (int, error) {
	var resp struct {
		Length int `json:"length"`
	}
	if err := c.post(ctx, "/tokens", map[string]any{"text": text}, &resp); err != nil {
		return 0, fmt.Errorf("token length: %w", err)
	}
	return resp.Length, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	if c.endpoint == "" {
		return fmt.Errorf("inference endpoint is not configured")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
