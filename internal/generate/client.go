package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Client calls a remote generation endpoint over HTTP. It does not retry.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, endpoint string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, endpoint: endpoint, logger: logger}
}

func (c *Client) Generate(ctx context.Context, prompt string) (Result, error) {
	body, err := json.Marshal(Request{Prompt: prompt})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var out Result
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if out.ImageURL == "" {
		return Result{}, fmt.Errorf("%w: missing image_url", ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "generation response",
		"endpoint", c.endpoint,
		"image_url", out.ImageURL,
		"has_metadata", out.Metadata != nil,
	)
	return out, nil
}
