package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much GetBytes will read from a response.
const MaxBodyBytes = 32 << 20

// GetBytes fetches url and returns the body of a 200 response.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
}
