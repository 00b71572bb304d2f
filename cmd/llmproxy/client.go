package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dukegpt/llmproxy/internal/config"
)

// relayClient probes a locally running relay.
type relayClient struct {
	baseURL    string
	httpClient *http.Client
}

var newRelayClient = func(cfg config.Config) *relayClient {
	return &relayClient{
		baseURL:    fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port),
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
}

// ping issues a GET to the relay root. The relay serves exactly one route,
// so any HTTP response, including the stock 404, means it is up.
func (c *relayClient) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay not reachable (is llmproxy running?): %w", err)
	}
	resp.Body.Close()
	return nil
}
