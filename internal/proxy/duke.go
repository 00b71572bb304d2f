package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Result is the upstream's reply: its HTTP status code and raw body.
type Result struct {
	StatusCode int
	Body       []byte
}

// Successful reports whether the upstream status is in the 2xx range.
func (r *Result) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Forwarder issues the outbound call to the upstream provider.
// Implementations return the upstream's status and body, or an error when no
// response was obtained at all.
type Forwarder interface {
	Forward(ctx context.Context, body []byte) (*Result, error)
}

// Client forwards chat-completion payloads to the Duke LLM API with the
// configured credential injected.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a Client for the given endpoint. The http.Client carries
// no timeout: a slow upstream holds its request open for as long as it takes.
func NewClient(apiKey, apiURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{},
	}
}

// Forward POSTs body to the upstream endpoint. The outbound call is detached
// from ctx's cancellation: an inbound client that disconnects mid-flight does
// not abort an in-progress upstream request.
func (c *Client) Forward(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full upstream URL; unwrap it so the endpoint
		// does not leak into client-visible error details.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &Result{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
