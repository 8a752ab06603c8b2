// Package api is the HTTP gateway to the Kameleoon Automation API.
//
// Every call is stateless: the caller supplies a bearer token (obtained via
// AccessToken) and resource parameters, and gets back a typed entity or a
// typed error. Token caching lives in internal/auth, not here.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/kamctl/kamctl/internal/utils"
)

// DefaultBaseURL is the production Kameleoon Automation API endpoint.
const DefaultBaseURL = "https://api.kameleoon.com"

// Client issues requests against one API base URL.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// New creates a gateway client. An empty baseURL selects the production API.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	// Exhausted retries must still hand back the response so remote errors
	// map to the typed error values instead of a generic transport failure.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
	}
}

// do performs one authenticated JSON round-trip. A nil out discards the
// response body; a nil body sends no payload.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	utils.Log.Debugf("api: %s %s", method, endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	utils.Log.Debugf("api: %s %s -> %d (%d bytes)", method, endpoint, resp.StatusCode, len(data))

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}
