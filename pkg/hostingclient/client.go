/**
 * @description
 * Client for the hosting control plane. It blocks, unblocks, and tears down
 * customer hosting accounts by domain name. The control plane's operations
 * are idempotent: suspending an already-suspended account succeeds.
 */
package hostingclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the hosting control plane API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new hosting control plane client.
func NewClient(baseURL, apiKey string) *Client {
	normalizedURL := strings.TrimSuffix(baseURL, "/")
	return &Client{
		baseURL:    normalizedURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SuspendAccount blocks the hosting account serving the given domain.
func (c *Client) SuspendAccount(ctx context.Context, domainName string) error {
	return c.post(ctx, domainName, "suspend")
}

// UnsuspendAccount unblocks a previously suspended hosting account.
func (c *Client) UnsuspendAccount(ctx context.Context, domainName string) error {
	return c.post(ctx, domainName, "unsuspend")
}

// TerminateAccount tears down the hosting account serving the given domain.
func (c *Client) TerminateAccount(ctx context.Context, domainName string) error {
	return c.post(ctx, domainName, "terminate")
}

func (c *Client) post(ctx context.Context, domainName, operation string) error {
	if c.baseURL == "" {
		return fmt.Errorf("hosting API base URL is not configured")
	}
	if domainName == "" {
		return fmt.Errorf("domain name is required")
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/%s", c.baseURL, url.PathEscape(domainName), operation)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to execute %s request to hosting API: %w", operation, err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode < 400 {
			return nil
		}
		lastErr = fmt.Errorf("hosting API returned error status %d for %s", resp.StatusCode, operation)
		if resp.StatusCode < 500 {
			return lastErr
		}
	}

	return lastErr
}
