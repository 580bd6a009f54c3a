/**
 * @description
 * Client for dispatching dunning notices through the mailer service.
 */
package mailerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hostforge/payment-monitor-service/internal/domain"
)

// Client is a client for the mailer service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new mailer service client.
func NewClient(baseURL string) *Client {
	normalizedURL := strings.TrimSuffix(baseURL, "/")
	return &Client{
		baseURL:    normalizedURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendDunningNotice asks the mailer service to render and send a templated
// dunning mail. Transient failures are retried once.
func (c *Client) SendDunningNotice(ctx context.Context, notice domain.DunningNotice) error {
	if c.baseURL == "" {
		return fmt.Errorf("mailer service base URL is not configured")
	}

	url := fmt.Sprintf("%s/internal/notifications/dunning", c.baseURL)

	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal dunning notice: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to execute request to mailer service: %w", err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode < 400 {
			return nil
		}
		lastErr = fmt.Errorf("mailer service returned error status %d", resp.StatusCode)
		if resp.StatusCode < 500 {
			// Client errors will not succeed on retry.
			return lastErr
		}
	}

	return lastErr
}
