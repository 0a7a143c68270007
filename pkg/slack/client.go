// Package slack provides a minimal client for posting messages to a Slack
// incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client posts plain-text messages to one incoming webhook URL.
type Client struct {
	webhookURL string
	client     *http.Client
}

// NewClient creates a Client for the given webhook URL. The HTTP client is
// shared with other channels and owned by the caller.
func NewClient(webhookURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		webhookURL: webhookURL,
		client:     httpClient,
	}
}

// webhookPayload is the body Slack expects on an incoming webhook.
type webhookPayload struct {
	Text string `json:"text"`
}

// Send posts text to the webhook and returns an error on transport failure
// or a non-2xx response.
func (c *Client) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(webhookPayload{Text: text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook error: %s", resp.Status)
	}

	return nil
}
