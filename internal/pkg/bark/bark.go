package bark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultServerURL = "https://api.day.app"

// Client sends iOS push notifications via the Bark API.
type Client struct {
	key        string
	serverURL  string
	group      string
	httpClient *http.Client
}

// New creates a Bark client for the given device key.
func New(key, serverURL, group string) *Client {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	return &Client{
		key:        strings.TrimSpace(key),
		serverURL:  serverURL,
		group:      group,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type pushPayload struct {
	DeviceKey string `json:"device_key"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Group     string `json:"group,omitempty"`
}

// Push sends a Bark notification.
func (c *Client) Push(ctx context.Context, title, body string) error {
	if c.key == "" {
		return fmt.Errorf("bark key not configured")
	}

	b, err := json.Marshal(pushPayload{
		DeviceKey: c.key,
		Title:     title,
		Body:      body,
		Group:     c.group,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/push", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("bark push failed: status %d", resp.StatusCode)
	}
	return nil
}
