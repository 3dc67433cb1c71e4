package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultURL = "https://api.pushover.net/1/messages.json"

// Client sends lamp events as Pushover messages. A client without
// credentials silently drops everything.
type Client struct {
	token      string
	userKey    string
	title      string
	url        string
	httpClient *http.Client
}

func NewClient(token, userKey, title string) *Client {
	return NewClientWithURL(token, userKey, title, defaultURL)
}

func NewClientWithURL(token, userKey, title, apiURL string) *Client {
	if title == "" {
		title = "Zinnia"
	}
	return &Client{
		token:      token,
		userKey:    userKey,
		title:      title,
		url:        apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Notify(ctx context.Context, message string) error {
	if c.token == "" || c.userKey == "" {
		return nil
	}

	form := url.Values{
		"token":   {c.token},
		"user":    {c.userKey},
		"title":   {c.title},
		"message": {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var failure struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && len(failure.Errors) > 0 {
		return fmt.Errorf("pushover error: %s: %s", resp.Status, strings.Join(failure.Errors, "; "))
	}
	return fmt.Errorf("pushover error: %s", resp.Status)
}
