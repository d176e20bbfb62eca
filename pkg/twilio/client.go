// Package twilio sends WhatsApp messages through the Twilio REST API. It is
// invoked from admin-only messaging actions and never from the order or auth
// paths.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MarcsonSantos/lu-estilo/pkg/config"
)

const defaultBaseURL = "https://api.twilio.com"

// Client talks to the Twilio Messages endpoint.
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
}

// NewClient creates a Client from Twilio configuration.
func NewClient(cfg *config.TwilioConfig) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.SandboxNumber,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type messageResponse struct {
	SID string `json:"sid"`
}

// Send delivers a WhatsApp message and returns the Twilio message SID.
// Failures carry the upstream response body so they can be reported, never
// silently swallowed.
func (c *Client) Send(ctx context.Context, to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read twilio response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var message messageResponse
	if err := json.Unmarshal(respBody, &message); err != nil {
		return "", fmt.Errorf("failed to decode twilio response: %w", err)
	}

	return message.SID, nil
}
