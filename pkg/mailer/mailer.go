package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Config for the transactional email API used for human handoffs.
type Config struct {
	APIKey  string        `split_words:"true"`
	BaseURL string        `split_words:"true" default:"https://api.resend.com"`
	From    string        `split_words:"true" default:"agent@sierraoutfitters.example"`
	To      string        `split_words:"true" default:"support@sierraoutfitters.example"`
	Subject string        `split_words:"true" default:"Customer needs human assistance"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("mailer api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// SendSupportEmail delivers the drafted internal email to the support team.
// The customer reference goes into the subject so the team can thread
// follow-ups.
func (c *Client) SendSupportEmail(ctx context.Context, body, customerID string) error {
	subject := c.cfg.Subject
	if strings.TrimSpace(customerID) != "" {
		subject = fmt.Sprintf("%s [%s]", subject, customerID)
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.cfg.From,
		To:      []string{c.cfg.To},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send email: unexpected status %d", resp.StatusCode)
	}
	return nil
}
