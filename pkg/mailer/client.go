package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	Username   string
	Password   string
	From       string
	HTTPClient *http.Client
}

type SendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, username, password, from string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		Password: password,
		From:     from,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether an API endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != ""
}

// Send email through the mail API
func (c *Client) SendEmail(ctx context.Context, to, subject, text string) (*SendEmailResponse, error) {
	requestData := SendEmailRequest{
		From:    c.From,
		To:      []string{to},
		Subject: subject,
		Text:    text,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := c.BaseURL + "/send/email"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Username != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("mail API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response SendEmailResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !response.Success {
		return &response, fmt.Errorf("mail API rejected message: %s", response.Message)
	}

	return &response, nil
}

// Send plain text email, discarding the API response
func (c *Client) SendTextEmail(ctx context.Context, to, subject, text string) error {
	_, err := c.SendEmail(ctx, to, subject, text)
	return err
}
