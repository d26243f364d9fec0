// internal/transport/email.go
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultMailEndpoint = "https://api.sendgrid.com/v3/mail/send"

// ProviderEmailSender posts to a SendGrid-compatible REST endpoint.
type ProviderEmailSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewProviderEmailSender(endpoint, apiKey string) *ProviderEmailSender {
	if endpoint == "" {
		endpoint = defaultMailEndpoint
	}
	return &ProviderEmailSender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ProviderEmailSender) SendEmail(ctx context.Context, msg EmailMessage) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{
				"to":          []map[string]string{{"email": msg.To}},
				"custom_args": map[string]string{"tracking_id": msg.TrackingID},
			},
		},
		"from":    map[string]string{"email": msg.FromEmail, "name": msg.FromName},
		"subject": msg.Subject,
		"content": []map[string]string{{"type": "text/plain", "value": msg.Body}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned %s: %s", resp.Status, detail)
	}
	return nil
}

// EmailFromEnv wires the provider sender when MAIL_API_KEY is set and the
// mock sender otherwise.
func EmailFromEnv() EmailSender {
	apiKey := os.Getenv("MAIL_API_KEY")
	if apiKey == "" {
		return &MockEmailSender{}
	}
	return NewProviderEmailSender(os.Getenv("MAIL_API_URL"), apiKey)
}

var _ EmailSender = (*ProviderEmailSender)(nil)
