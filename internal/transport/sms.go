// internal/transport/sms.go
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ProviderSMSSender posts form-encoded messages to a Twilio-compatible
// endpoint using basic auth.
type ProviderSMSSender struct {
	endpoint   string
	accountSID string
	authToken  string
	client     *http.Client
}

func NewProviderSMSSender(endpoint, accountSID, authToken string) *ProviderSMSSender {
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", accountSID)
	}
	return &ProviderSMSSender{
		endpoint:   endpoint,
		accountSID: accountSID,
		authToken:  authToken,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ProviderSMSSender) SendSMS(ctx context.Context, msg SMSMessage) error {
	form := url.Values{}
	form.Set("From", msg.From)
	form.Set("To", msg.To)
	form.Set("Body", msg.Body)
	// Echoed back in delivery callbacks.
	form.Set("StatusCallback", os.Getenv("SMS_STATUS_CALLBACK"))
	form.Set("ProvideFeedback", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %s: %s", resp.Status, detail)
	}
	return nil
}

// SMSFromEnv wires the provider sender when SMS credentials are set and
// the mock sender otherwise.
func SMSFromEnv() SMSSender {
	sid := os.Getenv("SMS_ACCOUNT_SID")
	token := os.Getenv("SMS_AUTH_TOKEN")
	if sid == "" || token == "" {
		return &MockSMSSender{}
	}
	return NewProviderSMSSender(os.Getenv("SMS_API_URL"), sid, token)
}

var _ SMSSender = (*ProviderSMSSender)(nil)
