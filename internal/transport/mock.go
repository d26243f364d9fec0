// internal/transport/mock.go
package transport

import (
	"context"
	"log"
)

// MockEmailSender logs the full content instead of sending. Used whenever
// no mail provider credentials are configured.
type MockEmailSender struct{}

func (m *MockEmailSender) SendEmail(_ context.Context, msg EmailMessage) error {
	log.Printf("📧 [mock email] to=%s tracking=%s\nSubject: %s\n%s\n", msg.To, msg.TrackingID, msg.Subject, msg.Body)
	return nil
}

// MockSMSSender logs the full content instead of sending.
type MockSMSSender struct{}

func (m *MockSMSSender) SendSMS(_ context.Context, msg SMSMessage) error {
	log.Printf("📱 [mock sms] to=%s tracking=%s\n%s\n", msg.To, msg.TrackingID, msg.Body)
	return nil
}

var _ EmailSender = (*MockEmailSender)(nil)
var _ SMSSender = (*MockSMSSender)(nil)
