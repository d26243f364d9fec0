// Package transport sends the final outreach content through a delivery
// provider. Each channel has a production sender and a mock sender; the
// mock is selected purely by absent credentials so the whole pipeline
// runs offline.
package transport

import "context"

// EmailMessage carries everything an email provider needs. TrackingID is
// attached as provider metadata and echoed back in engagement webhooks.
type EmailMessage struct {
	FromName   string
	FromEmail  string
	To         string
	Subject    string
	Body       string
	TrackingID string
}

// SMSMessage is the single-body SMS equivalent.
type SMSMessage struct {
	From       string
	To         string
	Body       string
	TrackingID string
}

type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, msg SMSMessage) error
}
