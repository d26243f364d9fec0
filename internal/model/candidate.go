// internal/model/candidate.go
package model

import "time"

// CandidateStatus is the business lifecycle of a vendor or lead.
type CandidateStatus string

const (
	StatusSourced   CandidateStatus = "sourced"
	StatusQualified CandidateStatus = "qualified"
	StatusContacted CandidateStatus = "contacted"
	StatusEngaged   CandidateStatus = "engaged"
	StatusOnboarded CandidateStatus = "onboarded"
	StatusSuspended CandidateStatus = "suspended"
	StatusRejected  CandidateStatus = "rejected"
)

// OutreachStatus tracks the outreach pipeline separately from the
// business lifecycle. "sent" is terminal unless an operator resends.
type OutreachStatus string

const (
	OutreachPending OutreachStatus = "pending"
	OutreachSent    OutreachStatus = "sent"
	OutreachFailed  OutreachStatus = "failed"
	OutreachNone    OutreachStatus = "none"
)

// Channel is the contact medium chosen for outreach.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelNone  Channel = "none"
)

// EmailSourceProvided and EmailSourceWebsiteScan record where a
// candidate's email came from.
const (
	EmailSourceProvided    = "provided"
	EmailSourceWebsiteScan = "website_scan"
)

type CandidateRecord struct {
	ID                int             `db:"id" json:"id"`
	Kind              string          `db:"kind" json:"kind"` // vendor or lead
	Name              string          `db:"name" json:"name"`
	Address           string          `db:"address" json:"address"`
	Website           string          `db:"website" json:"website"`
	Phone             string          `db:"phone" json:"phone"`
	Email             string          `db:"email" json:"email"`
	EmailSource       string          `db:"email_source" json:"email_source,omitempty"`
	Track             string          `db:"track" json:"track"` // onboarding track set at approval
	HasActiveDeal     bool            `db:"has_active_deal" json:"has_active_deal"`
	Status            CandidateStatus `db:"status" json:"status"`
	OutreachStatus    OutreachStatus  `db:"outreach_status" json:"outreach_status"`
	OutreachChannel   Channel         `db:"outreach_channel" json:"outreach_channel"`
	LastOutreachError string          `db:"last_outreach_error" json:"last_outreach_error,omitempty"`
	TemplateID        *int            `db:"template_id" json:"template_id,omitempty"`
	TrackingID        string          `db:"tracking_id" json:"tracking_id,omitempty"`
	EngagementSummary string          `db:"engagement_summary" json:"engagement_summary,omitempty"`
	SentAt            *time.Time      `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}
