// internal/model/activity.go
package model

import "time"

// ActivityType enumerates the events recorded against a candidate.
type ActivityType string

const (
	ActivityOutreachSent       ActivityType = "OUTREACH_SENT"
	ActivityOutreachFailed     ActivityType = "OUTREACH_FAILED"
	ActivityEmailEnriched      ActivityType = "EMAIL_ENRICHED"
	ActivityEmailDelivered     ActivityType = "EMAIL_DELIVERED"
	ActivityEmailOpened        ActivityType = "EMAIL_OPENED"
	ActivityEmailClicked       ActivityType = "EMAIL_CLICKED"
	ActivityEmailBounced       ActivityType = "EMAIL_BOUNCED"
	ActivityCandidateApproved ActivityType = "CANDIDATE_APPROVED"
)

// ActivityEvent is append-only: never mutated, never deleted.
type ActivityEvent struct {
	ID          int               `db:"id" json:"id"`
	CandidateID int               `db:"candidate_id" json:"candidate_id"`
	Type        ActivityType      `db:"type" json:"type"`
	Description string            `db:"description" json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}
