// internal/model/engagement.go
package model

import "time"

// EngagementType enumerates delivery-provider callback events.
type EngagementType string

const (
	EngagementDelivered EngagementType = "delivered"
	EngagementOpened    EngagementType = "opened"
	EngagementClicked   EngagementType = "clicked"
	EngagementBounced   EngagementType = "bounced"
)

// Significance orders engagement events for the candidate display field:
// bounced > clicked > opened > delivered. Unknown types rank lowest.
func (t EngagementType) Significance() int {
	switch t {
	case EngagementBounced:
		return 4
	case EngagementClicked:
		return 3
	case EngagementOpened:
		return 2
	case EngagementDelivered:
		return 1
	}
	return 0
}

// Valid reports whether t is a recognized provider event type.
func (t EngagementType) Valid() bool {
	return t.Significance() > 0
}

// EngagementEvent is a provider callback after mapping back to the
// candidate and template behind its tracking id. The pair
// (TrackingID, EventType) is the redelivery dedup key.
type EngagementEvent struct {
	TrackingID  string         `db:"tracking_id" json:"tracking_id"`
	EventType   EngagementType `db:"event_type" json:"event_type"`
	CandidateID int            `db:"candidate_id" json:"candidate_id"`
	TemplateID  int            `db:"template_id" json:"template_id"`
	OccurredAt  time.Time      `db:"occurred_at" json:"occurred_at"`
	ReceivedAt  time.Time      `db:"received_at" json:"received_at"`
}
