// internal/service/webhook_service.go
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
)

// WebhookService ingests delivery-provider engagement callbacks. It is
// idempotent under at-least-once redelivery: correctness rests on the
// (tracking id, event type) dedup key, not on locking, so out-of-order
// concurrent delivery across candidates and templates is fine.
type WebhookService struct {
	Candidates  repository.CandidateRepositoryInterface
	Templates   repository.TemplateRepositoryInterface
	Activity    repository.ActivityRepositoryInterface
	Engagements repository.EngagementRepositoryInterface
}

var activityForEngagement = map[model.EngagementType]model.ActivityType{
	model.EngagementDelivered: model.ActivityEmailDelivered,
	model.EngagementOpened:    model.ActivityEmailOpened,
	model.EngagementClicked:   model.ActivityEmailClicked,
	model.EngagementBounced:   model.ActivityEmailBounced,
}

// Ingest maps a callback to its candidate and template, drops duplicates
// silently, and bumps exactly the counter matching the event type.
func (s *WebhookService) Ingest(trackingID string, eventType model.EngagementType, occurredAt time.Time) error {
	if !eventType.Valid() {
		return fmt.Errorf("unknown engagement event type %q", eventType)
	}

	cand, err := s.Candidates.GetByTrackingID(trackingID)
	if err != nil {
		return err
	}
	if cand == nil || cand.TemplateID == nil {
		// Unknown tracking id: stale provider state, nothing to update.
		log.Printf("⏭️ engagement for unknown tracking id %s dropped", trackingID)
		return nil
	}

	fresh, err := s.Engagements.RecordOnce(&model.EngagementEvent{
		TrackingID:  trackingID,
		EventType:   eventType,
		CandidateID: cand.ID,
		TemplateID:  *cand.TemplateID,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return err
	}
	if !fresh {
		// Provider redelivery, not an error.
		return nil
	}

	if err := s.Templates.IncrementStat(*cand.TemplateID, eventType); err != nil {
		return err
	}

	s.updateSummary(cand, eventType)
	s.advanceEngaged(cand, eventType)

	err = s.Activity.Append(&model.ActivityEvent{
		CandidateID: cand.ID,
		Type:        activityForEngagement[eventType],
		Description: fmt.Sprintf("provider reported %s for tracking id %s", eventType, trackingID),
		Metadata:    map[string]string{"tracking_id": trackingID},
	})
	if err != nil {
		log.Println("⚠️ failed to append engagement event:", err)
	}

	return nil
}

// updateSummary maintains the display-only "most significant event seen"
// field. Counters are independent of it.
func (s *WebhookService) updateSummary(cand *model.CandidateRecord, eventType model.EngagementType) {
	current := model.EngagementType(cand.EngagementSummary)
	if eventType.Significance() <= current.Significance() {
		return
	}
	if err := s.Candidates.UpdateEngagementSummary(cand.ID, string(eventType)); err != nil {
		log.Println("⚠️ failed to update engagement summary:", err)
	}
}

// advanceEngaged moves a contacted candidate to engaged when a human
// signal (open or click) comes in.
func (s *WebhookService) advanceEngaged(cand *model.CandidateRecord, eventType model.EngagementType) {
	if cand.Status != model.StatusContacted {
		return
	}
	if eventType != model.EngagementOpened && eventType != model.EngagementClicked {
		return
	}
	if err := s.Candidates.UpdateStatus(cand.ID, model.StatusEngaged); err != nil {
		log.Println("⚠️ failed to advance candidate to engaged:", err)
	}
}
