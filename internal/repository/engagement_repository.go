package repository

import (
	"database/sql"
	"time"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

type EngagementRepositoryInterface interface {
	RecordOnce(e *model.EngagementEvent) (bool, error)
}

// EngagementRepository deduplicates provider callbacks. The primary key
// (tracking_id, event_type) makes redelivered events insert zero rows.
type EngagementRepository struct {
	DB *sql.DB
}

// RecordOnce inserts the event and reports whether it was the first time
// this (tracking id, event type) pair was seen.
func (r *EngagementRepository) RecordOnce(e *model.EngagementEvent) (bool, error) {
	e.ReceivedAt = time.Now()
	query := `
        INSERT INTO engagement_events (tracking_id, event_type, candidate_id, template_id, occurred_at, received_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (tracking_id, event_type) DO NOTHING
    `
	res, err := r.DB.Exec(query, e.TrackingID, e.EventType, e.CandidateID, e.TemplateID, e.OccurredAt, e.ReceivedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ EngagementRepositoryInterface = (*EngagementRepository)(nil)
