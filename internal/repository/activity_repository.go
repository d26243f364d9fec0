package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

type ActivityRepositoryInterface interface {
	Append(e *model.ActivityEvent) error
	ListByCandidate(candidateID int) ([]model.ActivityEvent, error)
}

// ActivityRepository is append-only: events are never updated or deleted.
type ActivityRepository struct {
	DB *sql.DB
}

func (r *ActivityRepository) Append(e *model.ActivityEvent) error {
	e.CreatedAt = time.Now()
	meta := []byte("{}")
	if e.Metadata != nil {
		var err error
		meta, err = json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
	}
	query := `
        INSERT INTO activity_events (candidate_id, type, description, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, e.CandidateID, e.Type, e.Description, string(meta), e.CreatedAt).Scan(&e.ID)
}

func (r *ActivityRepository) ListByCandidate(candidateID int) ([]model.ActivityEvent, error) {
	query := `
        SELECT id, candidate_id, type, description, metadata, created_at
        FROM activity_events
        WHERE candidate_id=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.ActivityEvent{}
	for rows.Next() {
		var e model.ActivityEvent
		var meta []byte
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Type, &e.Description, &meta, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}
	return events, nil
}

var _ ActivityRepositoryInterface = (*ActivityRepository)(nil)
