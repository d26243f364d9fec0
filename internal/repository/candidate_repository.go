package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

type CandidateRepositoryInterface interface {
	Create(c *model.CandidateRecord) error
	GetByID(id int) (*model.CandidateRecord, error)
	GetByTrackingID(trackingID string) (*model.CandidateRecord, error)
	ListCandidates(offset, limit int, status, channel string) ([]*model.CandidateRecord, int, error)
	UpdateEmail(id int, email, source string) error
	UpdateStatus(id int, status model.CandidateStatus) error
	MarkSent(id int, channel model.Channel, templateID int, trackingID string) (bool, error)
	MarkFailed(id int, channel model.Channel, reason string) error
	ResetOutreach(id int) error
	UpdateEngagementSummary(id int, summary string) error
	GetFunnelStats() (map[string]int, error)
}

type CandidateRepository struct {
	DB *sql.DB
}

const candidateColumns = `id, kind, name, address, website, phone, email, email_source, track,
        has_active_deal, status, outreach_status, outreach_channel, last_outreach_error,
        template_id, tracking_id, engagement_summary, sent_at, created_at, updated_at`

func (r *CandidateRepository) scanCandidate(row *sql.Row) (*model.CandidateRecord, error) {
	var c model.CandidateRecord
	err := row.Scan(
		&c.ID, &c.Kind, &c.Name, &c.Address, &c.Website, &c.Phone, &c.Email, &c.EmailSource, &c.Track,
		&c.HasActiveDeal, &c.Status, &c.OutreachStatus, &c.OutreachChannel, &c.LastOutreachError,
		&c.TemplateID, &c.TrackingID, &c.EngagementSummary, &c.SentAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepository) Create(c *model.CandidateRecord) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.StatusSourced
	}
	if c.OutreachStatus == "" {
		c.OutreachStatus = model.OutreachPending
	}
	if c.OutreachChannel == "" {
		c.OutreachChannel = model.ChannelNone
	}
	query := `
        INSERT INTO candidates (kind, name, address, website, phone, email, email_source, track,
            has_active_deal, status, outreach_status, outreach_channel, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.Kind, c.Name, c.Address, c.Website, c.Phone, c.Email, c.EmailSource, c.Track,
		c.HasActiveDeal, c.Status, c.OutreachStatus, c.OutreachChannel, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CandidateRepository) GetByID(id int) (*model.CandidateRecord, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id=$1`
	c, err := r.scanCandidate(r.DB.QueryRow(query, id))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, appErrors.NewCandidateNotFound(id)
	}
	return c, nil
}

func (r *CandidateRepository) GetByTrackingID(trackingID string) (*model.CandidateRecord, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE tracking_id=$1`
	return r.scanCandidate(r.DB.QueryRow(query, trackingID))
}

func (r *CandidateRepository) ListCandidates(offset, limit int, status, channel string) ([]*model.CandidateRecord, int, error) {
	candidates := []*model.CandidateRecord{}
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if channel != "" {
		query += fmt.Sprintf(" AND outreach_channel=$%d", argPos)
		args = append(args, channel)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.CandidateRecord{}
		if err := rows.Scan(
			&c.ID, &c.Kind, &c.Name, &c.Address, &c.Website, &c.Phone, &c.Email, &c.EmailSource, &c.Track,
			&c.HasActiveDeal, &c.Status, &c.OutreachStatus, &c.OutreachChannel, &c.LastOutreachError,
			&c.TemplateID, &c.TrackingID, &c.EngagementSummary, &c.SentAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}

	countQuery := `SELECT COUNT(*) FROM candidates WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
		argPosCount++
	}
	if channel != "" {
		countQuery += fmt.Sprintf(" AND outreach_channel=$%d", argPosCount)
		argsCount = append(argsCount, channel)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}

func (r *CandidateRepository) UpdateEmail(id int, email, source string) error {
	query := `UPDATE candidates SET email=$1, email_source=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, email, source, id)
	return err
}

func (r *CandidateRepository) UpdateStatus(id int, status model.CandidateStatus) error {
	query := `UPDATE candidates SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(query, status, id)
	return err
}

// MarkSent is a conditional write: it only succeeds while outreach_status
// is not already 'sent', which closes the race between two triggers that
// both read a stale status. Returns false when another trigger won.
func (r *CandidateRepository) MarkSent(id int, channel model.Channel, templateID int, trackingID string) (bool, error) {
	query := `
        UPDATE candidates
        SET outreach_status='sent', outreach_channel=$1, template_id=$2, tracking_id=$3,
            status='contacted', last_outreach_error='', sent_at=NOW(), updated_at=NOW()
        WHERE id=$4 AND outreach_status <> 'sent'
    `
	res, err := r.DB.Exec(query, channel, templateID, trackingID, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CandidateRepository) MarkFailed(id int, channel model.Channel, reason string) error {
	query := `
        UPDATE candidates
        SET outreach_status='failed', outreach_channel=$1, last_outreach_error=$2, updated_at=NOW()
        WHERE id=$3
    `
	_, err := r.DB.Exec(query, channel, reason, id)
	return err
}

// ResetOutreach clears the sent guard for one candidate. Only the explicit
// operator resend path calls this.
func (r *CandidateRepository) ResetOutreach(id int) error {
	query := `
        UPDATE candidates
        SET outreach_status='pending', last_outreach_error='', updated_at=NOW()
        WHERE id=$1
    `
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *CandidateRepository) UpdateEngagementSummary(id int, summary string) error {
	query := `UPDATE candidates SET engagement_summary=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(query, summary, id)
	return err
}

// GetFunnelStats counts candidates per outreach status so failed and
// needs-manual buckets stay visible to operators.
func (r *CandidateRepository) GetFunnelStats() (map[string]int, error) {
	query := `SELECT outreach_status, COUNT(*) FROM candidates GROUP BY outreach_status`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "sent": 0, "failed": 0, "none": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, nil
}

var _ CandidateRepositoryInterface = (*CandidateRepository)(nil)
