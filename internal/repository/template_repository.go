package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

type TemplateRepositoryInterface interface {
	Create(t *model.Template) error
	GetByID(id int) (*model.Template, error)
	ListTemplates() ([]*model.Template, error)
	FirstInCategory(category string) (*model.Template, error)
	IncrementStat(id int, stat model.EngagementType) error
	IncrementSent(id int) error
	AppendSuggestion(id int, s model.AISuggestion) error
	ApplySuggestion(id int, subject, body string) error
	ClearSuggestions(id int) error
}

type TemplateRepository struct {
	DB *sql.DB
}

const templateColumns = `id, name, channel, category, sequence, subject, body,
        stat_sent, stat_delivered, stat_opened, stat_clicked, stat_bounced,
        ai_suggestions, created_at, updated_at`

// statColumns whitelists the counter columns touched by webhook events.
var statColumns = map[model.EngagementType]string{
	model.EngagementDelivered: "stat_delivered",
	model.EngagementOpened:    "stat_opened",
	model.EngagementClicked:   "stat_clicked",
	model.EngagementBounced:   "stat_bounced",
}

func scanTemplate(scan func(dest ...interface{}) error) (*model.Template, error) {
	var t model.Template
	var suggestions []byte
	err := scan(
		&t.ID, &t.Name, &t.Channel, &t.Category, &t.Sequence, &t.Subject, &t.Body,
		&t.Stats.Sent, &t.Stats.Delivered, &t.Stats.Opened, &t.Stats.Clicked, &t.Stats.Bounced,
		&suggestions, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t.AISuggestions = []model.AISuggestion{}
	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &t.AISuggestions); err != nil {
			return nil, fmt.Errorf("template %d: bad ai_suggestions payload: %w", t.ID, err)
		}
	}
	return &t, nil
}

func (r *TemplateRepository) Create(t *model.Template) error {
	query := `
        INSERT INTO templates (name, channel, category, sequence, subject, body, ai_suggestions, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, '[]'::jsonb, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, t.Name, t.Channel, t.Category, t.Sequence, t.Subject, t.Body).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *TemplateRepository) GetByID(id int) (*model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id=$1`
	row := r.DB.QueryRow(query, id)
	t, err := scanTemplate(row.Scan)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, appErrors.NewTemplateNotFound(id)
	}
	return t, nil
}

func (r *TemplateRepository) ListTemplates() ([]*model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY category, sequence`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*model.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// FirstInCategory returns the first touch of a drip sequence, or nil
// when the category has no templates.
func (r *TemplateRepository) FirstInCategory(category string) (*model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE category=$1 ORDER BY sequence LIMIT 1`
	row := r.DB.QueryRow(query, category)
	return scanTemplate(row.Scan)
}

func (r *TemplateRepository) IncrementStat(id int, stat model.EngagementType) error {
	col, ok := statColumns[stat]
	if !ok {
		return fmt.Errorf("unknown stat %q", stat)
	}
	query := fmt.Sprintf(`UPDATE templates SET %s = %s + 1, updated_at=NOW() WHERE id=$1`, col, col)
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *TemplateRepository) IncrementSent(id int) error {
	query := `UPDATE templates SET stat_sent = stat_sent + 1, updated_at=NOW() WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *TemplateRepository) AppendSuggestion(id int, s model.AISuggestion) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	query := `
        UPDATE templates
        SET ai_suggestions = ai_suggestions || $1::jsonb, updated_at=NOW()
        WHERE id=$2
    `
	_, err = r.DB.Exec(query, string(payload), id)
	return err
}

// ApplySuggestion swaps content and zeroes every counter in one statement,
// so the new content is never observable with the old stats.
func (r *TemplateRepository) ApplySuggestion(id int, subject, body string) error {
	query := `
        UPDATE templates
        SET subject=$1, body=$2,
            stat_sent=0, stat_delivered=0, stat_opened=0, stat_clicked=0, stat_bounced=0,
            updated_at=NOW()
        WHERE id=$3
    `
	_, err := r.DB.Exec(query, subject, body, id)
	return err
}

func (r *TemplateRepository) ClearSuggestions(id int) error {
	query := `UPDATE templates SET ai_suggestions='[]'::jsonb, updated_at=NOW() WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
