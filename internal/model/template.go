// internal/model/template.go
package model

import "time"

// TemplateStats are monotonic counters for the current content version.
// They are zeroed together with a content swap when a suggestion is applied.
type TemplateStats struct {
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Opened    int `json:"opened"`
	Clicked   int `json:"clicked"`
	Bounced   int `json:"bounced"`
}

// SuggestionCandidate is one rewrite proposed by the optimizer.
type SuggestionCandidate struct {
	Subject   string `json:"subject,omitempty"` // empty for SMS templates
	Body      string `json:"body"`
	Rationale string `json:"rationale"`
}

// AISuggestion is one optimization round, stamped with the stats snapshot
// it was computed against. The list on a template is append-only.
type AISuggestion struct {
	Analysis               string                `json:"analysis"`
	Candidates             []SuggestionCandidate `json:"candidates"`
	LinkTestRecommendation string                `json:"link_test_recommendation,omitempty"`
	PerformanceSnapshot    TemplateStats         `json:"performance_snapshot"`
	GeneratedAt            time.Time             `json:"generated_at"`
}

type Template struct {
	ID            int            `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Channel       Channel        `db:"channel" json:"channel"`
	Category      string         `db:"category" json:"category"` // e.g. email_urgent, sms_network
	Sequence      int            `db:"sequence" json:"sequence"` // position within the drip sequence
	Subject       string         `db:"subject" json:"subject,omitempty"`
	Body          string         `db:"body" json:"body"`
	Stats         TemplateStats  `json:"stats"`
	AISuggestions []AISuggestion `json:"ai_suggestions"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
