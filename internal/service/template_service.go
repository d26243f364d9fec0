// internal/service/template_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/generation"
	"github.com/unclebandit/brokerbridge-backend/internal/model"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
)

const (
	// A template needs at least this many sends before the open rate
	// means anything.
	MinSample = 10
	// Open rate below this flags the template as underperforming.
	LowOpenThreshold = 0.30
)

// RateUnavailable is returned when the denominator is zero.
const RateUnavailable = "unavailable"

// SuggestionGenerator requests rewrite proposals from the model.
type SuggestionGenerator interface {
	SuggestionsFor(ctx context.Context, t *model.Template) (*generation.Suggestion, error)
}

// TemplateService owns the performance aggregation and the optimization
// loop: flag underperformers, request rewrites, apply or dismiss them.
type TemplateService struct {
	Templates repository.TemplateRepositoryInterface
	Generator SuggestionGenerator
}

// Rate formats a percentage with one decimal, or "unavailable" when the
// denominator is zero.
func Rate(n, d int) string {
	if d == 0 {
		return RateUnavailable
	}
	return fmt.Sprintf("%.1f%%", math.Round(float64(n)/float64(d)*1000)/10)
}

// IsUnderperforming applies the flagging rule: enough sends AND a low
// open rate. Small samples are never flagged.
func IsUnderperforming(stats model.TemplateStats) bool {
	if stats.Sent < MinSample {
		return false
	}
	return float64(stats.Opened)/float64(stats.Sent) < LowOpenThreshold
}

// TemplateReport is the operator-facing performance view of one template.
type TemplateReport struct {
	Template        *model.Template `json:"template"`
	DeliveryRate    string          `json:"delivery_rate"`
	OpenRate        string          `json:"open_rate"`
	ClickRate       string          `json:"click_rate"`
	BounceRate      string          `json:"bounce_rate"`
	Underperforming bool            `json:"underperforming"`
}

func (s *TemplateService) Report(templateID int) (*TemplateReport, error) {
	tpl, err := s.Templates.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	return &TemplateReport{
		Template:        tpl,
		DeliveryRate:    Rate(tpl.Stats.Delivered, tpl.Stats.Sent),
		OpenRate:        Rate(tpl.Stats.Opened, tpl.Stats.Sent),
		ClickRate:       Rate(tpl.Stats.Clicked, tpl.Stats.Opened),
		BounceRate:      Rate(tpl.Stats.Bounced, tpl.Stats.Sent),
		Underperforming: IsUnderperforming(tpl.Stats),
	}, nil
}

// Optimize asks the model for rewrites of the current content and appends
// the result to the template's suggestion list, stamped with the stats
// snapshot it was computed against. Prior suggestions are never replaced.
func (s *TemplateService) Optimize(ctx context.Context, templateID int) (*model.AISuggestion, error) {
	tpl, err := s.Templates.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	proposed, err := s.Generator.SuggestionsFor(ctx, tpl)
	if err != nil {
		return nil, err
	}

	suggestion := model.AISuggestion{
		Analysis:               proposed.Analysis,
		Candidates:             proposed.Candidates,
		LinkTestRecommendation: proposed.LinkTestRecommendation,
		PerformanceSnapshot:    tpl.Stats,
		GeneratedAt:            time.Now(),
	}

	if err := s.Templates.AppendSuggestion(templateID, suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// ApplySuggestion swaps the template content for one proposed candidate
// and zeroes the stats counters as a single repository write. Suggestion
// indexes address the flattened candidate list across all rounds.
func (s *TemplateService) ApplySuggestion(templateID, index int) error {
	tpl, err := s.Templates.GetByID(templateID)
	if err != nil {
		return err
	}

	flat := []model.SuggestionCandidate{}
	for _, round := range tpl.AISuggestions {
		flat = append(flat, round.Candidates...)
	}
	if index < 0 || index >= len(flat) {
		return appErrors.NewSuggestionOutOfRange(templateID, index)
	}

	chosen := flat[index]
	subject := chosen.Subject
	if tpl.Channel == model.ChannelSMS {
		subject = ""
	}
	return s.Templates.ApplySuggestion(templateID, subject, chosen.Body)
}

// DismissSuggestions clears the suggestion list only; content and stats
// are untouched.
func (s *TemplateService) DismissSuggestions(templateID int) error {
	if _, err := s.Templates.GetByID(templateID); err != nil {
		return err
	}
	return s.Templates.ClearSuggestions(templateID)
}

// ListReports returns a report per template, ordered as stored.
func (s *TemplateService) ListReports() ([]*TemplateReport, error) {
	templates, err := s.Templates.ListTemplates()
	if err != nil {
		return nil, err
	}

	reports := make([]*TemplateReport, 0, len(templates))
	for _, tpl := range templates {
		reports = append(reports, &TemplateReport{
			Template:        tpl,
			DeliveryRate:    Rate(tpl.Stats.Delivered, tpl.Stats.Sent),
			OpenRate:        Rate(tpl.Stats.Opened, tpl.Stats.Sent),
			ClickRate:       Rate(tpl.Stats.Clicked, tpl.Stats.Opened),
			BounceRate:      Rate(tpl.Stats.Bounced, tpl.Stats.Sent),
			Underperforming: IsUnderperforming(tpl.Stats),
		})
	}
	return reports, nil
}
