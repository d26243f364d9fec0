// internal/service/outreach_service.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/generation"
	"github.com/unclebandit/brokerbridge-backend/internal/model"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
	"github.com/unclebandit/brokerbridge-backend/internal/transport"
)

// EmailResolver finds a missing email from a candidate's website.
type EmailResolver interface {
	FindEmail(ctx context.Context, website string) (string, error)
}

// ContentGenerator produces send-ready content for a candidate.
type ContentGenerator interface {
	EmailFor(ctx context.Context, c *model.CandidateRecord, t *model.Template) (*generation.EmailContent, error)
	SMSFor(ctx context.Context, c *model.CandidateRecord, t *model.Template) (string, error)
}

// SenderIdentity is the fixed persona outgoing messages are sent as.
type SenderIdentity struct {
	FromName  string
	FromEmail string
	SMSFrom   string
}

// OutreachService sequences enrichment, channel selection, content
// generation and delivery for one candidate per trigger.
type OutreachService struct {
	Candidates repository.CandidateRepositoryInterface
	Templates  repository.TemplateRepositoryInterface
	Activity   repository.ActivityRepositoryInterface
	Resolver   EmailResolver
	Generator  ContentGenerator
	Email      transport.EmailSender
	SMS        transport.SMSSender
	Identity   SenderIdentity
}

// TriggerOutreach is idempotent: a candidate already marked sent produces
// only a skip log, which is what tolerates duplicate invocations from
// at-least-once triggers.
func (s *OutreachService) TriggerOutreach(ctx context.Context, candidateID int) error {
	cand, err := s.Candidates.GetByID(candidateID)
	if err != nil {
		return err
	}

	if cand.OutreachStatus == model.OutreachSent {
		log.Printf("⏭️ candidate %d already sent, skipping outreach", candidateID)
		return nil
	}

	s.enrich(ctx, cand)

	channel := SelectChannel(cand)
	if channel == model.ChannelNone {
		if err := s.Candidates.MarkFailed(cand.ID, model.ChannelNone, "no contact channel available"); err != nil {
			return err
		}
		s.logActivity(cand.ID, model.ActivityOutreachFailed, "no contact channel available after enrichment", map[string]string{
			"channel": string(model.ChannelNone),
		})
		return appErrors.NewNoChannelAvailable(cand.ID)
	}

	tpl, err := s.templateFor(cand, channel)
	if err != nil {
		return s.failOutreach(cand, channel, err)
	}

	trackingID := uuid.NewString()

	switch channel {
	case model.ChannelEmail:
		content, err := s.Generator.EmailFor(ctx, cand, tpl)
		if err != nil {
			return s.failOutreach(cand, channel, err)
		}
		err = s.Email.SendEmail(ctx, transport.EmailMessage{
			FromName:   s.Identity.FromName,
			FromEmail:  s.Identity.FromEmail,
			To:         cand.Email,
			Subject:    content.Subject,
			Body:       content.Body,
			TrackingID: trackingID,
		})
		if err != nil {
			return s.failOutreach(cand, channel, appErrors.NewDeliveryFailed(string(channel), err))
		}
	case model.ChannelSMS:
		body, err := s.Generator.SMSFor(ctx, cand, tpl)
		if err != nil {
			return s.failOutreach(cand, channel, err)
		}
		err = s.SMS.SendSMS(ctx, transport.SMSMessage{
			From:       s.Identity.SMSFrom,
			To:         cand.Phone,
			Body:       body,
			TrackingID: trackingID,
		})
		if err != nil {
			return s.failOutreach(cand, channel, appErrors.NewDeliveryFailed(string(channel), err))
		}
	}

	won, err := s.Candidates.MarkSent(cand.ID, channel, tpl.ID, trackingID)
	if err != nil {
		return err
	}
	if !won {
		// A concurrent trigger recorded its send first; this send went out
		// as a duplicate. Surface it rather than overwrite.
		log.Printf("⚠️ candidate %d: concurrent trigger already marked sent, duplicate delivery occurred", cand.ID)
		return nil
	}

	if err := s.Templates.IncrementSent(tpl.ID); err != nil {
		log.Println("⚠️ failed to bump template sent counter:", err)
	}

	s.logActivity(cand.ID, model.ActivityOutreachSent,
		fmt.Sprintf("outreach sent via %s using template %d", channel, tpl.ID),
		map[string]string{"channel": string(channel), "tracking_id": trackingID})

	return nil
}

// Resend is the only path that clears the sent guard, and only for this
// one candidate. Strictly operator-invoked; failed candidates are never
// retried automatically.
func (s *OutreachService) Resend(ctx context.Context, candidateID int) error {
	if _, err := s.Candidates.GetByID(candidateID); err != nil {
		return err
	}
	if err := s.Candidates.ResetOutreach(candidateID); err != nil {
		return err
	}
	return s.TriggerOutreach(ctx, candidateID)
}

// GetFunnelStats exposes per-outreach-status counts, so failed and
// channel-less candidates stay visible to operators.
func (s *OutreachService) GetFunnelStats() (map[string]int, error) {
	return s.Candidates.GetFunnelStats()
}

// enrich fills a missing email from the candidate's website. Failures are
// logged and swallowed: the pipeline proceeds without an email.
func (s *OutreachService) enrich(ctx context.Context, cand *model.CandidateRecord) {
	if cand.Email != "" || cand.Website == "" {
		return
	}

	email, err := s.Resolver.FindEmail(ctx, cand.Website)
	if err != nil {
		log.Printf("⚠️ enrichment failed for candidate %d: %v", cand.ID, err)
		return
	}
	if email == "" {
		return
	}

	// Persist immediately so a later resend does not re-scrape.
	if err := s.Candidates.UpdateEmail(cand.ID, email, model.EmailSourceWebsiteScan); err != nil {
		log.Println("⚠️ failed to persist enriched email:", err)
		return
	}
	cand.Email = email
	cand.EmailSource = model.EmailSourceWebsiteScan

	s.logActivity(cand.ID, model.ActivityEmailEnriched,
		fmt.Sprintf("email %s found on %s", email, cand.Website),
		map[string]string{"email": email, "source": model.EmailSourceWebsiteScan})
}

func (s *OutreachService) templateFor(cand *model.CandidateRecord, channel model.Channel) (*model.Template, error) {
	strategy := "network"
	if cand.HasActiveDeal {
		strategy = "urgent"
	}
	category := fmt.Sprintf("%s_%s", channel, strategy)

	tpl, err := s.Templates.FirstInCategory(category)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, appErrors.NewGenerationFailed(fmt.Sprintf("no template configured for category %s", category), nil)
	}
	return tpl, nil
}

func (s *OutreachService) failOutreach(cand *model.CandidateRecord, channel model.Channel, cause error) error {
	if err := s.Candidates.MarkFailed(cand.ID, channel, cause.Error()); err != nil {
		log.Println("⚠️ failed to mark candidate failed:", err)
	}
	s.logActivity(cand.ID, model.ActivityOutreachFailed, cause.Error(), map[string]string{
		"channel": string(channel),
		"error":   cause.Error(),
	})
	return cause
}

func (s *OutreachService) logActivity(candidateID int, typ model.ActivityType, description string, metadata map[string]string) {
	err := s.Activity.Append(&model.ActivityEvent{
		CandidateID: candidateID,
		Type:        typ,
		Description: description,
		Metadata:    metadata,
	})
	if err != nil {
		log.Println("⚠️ failed to append activity event:", err)
	}
}
