// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrCandidateNotFound is a sentinel error
type ErrCandidateNotFound struct {
	CandidateID int
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate with ID %d not found", e.CandidateID)
}

func NewCandidateNotFound(id int) error {
	return &ErrCandidateNotFound{CandidateID: id}
}

// ErrTemplateNotFound is a sentinel error
type ErrTemplateNotFound struct {
	TemplateID int
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template with ID %d not found", e.TemplateID)
}

func NewTemplateNotFound(id int) error {
	return &ErrTemplateNotFound{TemplateID: id}
}

// ErrNoChannelAvailable means a candidate has neither email nor phone
// after enrichment. Terminal: the candidate is marked failed/none.
type ErrNoChannelAvailable struct {
	CandidateID int
}

func (e *ErrNoChannelAvailable) Error() string {
	return fmt.Sprintf("candidate %d has no contact channel available", e.CandidateID)
}

func NewNoChannelAvailable(id int) error {
	return &ErrNoChannelAvailable{CandidateID: id}
}

// ErrGenerationFailed covers model call failures and malformed model
// output. Nothing is ever sent from a failed generation.
type ErrGenerationFailed struct {
	Reason string
	Cause  error
}

func (e *ErrGenerationFailed) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("content generation failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("content generation failed: %s", e.Reason)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Cause }

func NewGenerationFailed(reason string, cause error) error {
	return &ErrGenerationFailed{Reason: reason, Cause: cause}
}

// ErrDeliveryFailed is a provider-reported send failure on a specific
// channel. Terminal for the attempt; resend is manual.
type ErrDeliveryFailed struct {
	Channel string
	Cause   error
}

func (e *ErrDeliveryFailed) Error() string {
	return fmt.Sprintf("delivery failed on channel %s: %v", e.Channel, e.Cause)
}

func (e *ErrDeliveryFailed) Unwrap() error { return e.Cause }

func NewDeliveryFailed(channel string, cause error) error {
	return &ErrDeliveryFailed{Channel: channel, Cause: cause}
}

// ErrSuggestionOutOfRange is returned when an apply targets a suggestion
// candidate index that does not exist.
type ErrSuggestionOutOfRange struct {
	TemplateID int
	Index      int
}

func (e *ErrSuggestionOutOfRange) Error() string {
	return fmt.Sprintf("template %d has no suggestion candidate at index %d", e.TemplateID, e.Index)
}

func NewSuggestionOutOfRange(templateID, index int) error {
	return &ErrSuggestionOutOfRange{TemplateID: templateID, Index: index}
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	var c *ErrCandidateNotFound
	var t *ErrTemplateNotFound
	return errors.As(err, &c) || errors.As(err, &t)
}
