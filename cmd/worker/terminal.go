package main

import (
	"errors"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
)

// isTerminalOutcome distinguishes pipeline verdicts from infrastructure
// errors. Verdicts are final until an operator resends.
func isTerminalOutcome(err error) bool {
	var noChannel *appErrors.ErrNoChannelAvailable
	var generation *appErrors.ErrGenerationFailed
	var delivery *appErrors.ErrDeliveryFailed
	return errors.As(err, &noChannel) ||
		errors.As(err, &generation) ||
		errors.As(err, &delivery)
}
