// internal/generation/generator.go
package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

const (
	completionTimeout = 30 * time.Second
	smsMaxRunes       = 160
)

// EmailContent is the structured output of an email generation.
type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type smsContent struct {
	Message string `json:"message"`
}

// Generator turns a candidate plus a base template into send-ready
// content. A parse failure is a hard generation failure: garbled model
// output is never sent.
type Generator struct {
	llm Client
}

func NewGenerator(llm Client) *Generator {
	return &Generator{llm: llm}
}

func (g *Generator) EmailFor(ctx context.Context, c *model.CandidateRecord, t *model.Template) (*EmailContent, error) {
	raw, err := g.complete(ctx, buildEmailPrompt(c, t))
	if err != nil {
		return nil, err
	}

	var content EmailContent
	if err := json.Unmarshal([]byte(stripFences(raw)), &content); err != nil {
		return nil, appErrors.NewGenerationFailed("malformed model output", err)
	}
	if content.Subject == "" || content.Body == "" {
		return nil, appErrors.NewGenerationFailed("model output missing subject or body", nil)
	}
	return &content, nil
}

func (g *Generator) SMSFor(ctx context.Context, c *model.CandidateRecord, t *model.Template) (string, error) {
	raw, err := g.complete(ctx, buildSMSPrompt(c, t))
	if err != nil {
		return "", err
	}

	var content smsContent
	if err := json.Unmarshal([]byte(stripFences(raw)), &content); err != nil {
		return "", appErrors.NewGenerationFailed("malformed model output", err)
	}
	if content.Message == "" {
		return "", appErrors.NewGenerationFailed("model output missing message", nil)
	}

	// Hard cap near one SMS segment even when the model ignores the limit.
	msg := content.Message
	if runes := []rune(msg); len(runes) > smsMaxRunes {
		msg = string(runes[:smsMaxRunes])
	}
	return msg, nil
}

// Suggestion is the parsed result of one template optimization call.
type Suggestion struct {
	Analysis               string                      `json:"analysis"`
	Candidates             []model.SuggestionCandidate `json:"candidates"`
	LinkTestRecommendation string                      `json:"link_test_recommendation"`
}

func (g *Generator) SuggestionsFor(ctx context.Context, t *model.Template) (*Suggestion, error) {
	raw, err := g.complete(ctx, buildOptimizationPrompt(t))
	if err != nil {
		return nil, err
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(stripFences(raw)), &s); err != nil {
		return nil, appErrors.NewGenerationFailed("malformed model output", err)
	}
	if len(s.Candidates) == 0 {
		return nil, appErrors.NewGenerationFailed("model proposed no candidates", nil)
	}
	return &s, nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return "", appErrors.NewGenerationFailed("model call failed", err)
	}
	return raw, nil
}

// stripFences removes a markdown code-fence wrapper. Models wrap JSON in
// fences even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
