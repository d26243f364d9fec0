// internal/generation/prompt.go
package generation

import (
	"fmt"
	"strings"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

// Fixed persona and value proposition shared by both strategies. Every
// personalization value interpolated below comes from the candidate
// record or the template store, never from the model.
const persona = `You write as Jordan Okelo, partnerships manager at BrokerBridge, a brokerage
that connects service businesses with vetted client work. Plain, direct,
professional tone. No hype words, no exclamation marks.`

const valueProposition = `BrokerBridge handles client acquisition, scheduling, invoicing and payment
collection on behalf of its partner vendors, so they only take on work they
want, with payment guaranteed.`

const urgentFraming = `Frame this as an immediate, time-bound opportunity: we have an
active, paying client engagement in their area right now and need to
confirm a vendor this week.`

const passiveFraming = `Frame this as a low-effort, no-obligation invitation to join our preferred
vendor list so we can reach out when matching client work appears. Make it
clear a short reply is all that is needed.`

func framingFor(c *model.CandidateRecord) string {
	if c.HasActiveDeal {
		return urgentFraming
	}
	return passiveFraming
}

func candidateFacts(c *model.CandidateRecord) string {
	facts := []string{fmt.Sprintf("Business name: %s", c.Name)}
	if c.Address != "" {
		facts = append(facts, fmt.Sprintf("Location: %s", c.Address))
	}
	if c.Website != "" {
		facts = append(facts, fmt.Sprintf("Website: %s", c.Website))
	}
	return strings.Join(facts, "\n")
}

func buildEmailPrompt(c *model.CandidateRecord, t *model.Template) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(valueProposition)
	b.WriteString("\n\n")
	b.WriteString(framingFor(c))
	b.WriteString("\n\nRecipient facts (use only these, do not invent any detail):\n")
	b.WriteString(candidateFacts(c))
	b.WriteString("\n\nBase template to personalize:\nSubject: ")
	b.WriteString(t.Subject)
	b.WriteString("\nBody:\n")
	b.WriteString(t.Body)
	b.WriteString("\n\nRespond with ONLY a JSON object, no markdown, no commentary, shaped exactly as:\n")
	b.WriteString(`{"subject": "...", "body": "..."}`)
	return b.String()
}

func buildSMSPrompt(c *model.CandidateRecord, t *model.Template) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(valueProposition)
	b.WriteString("\n\n")
	b.WriteString(framingFor(c))
	b.WriteString("\n\nRecipient facts (use only these, do not invent any detail):\n")
	b.WriteString(candidateFacts(c))
	b.WriteString("\n\nBase template to personalize:\n")
	b.WriteString(t.Body)
	b.WriteString("\n\nKeep the message under 160 characters.")
	b.WriteString("\nRespond with ONLY a JSON object, no markdown, no commentary, shaped exactly as:\n")
	b.WriteString(`{"message": "..."}`)
	return b.String()
}

func buildOptimizationPrompt(t *model.Template) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nThis outreach template is underperforming. Analyze why and propose rewrites.\n")
	b.WriteString("\nCurrent content:\n")
	if t.Subject != "" {
		b.WriteString("Subject: ")
		b.WriteString(t.Subject)
		b.WriteString("\n")
	}
	b.WriteString("Body:\n")
	b.WriteString(t.Body)
	fmt.Fprintf(&b, "\nPerformance for this content version: sent=%d delivered=%d opened=%d clicked=%d bounced=%d\n",
		t.Stats.Sent, t.Stats.Delivered, t.Stats.Opened, t.Stats.Clicked, t.Stats.Bounced)
	b.WriteString("\nRespond with ONLY a JSON object, no markdown, no commentary, shaped exactly as:\n")
	b.WriteString(`{"analysis": "...", "candidates": [{"subject": "...", "body": "...", "rationale": "..."}], "link_test_recommendation": "..."}`)
	b.WriteString("\nThe link_test_recommendation field is optional. Propose two or three candidates.")
	return b.String()
}
