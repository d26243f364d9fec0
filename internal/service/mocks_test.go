package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/model"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
	"github.com/unclebandit/brokerbridge-backend/internal/transport"
)

// In-memory candidate repository
type memCandidateRepo struct {
	mu         sync.Mutex
	nextID     int
	candidates map[int]*model.CandidateRecord
	failCreate map[string]bool // by name, for partial-failure tests
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{
		nextID:     1,
		candidates: map[int]*model.CandidateRecord{},
		failCreate: map[string]bool{},
	}
}

func (m *memCandidateRepo) add(c *model.CandidateRecord) *model.CandidateRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	if c.Status == "" {
		c.Status = model.StatusQualified
	}
	if c.OutreachStatus == "" {
		c.OutreachStatus = model.OutreachPending
	}
	if c.OutreachChannel == "" {
		c.OutreachChannel = model.ChannelNone
	}
	m.candidates[c.ID] = c
	return c
}

func (m *memCandidateRepo) Create(c *model.CandidateRecord) error {
	if m.failCreate[c.Name] {
		return fmt.Errorf("simulated persistence failure for %s", c.Name)
	}
	m.add(c)
	return nil
}

func (m *memCandidateRepo) GetByID(id int) (*model.CandidateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, appErrors.NewCandidateNotFound(id)
	}
	copy := *c
	return &copy, nil
}

func (m *memCandidateRepo) GetByTrackingID(trackingID string) (*model.CandidateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.candidates {
		if c.TrackingID == trackingID {
			copy := *c
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *memCandidateRepo) ListCandidates(offset, limit int, status, channel string) ([]*model.CandidateRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.CandidateRecord{}
	for _, c := range m.candidates {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *memCandidateRepo) UpdateEmail(id int, email, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return appErrors.NewCandidateNotFound(id)
	}
	c.Email = email
	c.EmailSource = source
	return nil
}

func (m *memCandidateRepo) UpdateStatus(id int, status model.CandidateStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return appErrors.NewCandidateNotFound(id)
	}
	c.Status = status
	return nil
}

func (m *memCandidateRepo) MarkSent(id int, channel model.Channel, templateID int, trackingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return false, appErrors.NewCandidateNotFound(id)
	}
	if c.OutreachStatus == model.OutreachSent {
		return false, nil
	}
	now := time.Now()
	c.OutreachStatus = model.OutreachSent
	c.OutreachChannel = channel
	c.TemplateID = &templateID
	c.TrackingID = trackingID
	c.Status = model.StatusContacted
	c.LastOutreachError = ""
	c.SentAt = &now
	return true, nil
}

func (m *memCandidateRepo) MarkFailed(id int, channel model.Channel, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return appErrors.NewCandidateNotFound(id)
	}
	c.OutreachStatus = model.OutreachFailed
	c.OutreachChannel = channel
	c.LastOutreachError = reason
	return nil
}

func (m *memCandidateRepo) ResetOutreach(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return appErrors.NewCandidateNotFound(id)
	}
	c.OutreachStatus = model.OutreachPending
	c.LastOutreachError = ""
	return nil
}

func (m *memCandidateRepo) UpdateEngagementSummary(id int, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return appErrors.NewCandidateNotFound(id)
	}
	c.EngagementSummary = summary
	return nil
}

func (m *memCandidateRepo) GetFunnelStats() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := map[string]int{"pending": 0, "sent": 0, "failed": 0, "none": 0}
	for _, c := range m.candidates {
		stats[string(c.OutreachStatus)]++
	}
	return stats, nil
}

var _ repository.CandidateRepositoryInterface = (*memCandidateRepo)(nil)

// In-memory template repository
type memTemplateRepo struct {
	mu        sync.Mutex
	templates map[int]*model.Template
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{templates: map[int]*model.Template{}}
}

func (m *memTemplateRepo) put(t *model.Template) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.AISuggestions == nil {
		t.AISuggestions = []model.AISuggestion{}
	}
	m.templates[t.ID] = t
}

func (m *memTemplateRepo) Create(t *model.Template) error {
	m.put(t)
	return nil
}

func (m *memTemplateRepo) GetByID(id int) (*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, appErrors.NewTemplateNotFound(id)
	}
	copy := *t
	return &copy, nil
}

func (m *memTemplateRepo) ListTemplates() ([]*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Template{}
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTemplateRepo) FirstInCategory(category string) (*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *model.Template
	for _, t := range m.templates {
		if t.Category != category {
			continue
		}
		if best == nil || t.Sequence < best.Sequence {
			best = t
		}
	}
	if best == nil {
		return nil, nil
	}
	copy := *best
	return &copy, nil
}

func (m *memTemplateRepo) IncrementStat(id int, stat model.EngagementType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	switch stat {
	case model.EngagementDelivered:
		t.Stats.Delivered++
	case model.EngagementOpened:
		t.Stats.Opened++
	case model.EngagementClicked:
		t.Stats.Clicked++
	case model.EngagementBounced:
		t.Stats.Bounced++
	default:
		return fmt.Errorf("unknown stat %q", stat)
	}
	return nil
}

func (m *memTemplateRepo) IncrementSent(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	t.Stats.Sent++
	return nil
}

func (m *memTemplateRepo) AppendSuggestion(id int, s model.AISuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	t.AISuggestions = append(t.AISuggestions, s)
	return nil
}

func (m *memTemplateRepo) ApplySuggestion(id int, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	t.Subject = subject
	t.Body = body
	t.Stats = model.TemplateStats{}
	return nil
}

func (m *memTemplateRepo) ClearSuggestions(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	t.AISuggestions = []model.AISuggestion{}
	return nil
}

var _ repository.TemplateRepositoryInterface = (*memTemplateRepo)(nil)

// In-memory activity log
type memActivityRepo struct {
	mu     sync.Mutex
	events []model.ActivityEvent
}

func (m *memActivityRepo) Append(e *model.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = len(m.events) + 1
	e.CreatedAt = time.Now()
	m.events = append(m.events, *e)
	return nil
}

func (m *memActivityRepo) ListByCandidate(candidateID int) ([]model.ActivityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ActivityEvent{}
	for _, e := range m.events {
		if e.CandidateID == candidateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memActivityRepo) countByType(candidateID int, typ model.ActivityType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.CandidateID == candidateID && e.Type == typ {
			n++
		}
	}
	return n
}

var _ repository.ActivityRepositoryInterface = (*memActivityRepo)(nil)

// In-memory blacklist with the same normalized matching as the SQL repo
type memBlacklistRepo struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]model.BlacklistEntry
}

func newMemBlacklistRepo() *memBlacklistRepo {
	return &memBlacklistRepo{nextID: 1, entries: map[int]model.BlacklistEntry{}}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *memBlacklistRepo) Add(e *model.BlacklistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.nextID
	m.nextID++
	m.entries[e.ID] = *e
	return nil
}

func (m *memBlacklistRepo) Match(name, phone, website string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if digitsOnly(phone) != "" && digitsOnly(e.Phone) == digitsOnly(phone) {
			return true, nil
		}
		if website != "" && strings.EqualFold(e.Website, website) {
			return true, nil
		}
		if strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBlacklistRepo) Remove(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memBlacklistRepo) ListEntries() ([]model.BlacklistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.BlacklistEntry{}
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

var _ repository.BlacklistRepositoryInterface = (*memBlacklistRepo)(nil)

// In-memory engagement dedup store
type memEngagementRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemEngagementRepo() *memEngagementRepo {
	return &memEngagementRepo{seen: map[string]bool{}}
}

func (m *memEngagementRepo) RecordOnce(e *model.EngagementEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := e.TrackingID + "|" + string(e.EventType)
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

var _ repository.EngagementRepositoryInterface = (*memEngagementRepo)(nil)

// Counting fakes for the pipeline collaborators

type fakeResolver struct {
	mu    sync.Mutex
	calls int
	email string
	err   error
}

func (f *fakeResolver) FindEmail(ctx context.Context, website string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.email, f.err
}

type recordingEmailSender struct {
	mu   sync.Mutex
	sent []transport.EmailMessage
	err  error
}

func (f *recordingEmailSender) SendEmail(ctx context.Context, msg transport.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	return nil
}

type recordingSMSSender struct {
	mu   sync.Mutex
	sent []transport.SMSMessage
	err  error
}

func (f *recordingSMSSender) SendSMS(ctx context.Context, msg transport.SMSMessage) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	return nil
}

// fakeLLM feeds canned completions to the real Generator, so parsing and
// fence stripping run in every pipeline test.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
