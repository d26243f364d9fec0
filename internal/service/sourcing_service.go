// internal/service/sourcing_service.go
package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
)

// SourcingService manages ephemeral batches of freshly sourced candidates.
// Batches live only in memory; an item leaves its batch by being approved
// into the durable store or dismissed into the blacklist.
type SourcingService struct {
	Candidates repository.CandidateRepositoryInterface
	Blacklist  repository.BlacklistRepositoryInterface
	Activity   repository.ActivityRepositoryInterface

	mu      sync.Mutex
	batches map[string]*model.SourcingBatch
}

func NewSourcingService(
	candidates repository.CandidateRepositoryInterface,
	blacklist repository.BlacklistRepositoryInterface,
	activity repository.ActivityRepositoryInterface,
) *SourcingService {
	return &SourcingService{
		Candidates: candidates,
		Blacklist:  blacklist,
		Activity:   activity,
		batches:    make(map[string]*model.SourcingBatch),
	}
}

func (s *SourcingService) NewBatch(label string) *model.SourcingBatch {
	batch := &model.SourcingBatch{
		ID:        uuid.NewString(),
		Label:     label,
		Items:     []model.BatchItem{},
		Searches:  []model.SearchLog{},
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.batches[batch.ID] = batch
	s.mu.Unlock()

	return batch
}

func (s *SourcingService) GetBatch(batchID string) (*model.SourcingBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[batchID]
	if !ok {
		return nil, fmt.Errorf("batch %s not found", batchID)
	}
	return batch, nil
}

// DiscardBatch drops an ephemeral batch without persisting anything.
func (s *SourcingService) DiscardBatch(batchID string) {
	s.mu.Lock()
	delete(s.batches, batchID)
	s.mu.Unlock()
}

// AddSearchResults appends sourced items and one search-log entry.
// Blacklisted entities are filtered out before they ever enter the batch.
func (s *SourcingService) AddSearchResults(batchID string, items []model.BatchItem, query, location string) (added, excluded int, err error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return 0, 0, err
	}

	kept := []model.BatchItem{}
	for _, item := range items {
		blocked, err := s.Blacklist.Match(item.Name, item.Phone, item.Website)
		if err != nil {
			log.Println("⚠️ blacklist lookup failed:", err)
			blocked = false
		}
		if blocked {
			excluded++
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		kept = append(kept, item)
	}

	s.mu.Lock()
	batch.Items = append(batch.Items, kept...)
	batch.Searches = append(batch.Searches, model.SearchLog{
		Query:       query,
		Location:    location,
		ResultCount: len(items),
		Timestamp:   time.Now(),
	})
	s.mu.Unlock()

	return len(kept), excluded, nil
}

// Approve persists one item into the durable candidate store tagged with
// an onboarding track, then removes it from the batch. On persistence
// failure the item stays in the batch and the error reaches the caller.
func (s *SourcingService) Approve(batchID, itemID, track string) (*model.CandidateRecord, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	item, err := s.findItem(batch, itemID)
	if err != nil {
		return nil, err
	}

	cand := &model.CandidateRecord{
		Kind:            item.Kind,
		Name:            item.Name,
		Address:         item.Address,
		Website:         item.Website,
		Phone:           item.Phone,
		Email:           item.Email,
		Track:           track,
		Status:          model.StatusQualified,
		OutreachStatus:  model.OutreachPending,
		OutreachChannel: model.ChannelNone,
	}
	if item.Email != "" {
		cand.EmailSource = model.EmailSourceProvided
	}
	if track == "priority" {
		cand.HasActiveDeal = true
	}

	if err := s.Candidates.Create(cand); err != nil {
		return nil, err
	}

	s.removeItem(batch, itemID)

	err = s.Activity.Append(&model.ActivityEvent{
		CandidateID: cand.ID,
		Type:        model.ActivityCandidateApproved,
		Description: fmt.Sprintf("approved from batch %s on track %s", batchID, track),
		Metadata:    map[string]string{"batch_id": batchID, "track": track},
	})
	if err != nil {
		log.Println("⚠️ failed to append approval event:", err)
	}

	return cand, nil
}

// Dismiss writes a blacklist entry keyed on name, phone and website, then
// removes the item from the batch.
func (s *SourcingService) Dismiss(batchID, itemID string) error {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return err
	}

	item, err := s.findItem(batch, itemID)
	if err != nil {
		return err
	}

	entry := &model.BlacklistEntry{
		Name:    item.Name,
		Phone:   item.Phone,
		Website: item.Website,
		Reason:  "dismissed during sourcing review",
	}
	if err := s.Blacklist.Add(entry); err != nil {
		return err
	}

	s.removeItem(batch, itemID)
	return nil
}

// BatchOpResult reports a bulk operation item by item.
type BatchOpResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

// ApproveAll processes every item independently: one failure never stops
// the siblings, and each failure is logged on its own.
func (s *SourcingService) ApproveAll(batchID, track string) (*BatchOpResult, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	result := &BatchOpResult{Succeeded: []string{}, Failed: map[string]string{}}
	for _, itemID := range s.itemIDs(batch) {
		if _, err := s.Approve(batchID, itemID, track); err != nil {
			log.Printf("⚠️ approve failed for item %s: %v", itemID, err)
			result.Failed[itemID] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, itemID)
	}
	return result, nil
}

// DismissAll blacklists every remaining item independently.
func (s *SourcingService) DismissAll(batchID string) (*BatchOpResult, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	result := &BatchOpResult{Succeeded: []string{}, Failed: map[string]string{}}
	for _, itemID := range s.itemIDs(batch) {
		if err := s.Dismiss(batchID, itemID); err != nil {
			log.Printf("⚠️ dismiss failed for item %s: %v", itemID, err)
			result.Failed[itemID] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, itemID)
	}
	return result, nil
}

// Revive deletes a blacklist entry so the entity can be sourced again.
func (s *SourcingService) Revive(entryID int) error {
	return s.Blacklist.Remove(entryID)
}

func (s *SourcingService) itemIDs(batch *model.SourcingBatch) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(batch.Items))
	for i, item := range batch.Items {
		ids[i] = item.ID
	}
	return ids
}

func (s *SourcingService) findItem(batch *model.SourcingBatch, itemID string) (model.BatchItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range batch.Items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return model.BatchItem{}, fmt.Errorf("item %s not found in batch %s", itemID, batch.ID)
}

func (s *SourcingService) removeItem(batch *model.SourcingBatch, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range batch.Items {
		if item.ID == itemID {
			batch.Items = append(batch.Items[:i], batch.Items[i+1:]...)
			return
		}
	}
}
