// internal/controller/sourcing_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
	"github.com/unclebandit/brokerbridge-backend/internal/service"
)

type SourcingController struct {
	SourcingService *service.SourcingService
	Blacklist       repository.BlacklistRepositoryInterface
}

func (c *SourcingController) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	batch := c.SourcingService.NewBatch(body.Label)
	json.NewEncoder(w).Encode(batch)
}

func (c *SourcingController) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := c.SourcingService.GetBatch(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(batch)
}

func (c *SourcingController) AddSearchResults(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	var body struct {
		Query    string            `json:"query"`
		Location string            `json:"location"`
		Items    []model.BatchItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	added, excluded, err := c.SourcingService.AddSearchResults(batchID, body.Items, body.Query, body.Location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"batch_id": batchID,
		"added":    added,
		"excluded": excluded,
	})
}

func (c *SourcingController) ApproveItem(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	var body struct {
		Track string `json:"track"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	cand, err := c.SourcingService.Approve(batchID, itemID, body.Track)
	if err != nil {
		// Persistence failures must reach the operator: the item is still
		// in the batch and nothing was promoted.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(cand)
}

func (c *SourcingController) DismissItem(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	if err := c.SourcingService.Dismiss(batchID, itemID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"batch_id":  batchID,
		"item_id":   itemID,
		"dismissed": true,
	})
}

func (c *SourcingController) ApproveAll(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	var body struct {
		Track string `json:"track"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := c.SourcingService.ApproveAll(batchID, body.Track)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(result)
}

func (c *SourcingController) DismissAll(w http.ResponseWriter, r *http.Request) {
	result, err := c.SourcingService.DismissAll(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(result)
}

func (c *SourcingController) ListBlacklist(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Blacklist.ListEntries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"data": entries})
}

func (c *SourcingController) Revive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid blacklist entry id", http.StatusBadRequest)
		return
	}

	if err := c.SourcingService.Revive(id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"entry_id": id,
		"revived":  true,
	})
}
