// internal/controller/outreach_controller.go
package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/queue"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
	"github.com/unclebandit/brokerbridge-backend/internal/service"
)

type OutreachController struct {
	OutreachService *service.OutreachService
	Candidates      repository.CandidateRepositoryInterface
	Activity        repository.ActivityRepositoryInterface
	Queue           queue.Queue
}

// TriggerOutreach enqueues a pipeline run and responds immediately. The
// queue subscriber does the actual work; duplicate triggers are harmless
// because the pipeline entry point is idempotent.
func (c *OutreachController) TriggerOutreach(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	if err := c.Queue.Publish(queue.TopicOutreachSends, id); err != nil {
		http.Error(w, "failed to enqueue outreach", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidate_id": id,
		"status":       "queued",
	})
}

// Resend runs synchronously: the operator asked for it explicitly and
// wants the outcome in the response.
func (c *OutreachController) Resend(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	if err := c.OutreachService.Resend(context.Background(), id); err != nil {
		if appErrors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidate_id": id,
		"status":       "resent",
	})
}

func (c *OutreachController) GetCandidate(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	cand, err := c.Candidates.GetByID(id)
	if err != nil {
		if appErrors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(cand)
}

func (c *OutreachController) ListCandidates(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")
	channel := r.URL.Query().Get("channel")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	candidates, total, err := c.Candidates.ListCandidates(offset, pageSize, status, channel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": candidates,
		"pagination": map[string]int{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": totalPages,
		},
	})
}

func (c *OutreachController) GetCandidateActivity(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	events, err := c.Activity.ListByCandidate(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidate_id": id,
		"events":       events,
	})
}

func (c *OutreachController) GetFunnelStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.OutreachService.GetFunnelStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"outreach": stats,
	})
}
