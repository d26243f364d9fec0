// internal/handler/webhook_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

// EngagementIngestor is the downstream webhook pipeline.
type EngagementIngestor interface {
	Ingest(trackingID string, eventType model.EngagementType, occurredAt time.Time) error
}

// EngagementWebhookHandler receives delivery-provider callbacks. It must
// acknowledge quickly and tolerate redelivery; dedup happens downstream.
type EngagementWebhookHandler struct {
	Ingestor EngagementIngestor
}

type engagementPayload struct {
	EventType  string    `json:"event_type"`
	TrackingID string    `json:"tracking_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func (h *EngagementWebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload engagementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if payload.TrackingID == "" {
		http.Error(w, "missing tracking_id", http.StatusBadRequest)
		return
	}
	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now()
	}

	err := h.Ingestor.Ingest(payload.TrackingID, model.EngagementType(payload.EventType), payload.Timestamp)
	if err != nil {
		// A 200 on a transient store error would lose the event. A non-2xx
		// makes the provider redeliver, and dedup makes redelivery safe.
		log.Println("⚠️ webhook ingest failed:", err)
		http.Error(w, "ingest failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
