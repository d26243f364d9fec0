// internal/model/sourcing.go
package model

import "time"

// BatchItem is a candidate preview that has not been persisted yet.
// It lives only inside an ephemeral SourcingBatch.
type BatchItem struct {
	ID      string `json:"id"` // uuid assigned when the item enters the batch
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Website string `json:"website"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// SearchLog is the audit trail of one sourcing search inside a batch.
type SearchLog struct {
	Query       string    `json:"query"`
	Location    string    `json:"location"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// SourcingBatch groups freshly sourced candidates until each is approved
// into the durable store or dismissed into the blacklist. It is never
// itself persisted.
type SourcingBatch struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Items     []BatchItem `json:"items"`
	Searches  []SearchLog `json:"searches"`
	CreatedAt time.Time   `json:"created_at"`
}
