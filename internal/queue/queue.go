package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const TopicOutreachSends = "outreach_sends"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used by the server
// binary; the standalone worker consumes the same topic over AMQP.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// OutreachTrigger is the piece of the outreach service the subscriber needs.
type OutreachTrigger interface {
	TriggerOutreach(ctx context.Context, candidateID int) error
}

// StartOutreachSubscriber consumes queued outreach jobs. Each job gets its
// own bounded context so a hung enrichment or model call never blocks
// other candidates. Terminal pipeline failures are acked, not retried:
// the candidate already carries a failed status for manual follow-up.
func StartOutreachSubscriber(q Queue, outreach OutreachTrigger) {
	go func() {
		err := q.Subscribe(TopicOutreachSends, func(payload any) error {
			candidateID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil
			}

			log.Println("📩 Processing queued outreach for candidate:", candidateID)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if err := outreach.TriggerOutreach(ctx, candidateID); err != nil {
				// Generation, delivery and no-channel failures are terminal;
				// a queue retry would just duplicate the failure.
				log.Println("⚠️ Outreach attempt finished with failure:", err)
				return nil
			}

			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for outreach_sends:", err)
		}
	}()
}
