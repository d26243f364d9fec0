package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// OutreachJob is the wire form of one queued trigger.
type OutreachJob struct {
	CandidateID int `json:"candidate_id"`
}

// AmqpQueue publishes jobs to RabbitMQ for the standalone worker binary.
// It is publish-only; consumption lives in cmd/worker.
type AmqpQueue struct {
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewAmqpQueue(url string) (*AmqpQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		TopicOutreachSends, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AmqpQueue{channel: ch, queue: q}, nil
}

func (q *AmqpQueue) Publish(topic string, payload any) error {
	candidateID, ok := payload.(int)
	if !ok {
		return fmt.Errorf("expected candidate ID payload, got %T", payload)
	}

	body, err := json.Marshal(OutreachJob{CandidateID: candidateID})
	if err != nil {
		return err
	}

	return q.channel.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe is not supported over AMQP in-process; the worker binary owns
// consumption.
func (q *AmqpQueue) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("amqp queue is publish-only, run cmd/worker to consume %s", topic)
}

var _ Queue = (*AmqpQueue)(nil)
