package queue

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/unclebandit/donorpulse-backend/internal/logger"
)

// TopicOutreachSends carries queued retention and nudge outreach messages.
const TopicOutreachSends = "outreach_sends"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// OutreachJob is one queued outreach message for a single donor.
type OutreachJob struct {
	LaunchID     string  `json:"launch_id"`
	CampaignType string  `json:"campaign_type"` // retention or nudge
	DonorID      int     `json:"donor_id"`
	Name         string  `json:"name"`
	Channel      string  `json:"channel"`
	Body         string  `json:"body"`
	SuggestedAsk float64 `json:"suggested_ask,omitempty"`
}

// InMemoryQueue is an in-process queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
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
		logger.Log.Warnf("Job failed (attempt %d/%d): %+v, error: %v", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			logger.Log.Errorf("Job permanently failed after %d attempts: %+v", job.MaxRetries, job.Payload)
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

// StartOutreachSubscriber wires the mock delivery handler for outreach sends.
// Delivery is simulated; no real provider is contacted.
func StartOutreachSubscriber(q Queue) {
	err := q.Subscribe(TopicOutreachSends, func(payload any) error {
		job, ok := payload.(OutreachJob)
		if !ok {
			logger.Log.Warn("Invalid payload type, expected OutreachJob")
			return nil // no retry
		}

		if err := MockSend(job); err != nil {
			return err // triggers retry in queue
		}

		logger.Log.WithFields(map[string]any{
			"launch_id": job.LaunchID,
			"donor_id":  job.DonorID,
			"channel":   job.Channel,
		}).Infof("Delivered %s outreach to %s", job.CampaignType, job.Name)
		return nil
	})

	if err != nil {
		logger.Log.Error("Failed to start subscriber for outreach_sends: ", err)
	}
}

// MockSend simulates delivery with 90% success
func MockSend(job OutreachJob) error {
	if rand.Float64() < 0.9 {
		return nil // success
	}
	return fmt.Errorf("mock delivery failed for donor %d", job.DonorID)
}
