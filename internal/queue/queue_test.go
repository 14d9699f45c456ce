package queue_test

import (
	"sync"
	"testing"

	"github.com/unclebandit/donorpulse-backend/internal/queue"
)

func TestInMemoryQueueDelivers(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	var received []queue.OutreachJob

	err := q.Subscribe(queue.TopicOutreachSends, func(payload any) error {
		defer wg.Done()
		job, ok := payload.(queue.OutreachJob)
		if !ok {
			t.Error("expected OutreachJob payload")
			return nil
		}
		mu.Lock()
		received = append(received, job)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	job := queue.OutreachJob{LaunchID: "test", CampaignType: "retention", DonorID: 1001, Name: "Donor_0"}
	if err := q.Publish(queue.TopicOutreachSends, job); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(received))
	}
	if received[0].DonorID != 1001 {
		t.Errorf("expected donor 1001, got %d", received[0].DonorID)
	}
}

func TestInMemoryQueueNoSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue()
	if err := q.Publish("nowhere", 1); err == nil {
		t.Error("expected error publishing without subscribers")
	}
}
