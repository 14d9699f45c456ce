package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
	"github.com/unclebandit/donorpulse-backend/internal/generator"
	"github.com/unclebandit/donorpulse-backend/internal/model"
	"github.com/unclebandit/donorpulse-backend/internal/queue"
	"github.com/unclebandit/donorpulse-backend/internal/service"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

// CaptureQueue records published payloads instead of delivering them
type CaptureQueue struct {
	Topics   []string
	Payloads []any
}

func (q *CaptureQueue) Publish(topic string, payload any) error {
	q.Topics = append(q.Topics, topic)
	q.Payloads = append(q.Payloads, payload)
	return nil
}

func (q *CaptureQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}

func newTestService(t *testing.T, q queue.Queue) *service.DashboardService {
	t.Helper()
	campaigns, err := generator.DefaultCampaignDistribution()
	require.NoError(t, err)
	return &service.DashboardService{
		DonorCount:    50,
		DonationCount: 30,
		ChurnTopN:     5,
		NudgeCount:    5,
		Campaigns:     campaigns,
		Queue:         q,
	}
}

func seedPtr(v int64) *int64 { return &v }

func TestRenderCycleShape(t *testing.T) {
	svc := newTestService(t, nil)
	snapshot, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)

	assert.Len(t, snapshot.Donors, 50)
	assert.Len(t, snapshot.Donations, 30)
	assert.Len(t, snapshot.Nudges, 5)
	assert.LessOrEqual(t, len(snapshot.ChurnRisks), 5)
	assert.Equal(t, testNow, snapshot.GeneratedAt)

	for _, d := range snapshot.Donors {
		assert.NotEmpty(t, d.Segment, "every donor carries its segment label")
	}

	sum := 0
	for _, c := range snapshot.SegmentCounts {
		sum += c.Count
	}
	assert.Equal(t, 50, sum)
}

func TestRenderCycleDeterministic(t *testing.T) {
	svc := newTestService(t, nil)

	a, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)
	b, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed and clock must reproduce the snapshot")

	c, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(1337), Now: testNow})
	require.NoError(t, err)
	assert.NotEqual(t, a.Donors, c.Donors, "different seeds should produce different populations")
}

func TestRenderCycleAggregates(t *testing.T) {
	svc := newTestService(t, nil)
	snapshot, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, 30, snapshot.Metrics.DonationCount)

	totalByCampaign := 0
	for i, ct := range snapshot.CampaignTotals {
		totalByCampaign += ct.Total
		if i > 0 {
			assert.GreaterOrEqual(t, snapshot.CampaignTotals[i-1].Total, ct.Total, "campaign totals sorted descending")
		}
	}
	assert.Equal(t, snapshot.Metrics.TotalRaised, totalByCampaign, "campaign totals must account for every gift")

	distinct := map[int]bool{}
	for _, e := range snapshot.Donations {
		distinct[e.DonorID] = true
	}
	assert.Equal(t, len(distinct), snapshot.Metrics.DonorsReached)
}

func TestRenderCycleReferentialIntegrity(t *testing.T) {
	svc := newTestService(t, nil)
	snapshot, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)

	// must be structurally unreachable with the real generator
	assert.NoError(t, service.VerifyIntegrity(snapshot.Donors, snapshot.Donations))
}

func TestVerifyIntegrityViolation(t *testing.T) {
	donors := []model.Donor{{ID: 1001, Name: "Donor_0", TotalDonations: 1, TotalAmount: 10}}
	donations := []model.DonationEvent{{DonorID: 9999, Amount: 20, Campaign: "Summer Appeal"}}

	err := service.VerifyIntegrity(donors, donations)
	require.Error(t, err)
	assert.True(t, appErrors.IsDataIntegrityViolation(err))
}

func TestRenderCycleInvalidCounts(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.RenderCycle(service.CycleOptions{Seed: seedPtr(1), Now: testNow, DonorCount: -1})
	assert.True(t, appErrors.IsInvalidArgument(err))

	_, err = svc.RenderCycle(service.CycleOptions{Seed: seedPtr(1), Now: testNow, NudgeCount: 500})
	assert.True(t, appErrors.IsInvalidArgument(err), "nudge count above population must surface InvalidArgument")
}

func TestLaunchRetentionCampaign(t *testing.T) {
	q := &CaptureQueue{}
	svc := newTestService(t, q)

	result, err := svc.LaunchOutreachCampaign(service.CampaignTypeRetention, service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)

	assert.NotEmpty(t, result.LaunchID)
	assert.Equal(t, service.CampaignTypeRetention, result.CampaignType)
	assert.Equal(t, "queued", result.Status)
	assert.Equal(t, len(q.Payloads), result.MessagesQueued)
	assert.LessOrEqual(t, result.MessagesQueued, 5)

	for i, topic := range q.Topics {
		assert.Equal(t, queue.TopicOutreachSends, topic)
		job, ok := q.Payloads[i].(queue.OutreachJob)
		require.True(t, ok)
		assert.Equal(t, result.LaunchID, job.LaunchID)
		assert.Equal(t, "Phone", job.Channel)
		assert.Contains(t, job.Body, job.Name)
	}
}

func TestLaunchNudgeCampaign(t *testing.T) {
	q := &CaptureQueue{}
	svc := newTestService(t, q)

	result, err := svc.LaunchOutreachCampaign(service.CampaignTypeNudge, service.CycleOptions{Seed: seedPtr(42), Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, 5, result.MessagesQueued, "one send per nudge candidate")
	for _, payload := range q.Payloads {
		job, ok := payload.(queue.OutreachJob)
		require.True(t, ok)
		assert.GreaterOrEqual(t, job.SuggestedAsk, 0.0)
		assert.Contains(t, job.Body, job.Name)
	}
}

func TestLaunchUnknownCampaignType(t *testing.T) {
	svc := newTestService(t, &CaptureQueue{})
	_, err := svc.LaunchOutreachCampaign("carrier-pigeon", service.CycleOptions{Seed: seedPtr(1), Now: testNow})
	require.Error(t, err)
	assert.True(t, appErrors.IsInvalidArgument(err))
}
