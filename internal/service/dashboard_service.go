// internal/service/dashboard_service.go
package service

import (
    "math/rand"
    "sort"
    "time"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/generator"
    "github.com/unclebandit/donorpulse-backend/internal/insights"
    "github.com/unclebandit/donorpulse-backend/internal/model"
    "github.com/unclebandit/donorpulse-backend/internal/queue"
)

// DashboardService produces full analytics snapshots. Each render cycle is
// an independent, stateless computation: nothing is shared or persisted
// between cycles, every cycle regenerates the dataset from fresh draws.
type DashboardService struct {
    DonorCount    int
    DonationCount int
    ChurnTopN     int
    NudgeCount    int
    Seed          *int64
    Campaigns     *generator.CampaignDistribution
    Queue         queue.Queue
}

// CycleOptions override the service defaults for one render cycle.
// Zero-valued fields fall back to the configured defaults.
type CycleOptions struct {
    Seed          *int64
    Now           time.Time
    DonorCount    int
    DonationCount int
    ChurnTopN     int
    NudgeCount    int
}

// Snapshot is the complete output of one render cycle: all six tables plus
// the KPI scalars.
type Snapshot struct {
    GeneratedAt    time.Time             `json:"generated_at"`
    Donors         []model.Donor         `json:"donors"`
    Donations      []model.DonationEvent `json:"donations"`
    SegmentCounts  []model.SegmentCount  `json:"segment_counts"`
    ChurnRisks     []model.ChurnRisk     `json:"churn_risks"`
    Nudges         []model.Nudge         `json:"nudges"`
    CampaignTotals []model.CampaignTotal `json:"campaign_totals"`
    Metrics        model.Metrics         `json:"metrics"`
}

func (s *DashboardService) resolve(opts CycleOptions) CycleOptions {
    if opts.Seed == nil {
        opts.Seed = s.Seed
    }
    if opts.Now.IsZero() {
        opts.Now = time.Now()
    }
    if opts.DonorCount == 0 {
        opts.DonorCount = s.DonorCount
    }
    if opts.DonationCount == 0 {
        opts.DonationCount = s.DonationCount
    }
    if opts.ChurnTopN == 0 {
        opts.ChurnTopN = s.ChurnTopN
    }
    if opts.NudgeCount == 0 {
        opts.NudgeCount = s.NudgeCount
    }
    return opts
}

func rngFor(seed *int64) *rand.Rand {
    if seed != nil {
        return rand.New(rand.NewSource(*seed))
    }
    return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RenderCycle runs one full generation pass: donors, donations, segments,
// churn risks, nudges, aggregates. A fixed seed makes the whole snapshot
// reproducible because every draw comes from the one injected source in a
// fixed order.
func (s *DashboardService) RenderCycle(opts CycleOptions) (*Snapshot, error) {
    opts = s.resolve(opts)
    rng := rngFor(opts.Seed)

    donors, err := generator.Donors(rng, opts.Now, opts.DonorCount)
    if err != nil {
        return nil, err
    }

    donations, err := generator.Donations(rng, opts.Now, donors, opts.DonationCount, s.Campaigns)
    if err != nil {
        return nil, err
    }

    if err := VerifyIntegrity(donors, donations); err != nil {
        return nil, err
    }

    for i := range donors {
        donors[i].Segment = insights.SegmentFor(donors[i], opts.Now)
    }

    segmentCounts, err := insights.SegmentCounts(donors, opts.Now)
    if err != nil {
        return nil, err
    }

    churnRisks, err := insights.ChurnRisks(rng, opts.Now, donors, opts.ChurnTopN)
    if err != nil {
        return nil, err
    }

    nudges, err := insights.Nudges(rng, donors, opts.NudgeCount)
    if err != nil {
        return nil, err
    }

    return &Snapshot{
        GeneratedAt:    opts.Now,
        Donors:         donors,
        Donations:      donations,
        SegmentCounts:  segmentCounts,
        ChurnRisks:     churnRisks,
        Nudges:         nudges,
        CampaignTotals: CampaignTotals(donations),
        Metrics:        ComputeMetrics(donations),
    }, nil
}

// VerifyIntegrity checks that every donation references an existing donor.
// The generator samples ids from the donor set, so a violation here means a
// bug, surfaced as a DataIntegrityViolation rather than swallowed.
func VerifyIntegrity(donors []model.Donor, donations []model.DonationEvent) error {
    ids := make(map[int]bool, len(donors))
    for _, d := range donors {
        ids[d.ID] = true
    }
    for _, e := range donations {
        if !ids[e.DonorID] {
            return appErrors.NewDataIntegrityViolation(e.DonorID)
        }
    }
    return nil
}

// CampaignTotals sums donation amounts per campaign, largest first.
func CampaignTotals(donations []model.DonationEvent) []model.CampaignTotal {
    sums := map[string]int{}
    for _, e := range donations {
        sums[e.Campaign] += e.Amount
    }

    totals := make([]model.CampaignTotal, 0, len(sums))
    for campaign, total := range sums {
        totals = append(totals, model.CampaignTotal{Campaign: campaign, Total: total})
    }
    sort.Slice(totals, func(i, j int) bool {
        if totals[i].Total != totals[j].Total {
            return totals[i].Total > totals[j].Total
        }
        return totals[i].Campaign < totals[j].Campaign
    })
    return totals
}

// ComputeMetrics derives the KPI scalars from the donation stream.
func ComputeMetrics(donations []model.DonationEvent) model.Metrics {
    reached := map[int]bool{}
    m := model.Metrics{DonationCount: len(donations)}
    for _, e := range donations {
        m.TotalRaised += e.Amount
        reached[e.DonorID] = true
    }
    m.DonorsReached = len(reached)
    return m
}
