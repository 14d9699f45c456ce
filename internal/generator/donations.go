// internal/generator/donations.go
package generator

import (
    "math"
    "math/rand"
    "time"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/model"
)

// Log-normal shape for individual gifts, plus a fixed floor so no simulated
// gift lands below a realistic minimum.
const (
    giftMu    = 3.0
    giftSigma = 1.0
    giftFloor = 5
)

const weightTolerance = 1e-9

// CampaignWeight pairs a campaign name with its sampling probability.
type CampaignWeight struct {
    Name   string
    Weight float64
}

// CampaignDistribution is a validated categorical distribution over campaign
// names. Construction fails if the weights do not sum to 1.0.
type CampaignDistribution struct {
    weights []CampaignWeight
}

// NewCampaignDistribution validates the weight vector at construction time.
// A malformed distribution is rejected here rather than propagated silently.
func NewCampaignDistribution(weights []CampaignWeight) (*CampaignDistribution, error) {
    if len(weights) == 0 {
        return nil, appErrors.NewInvalidArgument("weights", "must not be empty")
    }
    sum := 0.0
    for _, w := range weights {
        if w.Weight < 0 {
            return nil, appErrors.NewInvalidArgument("weights", "weight for "+w.Name+" is negative")
        }
        sum += w.Weight
    }
    if math.Abs(sum-1.0) > weightTolerance {
        return nil, appErrors.NewInvalidArgument("weights", "must sum to 1.0")
    }
    return &CampaignDistribution{weights: weights}, nil
}

// DefaultCampaignDistribution returns the three demo campaigns with their
// declared weights.
func DefaultCampaignDistribution() (*CampaignDistribution, error) {
    return NewCampaignDistribution([]CampaignWeight{
        {Name: "Summer Appeal", Weight: 0.5},
        {Name: "Holiday Drive", Weight: 0.3},
        {Name: "Emergency Fund", Weight: 0.2},
    })
}

// Sample draws one campaign name.
func (d *CampaignDistribution) Sample(rng *rand.Rand) string {
    r := rng.Float64()
    cum := 0.0
    for _, w := range d.weights {
        cum += w.Weight
        if r < cum {
            return w.Name
        }
    }
    // r landed in the tolerance gap at the top of the range
    return d.weights[len(d.weights)-1].Name
}

// Names lists the campaign names in declaration order.
func (d *CampaignDistribution) Names() []string {
    names := make([]string, 0, len(d.weights))
    for _, w := range d.weights {
        names = append(names, w.Name)
    }
    return names
}

// Donations simulates count gift events over an existing donor population.
// Donor ids are sampled with replacement, so referential integrity holds by
// construction. Timestamps are hourly and strictly increasing, starting at
// midnight of now.
func Donations(rng *rand.Rand, now time.Time, donors []model.Donor, count int, dist *CampaignDistribution) ([]model.DonationEvent, error) {
    if len(donors) == 0 {
        return nil, appErrors.NewInvalidArgument("donors", "must not be empty")
    }
    if count <= 0 {
        return nil, appErrors.NewInvalidArgument("count", "must be a positive integer")
    }
    if dist == nil {
        return nil, appErrors.NewInvalidArgument("dist", "campaign distribution is required")
    }

    start := now.Truncate(24 * time.Hour)
    events := make([]model.DonationEvent, 0, count)
    for i := 0; i < count; i++ {
        donor := donors[rng.Intn(len(donors))]
        events = append(events, model.DonationEvent{
            Timestamp: start.Add(time.Duration(i) * time.Hour),
            Amount:    int(math.Exp(giftMu+giftSigma*rng.NormFloat64())) + giftFloor,
            Campaign:  dist.Sample(rng),
            DonorID:   donor.ID,
            Name:      donor.Name,
        })
    }
    return events, nil
}
