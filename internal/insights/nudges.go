// internal/insights/nudges.go
package insights

import (
    "math"
    "math/rand"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/model"
)

// NudgeChannels is the fixed set of outreach channels.
var NudgeChannels = []string{"Email", "Targeted Ad", "SMS"}

// Nudges samples count distinct donors and proposes a personalized ask: the
// donor's average donation plus a 25% upsell, rounded, over a uniformly
// chosen channel.
func Nudges(rng *rand.Rand, donors []model.Donor, count int) ([]model.Nudge, error) {
    if count <= 0 {
        return nil, appErrors.NewInvalidArgument("count", "must be a positive integer")
    }
    if count > len(donors) {
        return nil, appErrors.NewInvalidArgument("count", "exceeds donor population size")
    }

    nudges := make([]model.Nudge, 0, count)
    for _, idx := range rng.Perm(len(donors))[:count] {
        d := donors[idx]
        nudges = append(nudges, model.Nudge{
            DonorID:          d.ID,
            Name:             d.Name,
            AvgDonation:      d.AvgDonation,
            SuggestedAsk:     math.Round(d.AvgDonation * 1.25),
            SuggestedChannel: NudgeChannels[rng.Intn(len(NudgeChannels))],
        })
    }
    return nudges, nil
}
