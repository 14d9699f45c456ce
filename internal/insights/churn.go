// internal/insights/churn.go
package insights

import (
    "math"
    "math/rand"
    "sort"
    "time"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/model"
)

const churnSuggestedAction = "Personal Call"

// ChurnRisks ranks donors likely to lapse: anyone who joined more than 180
// days ago, fewest donations first (stable, so generation order breaks
// ties), capped at topN. Fewer than topN qualifying donors is a valid
// partial result. Each selected donor gets a synthetic risk score in
// [0.70, 0.95] rounded to two decimals.
func ChurnRisks(rng *rand.Rand, now time.Time, donors []model.Donor, topN int) ([]model.ChurnRisk, error) {
    if topN <= 0 {
        return nil, appErrors.NewInvalidArgument("topN", "must be a positive integer")
    }

    cutoff := now.AddDate(0, 0, -180)
    candidates := make([]model.Donor, 0)
    for _, d := range donors {
        if d.JoinDate.Before(cutoff) {
            candidates = append(candidates, d)
        }
    }

    sort.SliceStable(candidates, func(i, j int) bool {
        return candidates[i].TotalDonations < candidates[j].TotalDonations
    })

    if len(candidates) > topN {
        candidates = candidates[:topN]
    }

    risks := make([]model.ChurnRisk, 0, len(candidates))
    for _, d := range candidates {
        score := 0.70 + rng.Float64()*0.25
        risks = append(risks, model.ChurnRisk{
            DonorID:         d.ID,
            Name:            d.Name,
            JoinDate:        d.JoinDate,
            TotalDonations:  d.TotalDonations,
            ChurnRiskScore:  math.Round(score*100) / 100,
            SuggestedAction: churnSuggestedAction,
        })
    }
    return risks, nil
}
