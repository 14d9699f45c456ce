// internal/generator/donors.go
package generator

import (
    "fmt"
    "math"
    "math/rand"
    "time"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/model"
)

// DonorIDBase is the first donor id assigned; ids are contiguous from here.
const DonorIDBase = 1001

// Log-normal shape parameters for lifetime totals. Most donors give small
// amounts, a handful give a lot.
const (
    totalAmountMu    = 4.0
    totalAmountSigma = 1.5
)

// Donors fabricates a master population of count donors. Join dates fall
// uniformly between 730 and 30 days before now, donation counts in [1,50),
// and lifetime totals follow a truncated log-normal draw. AvgDonation is
// always defined because TotalDonations is at least 1.
func Donors(rng *rand.Rand, now time.Time, count int) ([]model.Donor, error) {
    if count <= 0 {
        return nil, appErrors.NewInvalidArgument("count", "must be a positive integer")
    }

    donors := make([]model.Donor, 0, count)
    for i := 0; i < count; i++ {
        d := model.Donor{
            ID:             DonorIDBase + i,
            Name:           fmt.Sprintf("Donor_%d", i),
            JoinDate:       now.AddDate(0, 0, -(rng.Intn(700) + 30)),
            TotalDonations: rng.Intn(49) + 1,
            TotalAmount:    int(math.Exp(totalAmountMu + totalAmountSigma*rng.NormFloat64())),
        }
        d.AvgDonation = float64(d.TotalAmount) / float64(d.TotalDonations)
        donors = append(donors, d)
    }
    return donors, nil
}
