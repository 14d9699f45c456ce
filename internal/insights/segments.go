// internal/insights/segments.go
package insights

import (
    "sort"
    "time"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/model"
)

// Segment labels. Every donor gets exactly one.
const (
    SegmentChampions = "Champions"
    SegmentEmerging  = "Emerging Supporters"
    SegmentOneTime   = "One-Time Givers"
    SegmentAtRisk    = "At-Risk Donors"
)

// SegmentFor classifies one donor. Rules are evaluated in order and the
// first match wins; the final rule is a catch-all, so the function is total.
func SegmentFor(d model.Donor, now time.Time) string {
    switch {
    case d.TotalAmount > 150 && d.TotalDonations > 10:
        return SegmentChampions
    case d.TotalAmount > 50 && d.JoinDate.After(now.AddDate(0, 0, -90)):
        return SegmentEmerging
    case d.TotalDonations == 1:
        return SegmentOneTime
    default:
        return SegmentAtRisk
    }
}

// Segments classifies the whole population, keyed by donor id.
func Segments(donors []model.Donor, now time.Time) (map[int]string, error) {
    labels := make(map[int]string, len(donors))
    for _, d := range donors {
        if d.TotalDonations < 1 {
            return nil, appErrors.NewInvalidArgument("donors", "donor has no recorded donations")
        }
        labels[d.ID] = SegmentFor(d, now)
    }
    return labels, nil
}

// SegmentCounts tallies the segment distribution, largest segment first.
// The counts always partition the donor set.
func SegmentCounts(donors []model.Donor, now time.Time) ([]model.SegmentCount, error) {
    labels, err := Segments(donors, now)
    if err != nil {
        return nil, err
    }

    tally := map[string]int{}
    for _, label := range labels {
        tally[label]++
    }

    counts := make([]model.SegmentCount, 0, len(tally))
    for segment, count := range tally {
        counts = append(counts, model.SegmentCount{Segment: segment, Count: count})
    }
    sort.Slice(counts, func(i, j int) bool {
        if counts[i].Count != counts[j].Count {
            return counts[i].Count > counts[j].Count
        }
        return counts[i].Segment < counts[j].Segment
    })
    return counts, nil
}
