// internal/model/insight.go
package model

import "time"

// SegmentCount is one row of the segment distribution table.
type SegmentCount struct {
    Segment string `json:"segment"`
    Count   int    `json:"count"`
}

// ChurnRisk is one row of the churn-prevention table.
type ChurnRisk struct {
    DonorID         int       `json:"donor_id"`
    Name            string    `json:"name"`
    JoinDate        time.Time `json:"join_date"`
    TotalDonations  int       `json:"total_donations"`
    ChurnRiskScore  float64   `json:"churn_risk_score"`
    SuggestedAction string    `json:"suggested_action"`
}

// Nudge is one row of the donation-nudging table.
type Nudge struct {
    DonorID          int     `json:"donor_id"`
    Name             string  `json:"name"`
    AvgDonation      float64 `json:"avg_donation"`
    SuggestedAsk     float64 `json:"suggested_ask"`
    SuggestedChannel string  `json:"suggested_channel"`
}

// CampaignTotal is one row of the campaign performance table.
type CampaignTotal struct {
    Campaign string `json:"campaign"`
    Total    int    `json:"total"`
}

// Metrics holds the headline KPI scalars for one render cycle.
type Metrics struct {
    TotalRaised   int `json:"total_raised"`
    DonationCount int `json:"donation_count"`
    DonorsReached int `json:"donors_reached"`
}
