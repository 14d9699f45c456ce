// internal/model/donor.go
package model

import "time"

// Donor is the master record for one supporter. The donor set is the single
// source of truth for a render cycle; every other table is derived from it.
type Donor struct {
    ID             int       `json:"donor_id"`
    Name           string    `json:"name"`
    JoinDate       time.Time `json:"join_date"`
    TotalDonations int       `json:"total_donations"`
    TotalAmount    int       `json:"total_amount"`
    AvgDonation    float64   `json:"avg_donation"`
    Segment        string    `json:"segment,omitempty"`
}
