// internal/model/donation.go
package model

import "time"

// DonationEvent is a single simulated gift, joined to its donor's name.
type DonationEvent struct {
    Timestamp time.Time `json:"timestamp"`
    Amount    int       `json:"amount"`
    Campaign  string    `json:"campaign"`
    DonorID   int       `json:"donor_id"`
    Name      string    `json:"name"`
}
