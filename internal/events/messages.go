package events

import (
	"encoding/json"
	"time"
)

// UserRegistered is published when a new user signs up.
type UserRegistered struct {
	Type       string  `json:"type"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	ReferrerID *string `json:"referrer_id,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

// DonationRecorded is published when a donation is stored.
type DonationRecorded struct {
	Type       string  `json:"type"`
	DonationID string  `json:"donation_id"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Amount     float64 `json:"amount"`
	OccurredAt string  `json:"occurred_at"`
}

// NewUserRegistered builds a user.registered message.
func NewUserRegistered(userID, username string, referrerID *string) UserRegistered {
	return UserRegistered{
		Type:       "user.registered",
		UserID:     userID,
		Username:   username,
		ReferrerID: referrerID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewDonationRecorded builds a donation.recorded message.
func NewDonationRecorded(donationID, userID, username string, amount float64) DonationRecorded {
	return DonationRecorded{
		Type:       "donation.recorded",
		DonationID: donationID,
		UserID:     userID,
		Username:   username,
		Amount:     amount,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
