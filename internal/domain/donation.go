package domain

import "time"

// Donation represents a single contribution made by a user. Donations are
// append-only; CreatedAt is kept for audit and plays no part in aggregation.
type Donation struct {
	ID        string
	UserID    string
	Amount    Money
	CreatedAt time.Time
}
