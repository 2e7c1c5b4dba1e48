package domain

import "time"

// User represents a registered member of the referral network.
// ReferrerID points at the user who invited them; it is nil for users who
// signed up without a referral, so the relation forms a forest.
type User struct {
	ID         string
	Username   string
	ReferrerID *string
	CreatedAt  time.Time
}
