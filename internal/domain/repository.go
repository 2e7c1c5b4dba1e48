package domain

import "context"

// UserRef is the id+username pair needed to expand a tree node's children.
type UserRef struct {
	ID       string
	Username string
}

// Store defines the persistence contract for users and donations.
// SumDonationsForUsers and DirectReferralIDs must each be a single batched
// query so a BFS level costs one round-trip, not one per user.
type Store interface {
	UserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, username string, referrerID *string) (*User, error)
	SumDonations(ctx context.Context, userID string) (Money, error)
	SumDonationsForUsers(ctx context.Context, userIDs []string) (Money, error)
	DirectReferralIDs(ctx context.Context, userIDs []string) ([]string, error)
	DirectReferrals(ctx context.Context, userID string) ([]UserRef, error)
	CreateDonation(ctx context.Context, userID string, amount Money) (*Donation, error)
	CountUsers(ctx context.Context) (int64, error)
}
