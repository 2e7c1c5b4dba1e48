// Package referral computes per-user aggregate views over the referral
// forest: a level-by-level breakdown of all descendants and the fully
// expanded descendant tree with per-node donation totals.
package referral

import (
	"context"
	"fmt"

	"givegraph/internal/domain"
)

// Service assembles user summaries from a Store.
type Service struct {
	store domain.Store
}

// NewService creates a summary service backed by the given store.
func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// BuildSummary resolves the username and assembles the full summary: own
// donation total, BFS level breakdown, descendant tree, and aggregate
// descendant totals. Any store failure aborts the whole summary; partial
// results are never returned.
func (s *Service) BuildSummary(ctx context.Context, username string) (*domain.UserSummary, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve user %q: %w", username, err)
	}

	ownTotal, err := s.store.SumDonations(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("sum own donations: %w", err)
	}

	levels, err := s.ComputeLevels(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("compute levels: %w", err)
	}

	tree, err := s.BuildTree(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}

	summary := &domain.UserSummary{
		ReferralLink:     username,
		UserTotalDonated: ownTotal,
		Levels:           levels,
		Tree:             *tree,
	}
	for _, lv := range levels {
		summary.TotalDescendants += lv.UserCount
		summary.DescendantsTotalDonated.Cents += lv.TotalDonated.Cents
	}
	return summary, nil
}
