package referral

import (
	"context"

	"givegraph/internal/domain"
)

// ComputeLevels walks the referral subtree of rootID breadth-first and
// returns one LevelSummary per generation, level 1 being the root's direct
// referrals. Each level costs two store round-trips: one for the next
// frontier, one batched donation sum over it. An empty frontier terminates
// the walk with no partial level emitted.
//
// The referrer relation is expected to be acyclic but is not enforced at
// write time, so the walk is capped at the store's total user count (an
// acyclic forest can never be deeper than that). Exceeding the cap returns
// ErrTraversalLimit instead of looping forever.
func (s *Service) ComputeLevels(ctx context.Context, rootID string) ([]domain.LevelSummary, error) {
	maxLevels, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	levels := []domain.LevelSummary{}
	frontier := []string{rootID}

	for level := 1; ; level++ {
		if int64(level) > maxLevels {
			return nil, domain.ErrTraversalLimit
		}

		next, err := s.store.DirectReferralIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			return levels, nil
		}

		total, err := s.store.SumDonationsForUsers(ctx, next)
		if err != nil {
			return nil, err
		}

		levels = append(levels, domain.LevelSummary{
			Level:        level,
			UserCount:    len(next),
			TotalDonated: total,
		})
		frontier = next
	}
}
