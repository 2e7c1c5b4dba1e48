package referral

import (
	"context"

	"golang.org/x/sync/errgroup"

	"givegraph/internal/domain"
)

// BuildTree expands the full referral tree rooted at the given user. Each
// node carries the user's own donation total. Sibling subtrees are expanded
// concurrently (the store reads are independent) and joined before the parent
// node is assembled, so a returned node is always complete.
//
// A repeated id on the active root-to-node path means the referral data holds
// a cycle; the whole call fails with ErrCycleDetected rather than producing a
// truncated tree.
func (s *Service) BuildTree(ctx context.Context, userID, username string) (*domain.TreeNode, error) {
	return s.buildNode(ctx, userID, username, map[string]bool{})
}

func (s *Service) buildNode(ctx context.Context, userID, username string, path map[string]bool) (*domain.TreeNode, error) {
	if path[userID] {
		return nil, domain.ErrCycleDetected
	}

	total, err := s.store.SumDonations(ctx, userID)
	if err != nil {
		return nil, err
	}

	refs, err := s.store.DirectReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	node := &domain.TreeNode{Username: username, TotalDonated: total}
	if len(refs) == 0 {
		return node, nil
	}

	// Each branch carries its own copy of the path so sibling goroutines
	// never share mutable state.
	branch := make(map[string]bool, len(path)+1)
	for id := range path {
		branch[id] = true
	}
	branch[userID] = true

	children := make([]domain.TreeNode, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			child, err := s.buildNode(gctx, ref.ID, ref.Username, branch)
			if err != nil {
				return err
			}
			children[i] = *child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	node.Children = children
	return node, nil
}
