package domain

// LevelSummary aggregates one generation of a user's referral subtree.
// Level 1 holds the root's direct referrals.
type LevelSummary struct {
	Level        int
	UserCount    int
	TotalDonated Money
}

// TreeNode is one user in the expanded referral tree with their own donation
// total. Child ordering carries no meaning.
type TreeNode struct {
	Username     string
	TotalDonated Money
	Children     []TreeNode
}

// UserSummary is the aggregate view returned for one root user: their own
// total plus the level breakdown and full descendant tree.
type UserSummary struct {
	ReferralLink            string
	UserTotalDonated        Money
	DescendantsTotalDonated Money
	TotalDescendants        int
	Levels                  []LevelSummary
	Tree                    TreeNode
}
