// Package cache holds the TTL cache for assembled user summaries. Summaries
// are expensive (one pair of queries per referral level plus the tree walk),
// while signups and donations are comparatively rare, so the whole cache is
// flushed on every write instead of chasing ancestors through the graph.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"givegraph/internal/domain"
)

// SummaryCache caches assembled summaries keyed by username.
type SummaryCache struct {
	c *gocache.Cache
}

// NewSummaryCache creates a cache whose entries expire after ttl.
func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{c: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached summary for username, if present and fresh.
func (s *SummaryCache) Get(username string) (*domain.UserSummary, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.c.Get(username)
	if !ok {
		return nil, false
	}
	summary, ok := v.(*domain.UserSummary)
	return summary, ok
}

// Set stores a summary under username.
func (s *SummaryCache) Set(username string, summary *domain.UserSummary) {
	if s == nil {
		return
	}
	s.c.SetDefault(username, summary)
}

// Flush drops every cached summary. Called after any write, since a donation
// or signup changes the summary of every ancestor of the affected user.
func (s *SummaryCache) Flush() {
	if s == nil {
		return
	}
	s.c.Flush()
}
