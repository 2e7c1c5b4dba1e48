package handlers

import (
	"context"
	"strconv"
	"sync"

	"givegraph/internal/domain"
)

// stubStore is a minimal in-memory domain.Store for handler tests.
type stubStore struct {
	mu        sync.RWMutex
	seq       int
	users     map[string]*domain.User
	byName    map[string]string
	donations map[string][]int64

	// forceDuplicate makes the next CreateUser report a username collision,
	// simulating a lost race between lookup and insert.
	forceDuplicate bool
}

func newStubStore() *stubStore {
	return &stubStore{
		users:     make(map[string]*domain.User),
		byName:    make(map[string]string),
		donations: make(map[string][]int64),
	}
}

func (s *stubStore) addUser(username string, referrerID *string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := "u" + strconv.Itoa(s.seq)
	u := &domain.User{ID: id, Username: username, ReferrerID: referrerID}
	s.users[id] = u
	s.byName[username] = id
	return u
}

func (s *stubStore) donationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, list := range s.donations {
		n += len(list)
	}
	return n
}

func (s *stubStore) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *stubStore) CreateUser(ctx context.Context, username string, referrerID *string) (*domain.User, error) {
	s.mu.Lock()
	if s.forceDuplicate {
		s.forceDuplicate = false
		s.mu.Unlock()
		s.addUser(username, referrerID)
		return nil, domain.ErrDuplicateUsername
	}
	if _, exists := s.byName[username]; exists {
		s.mu.Unlock()
		return nil, domain.ErrDuplicateUsername
	}
	s.mu.Unlock()
	u := *s.addUser(username, referrerID)
	return &u, nil
}

func (s *stubStore) SumDonations(ctx context.Context, userID string) (domain.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, c := range s.donations[userID] {
		total += c
	}
	return domain.Money{Cents: total}, nil
}

func (s *stubStore) SumDonationsForUsers(ctx context.Context, userIDs []string) (domain.Money, error) {
	var total int64
	for _, id := range userIDs {
		m, _ := s.SumDonations(ctx, id)
		total += m.Cents
	}
	return domain.Money{Cents: total}, nil
}

func (s *stubStore) DirectReferralIDs(ctx context.Context, userIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		in[id] = true
	}
	var out []string
	for id, u := range s.users {
		if u.ReferrerID != nil && in[*u.ReferrerID] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *stubStore) DirectReferrals(ctx context.Context, userID string) ([]domain.UserRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var refs []domain.UserRef
	for id, u := range s.users {
		if u.ReferrerID != nil && *u.ReferrerID == userID {
			refs = append(refs, domain.UserRef{ID: id, Username: u.Username})
		}
	}
	return refs, nil
}

func (s *stubStore) CreateDonation(ctx context.Context, userID string, amount domain.Money) (*domain.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.donations[userID] = append(s.donations[userID], amount.Cents)
	return &domain.Donation{ID: "d" + strconv.Itoa(len(s.donations[userID])), UserID: userID, Amount: amount}, nil
}

func (s *stubStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

var _ domain.Store = (*stubStore)(nil)
