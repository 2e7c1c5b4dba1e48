package referral

import (
	"context"
	"strconv"
	"sync"

	"givegraph/internal/domain"
)

// memStore is a goroutine-safe in-memory domain.Store for aggregator tests.
// BuildTree expands siblings concurrently, so every method takes the lock.
type memStore struct {
	mu        sync.RWMutex
	seq       int
	users     map[string]*domain.User
	byName    map[string]string
	donations map[string][]int64

	// failWith, when set, makes every call return that error.
	failWith error

	// round-trip counters for the batching assertions
	referralIDCalls int
	sumForUserCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]*domain.User),
		byName:    make(map[string]string),
		donations: make(map[string][]int64),
	}
}

func (m *memStore) addUser(username string, referrerID *string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := "u" + strconv.Itoa(m.seq)
	if referrerID != nil {
		r := *referrerID
		referrerID = &r
	}
	m.users[id] = &domain.User{ID: id, Username: username, ReferrerID: referrerID}
	m.byName[username] = id
	return id
}

func (m *memStore) setReferrer(userID, referrerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].ReferrerID = &referrerID
}

func (m *memStore) donate(userID string, cents int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.donations[userID] = append(m.donations[userID], cents)
}

func (m *memStore) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	id, ok := m.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *m.users[id]
	return &u, nil
}

func (m *memStore) CreateUser(ctx context.Context, username string, referrerID *string) (*domain.User, error) {
	m.mu.RLock()
	_, exists := m.byName[username]
	m.mu.RUnlock()
	if exists {
		return nil, domain.ErrDuplicateUsername
	}
	id := m.addUser(username, referrerID)
	m.mu.RLock()
	defer m.mu.RUnlock()
	u := *m.users[id]
	return &u, nil
}

func (m *memStore) SumDonations(ctx context.Context, userID string) (domain.Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return domain.Money{}, m.failWith
	}
	var total int64
	for _, c := range m.donations[userID] {
		total += c
	}
	return domain.Money{Cents: total}, nil
}

func (m *memStore) SumDonationsForUsers(ctx context.Context, userIDs []string) (domain.Money, error) {
	m.mu.Lock()
	m.sumForUserCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return domain.Money{}, m.failWith
	}
	var total int64
	for _, id := range userIDs {
		for _, c := range m.donations[id] {
			total += c
		}
	}
	return domain.Money{Cents: total}, nil
}

func (m *memStore) DirectReferralIDs(ctx context.Context, userIDs []string) ([]string, error) {
	m.mu.Lock()
	m.referralIDCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	in := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		in[id] = true
	}
	var out []string
	for id, u := range m.users {
		if u.ReferrerID != nil && in[*u.ReferrerID] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *memStore) DirectReferrals(ctx context.Context, userID string) ([]domain.UserRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var refs []domain.UserRef
	for id, u := range m.users {
		if u.ReferrerID != nil && *u.ReferrerID == userID {
			refs = append(refs, domain.UserRef{ID: id, Username: u.Username})
		}
	}
	return refs, nil
}

func (m *memStore) CreateDonation(ctx context.Context, userID string, amount domain.Money) (*domain.Donation, error) {
	m.mu.RLock()
	_, ok := m.users[userID]
	failed := m.failWith
	m.mu.RUnlock()
	if failed != nil {
		return nil, failed
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.donate(userID, amount.Cents)
	return &domain.Donation{ID: "d-" + userID, UserID: userID, Amount: amount}, nil
}

func (m *memStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	return int64(len(m.users)), nil
}

var _ domain.Store = (*memStore)(nil)
