package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"givegraph/internal/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// ReferralStorePG implements domain.Store backed by PostgreSQL.
type ReferralStorePG struct {
	pool *pgxpool.Pool
}

// NewReferralStore creates a new PostgreSQL-backed store.
func NewReferralStore(pool *pgxpool.Pool) *ReferralStorePG {
	return &ReferralStorePG{pool: pool}
}

// UserByUsername fetches a user by their unique username.
func (r *ReferralStorePG) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, referrer_id, created_at
FROM users
WHERE username = $1;
`, username)
	return scanUser(row)
}

// CreateUser inserts a new user, optionally under a referrer. A username
// collision surfaces as domain.ErrDuplicateUsername.
func (r *ReferralStorePG) CreateUser(ctx context.Context, username string, referrerID *string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (id, username, referrer_id)
VALUES ($1, $2, $3)
RETURNING id, username, referrer_id, created_at;
`, uuid.NewString(), username, referrerID)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// SumDonations returns the donation total for one user, zero when they have
// no donations.
func (r *ReferralStorePG) SumDonations(ctx context.Context, userID string) (domain.Money, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(amount_cents), 0)
FROM donations
WHERE user_id = $1;
`, userID)

	var cents int64
	if err := row.Scan(&cents); err != nil {
		return domain.Money{}, err
	}
	return domain.Money{Cents: cents}, nil
}

// SumDonationsForUsers returns the combined donation total for a set of users
// in a single query.
func (r *ReferralStorePG) SumDonationsForUsers(ctx context.Context, userIDs []string) (domain.Money, error) {
	if len(userIDs) == 0 {
		return domain.Money{}, nil
	}
	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(amount_cents), 0)
FROM donations
WHERE user_id = ANY($1::uuid[]);
`, userIDs)

	var cents int64
	if err := row.Scan(&cents); err != nil {
		return domain.Money{}, err
	}
	return domain.Money{Cents: cents}, nil
}

// DirectReferralIDs returns the ids of all users whose referrer is in the
// given set, batched into one query.
func (r *ReferralStorePG) DirectReferralIDs(ctx context.Context, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT id
FROM users
WHERE referrer_id = ANY($1::uuid[]);
`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DirectReferrals returns id+username pairs for one user's direct referrals.
func (r *ReferralStorePG) DirectReferrals(ctx context.Context, userID string) ([]domain.UserRef, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, username
FROM users
WHERE referrer_id = $1;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.UserRef
	for rows.Next() {
		var ref domain.UserRef
		if err := rows.Scan(&ref.ID, &ref.Username); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// CreateDonation inserts a donation for an existing user. The caller is
// expected to have resolved the user already; a broken foreign key still maps
// to domain.ErrNotFound.
func (r *ReferralStorePG) CreateDonation(ctx context.Context, userID string, amount domain.Money) (*domain.Donation, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO donations (id, user_id, amount_cents)
VALUES ($1, $2, $3)
RETURNING id, user_id, amount_cents, created_at;
`, uuid.NewString(), userID, amount.Cents)

	var d domain.Donation
	if err := row.Scan(&d.ID, &d.UserID, &d.Amount.Cents, &d.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// CountUsers returns the total number of users in the store.
func (r *ReferralStorePG) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.ReferrerID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.Store = (*ReferralStorePG)(nil)
