package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationsCreate(t *testing.T) {
	store := newStubStore()
	user := store.addUser("Alice", nil)
	app := newTestApp(store)

	req := httptest.NewRequest("POST", "/api/donations",
		strings.NewReader(`{"username":"Alice","amount":50}`))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	require.Equal(t, 201, rr.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEmpty(t, resp["id"])

	total, err := store.SumDonations(req.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50_00), total.Cents)
}

func TestDonationsCreateFractionalAmount(t *testing.T) {
	store := newStubStore()
	user := store.addUser("Alice", nil)
	app := newTestApp(store)

	req := httptest.NewRequest("POST", "/api/donations",
		strings.NewReader(`{"username":"Alice","amount":12.34}`))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	require.Equal(t, 201, rr.Code)
	total, err := store.SumDonations(req.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12_34), total.Cents)
}

func TestDonationsCreateRejectsBadAmounts(t *testing.T) {
	store := newStubStore()
	store.addUser("Alice", nil)
	app := newTestApp(store)

	bodies := []string{
		`{"username":"Alice"}`,
		`{"username":"Alice","amount":0}`,
		`{"username":"Alice","amount":-5}`,
		`{"username":"Alice","amount":"abc"}`,
		`{"amount":50}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest("POST", "/api/donations", strings.NewReader(body))
		rr := httptest.NewRecorder()
		app.DonationsCreate(rr, req)
		assert.Equal(t, 400, rr.Code, "body %q", body)
	}

	// Validation failures never reach the store.
	assert.Zero(t, store.donationCount())
}

func TestDonationsCreateUnknownUser(t *testing.T) {
	app := newTestApp(newStubStore())

	req := httptest.NewRequest("POST", "/api/donations",
		strings.NewReader(`{"username":"ghost","amount":50}`))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	assert.Equal(t, 404, rr.Code)
}
