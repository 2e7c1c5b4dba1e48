package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"givegraph/internal/domain"
)

type donationRequest struct {
	Username string      `json:"username"`
	Amount   json.Number `json:"amount"`
}

// DonationsCreate records a donation for an existing user. The amount must
// parse to a positive number of cents; anything else is rejected before the
// store is touched.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username is required")
		return
	}
	cents, err := domain.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be a positive number")
		return
	}

	user, err := a.Store.UserByUsername(r.Context(), username)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("username", username).Msg("lookup user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to look up user")
		return
	}

	donation, err := a.Store.CreateDonation(r.Context(), user.ID, domain.Money{Cents: cents})
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", user.ID).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record donation")
		return
	}

	a.Cache.Flush()
	if err := a.Events.PublishDonationRecorded(r.Context(), donation.ID, user.ID, user.Username, donation.Amount.Amount()); err != nil {
		a.Logger.Warn().Err(err).Str("donation_id", donation.ID).Msg("publish donation.recorded failed")
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":      donation.ID,
		"message": "donation recorded",
	})
}
