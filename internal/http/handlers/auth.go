package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"givegraph/internal/domain"
	"givegraph/internal/middleware"
)

type loginRequest struct {
	Username         string `json:"username"`
	ReferrerUsername string `json:"referrerUsername"`
}

type loginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Login looks up the submitted username and creates the user on first sight.
// A referrer username that does not resolve is accepted silently with no
// referrer assigned.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username is required")
		return
	}

	user, err := a.Store.UserByUsername(r.Context(), username)
	if err == nil {
		a.json(w, http.StatusOK, loginResponse{ID: user.ID, Username: user.Username})
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Str("username", username).Msg("lookup user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to look up user")
		return
	}

	var referrerID *string
	if ref := strings.TrimSpace(req.ReferrerUsername); ref != "" {
		referrer, err := a.Store.UserByUsername(r.Context(), ref)
		switch {
		case err == nil:
			referrerID = &referrer.ID
		case errors.Is(err, domain.ErrNotFound):
			// Unknown referrers are ignored, not rejected.
		default:
			a.Logger.Error().Err(err).Str("referrer", ref).Msg("lookup referrer failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to look up referrer")
			return
		}
	}

	user, err = a.Store.CreateUser(r.Context(), username, referrerID)
	if errors.Is(err, domain.ErrDuplicateUsername) {
		// Lost a race with a concurrent signup; the existing row wins.
		user, err = a.Store.UserByUsername(r.Context(), username)
		if err != nil {
			a.error(w, http.StatusConflict, "conflict", "username already taken")
			return
		}
		a.json(w, http.StatusOK, loginResponse{ID: user.ID, Username: user.Username})
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("username", username).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create user")
		return
	}

	a.Cache.Flush()
	if err := a.Events.PublishUserRegistered(r.Context(), user.ID, user.Username, user.ReferrerID); err != nil {
		a.Logger.Warn().Err(err).Str("user_id", user.ID).Msg("publish user.registered failed")
	}
	a.Logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("country", middleware.CountryFromContext(r.Context())).
		Str("locale", middleware.LocaleFromContext(r.Context())).
		Msg("user registered")

	a.json(w, http.StatusOK, loginResponse{ID: user.ID, Username: user.Username})
}
