package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"givegraph/internal/domain"
)

type levelSummaryDTO struct {
	Level        int     `json:"level"`
	UserCount    int     `json:"userCount"`
	TotalDonated float64 `json:"totalDonated"`
}

type treeNodeDTO struct {
	Username     string        `json:"username"`
	TotalDonated float64       `json:"totalDonated"`
	Children     []treeNodeDTO `json:"children"`
}

type userSummaryDTO struct {
	ReferralLink            string            `json:"referralLink"`
	UserTotalDonated        float64           `json:"userTotalDonated"`
	DescendantsTotalDonated float64           `json:"descendantsTotalDonated"`
	TotalDescendants        int               `json:"totalDescendants"`
	Levels                  []levelSummaryDTO `json:"levels"`
	Tree                    treeNodeDTO       `json:"tree"`
}

// UsersSummary returns the aggregate referral view for one user: their own
// donation total, the per-generation breakdown and the full descendant tree.
func (a *App) UsersSummary(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if cached, ok := a.Cache.Get(username); ok {
		a.json(w, http.StatusOK, toSummaryDTO(cached))
		return
	}

	summary, err := a.Summaries.BuildSummary(r.Context(), username)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	case errors.Is(err, domain.ErrCycleDetected), errors.Is(err, domain.ErrTraversalLimit):
		a.Logger.Error().Err(err).Str("username", username).Msg("malformed referral data")
		a.error(w, http.StatusInternalServerError, "internal", "referral data is inconsistent")
		return
	default:
		a.Logger.Error().Err(err).Str("username", username).Msg("build summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build summary")
		return
	}

	a.Cache.Set(username, summary)
	a.json(w, http.StatusOK, toSummaryDTO(summary))
}

func toSummaryDTO(s *domain.UserSummary) userSummaryDTO {
	levels := make([]levelSummaryDTO, 0, len(s.Levels))
	for _, lv := range s.Levels {
		levels = append(levels, levelSummaryDTO{
			Level:        lv.Level,
			UserCount:    lv.UserCount,
			TotalDonated: lv.TotalDonated.Amount(),
		})
	}
	return userSummaryDTO{
		ReferralLink:            s.ReferralLink,
		UserTotalDonated:        s.UserTotalDonated.Amount(),
		DescendantsTotalDonated: s.DescendantsTotalDonated.Amount(),
		TotalDescendants:        s.TotalDescendants,
		Levels:                  levels,
		Tree:                    toTreeDTO(s.Tree),
	}
}

func toTreeDTO(n domain.TreeNode) treeNodeDTO {
	children := make([]treeNodeDTO, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, toTreeDTO(c))
	}
	return treeNodeDTO{
		Username:     n.Username,
		TotalDonated: n.TotalDonated.Amount(),
		Children:     children,
	}
}
