package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
)

func (h *Handler) GetScoreLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.serveLeaderboard(w, r, leaderboard.VariantScore, "httpapi.Handler.GetScoreLeaderboard")
}

func (h *Handler) GetSplitLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.serveLeaderboard(w, r, leaderboard.VariantSplits, "httpapi.Handler.GetSplitLeaderboard")
}

func (h *Handler) GetLanguageLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.serveLeaderboard(w, r, leaderboard.VariantLanguages, "httpapi.Handler.GetLanguageLeaderboard")
}

func (h *Handler) serveLeaderboard(w http.ResponseWriter, r *http.Request, variant leaderboard.Variant, spanName string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	yearNum, err := yearFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.leaderboardService.GetLeaderboard(ctx, yearNum, variant)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "year", yearNum, "variant", string(variant), "error", err)
		writeError(ctx, w, err)
		return
	}

	ttlSeconds := int(view.TTL.Seconds())
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", ttlSeconds))
	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Year:       view.Year,
		Variant:    string(view.Variant),
		TTLSeconds: ttlSeconds,
		Cached:     view.Cached,
		Entries:    view.Entries,
	})
}
