package httpapi

import (
	"net/http"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
)

func (h *Handler) ListYears(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListYears")
	defer span.End()

	items, err := h.yearService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list years failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, yearsToDTO(items))
}

func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetYear")
	defer span.End()

	yearNum, err := yearFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.yearService.Get(ctx, yearNum)
	if err != nil {
		h.logger.WarnContext(ctx, "get year failed", "year", yearNum, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, yearToDTO(item))
}

func (h *Handler) UpsertYear(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertYear")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req upsertYearRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := year.Year{Year: req.Year, LeaderboardID: req.Leaderboard}
	if err := h.yearService.Upsert(ctx, principal, item); err != nil {
		h.logger.WarnContext(ctx, "upsert year failed", "year", req.Year, "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, yearToDTO(item))
}

func (h *Handler) DeleteYear(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteYear")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	yearNum, err := yearFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.yearService.Delete(ctx, principal, yearNum); err != nil {
		h.logger.WarnContext(ctx, "delete year failed", "year", yearNum, "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
