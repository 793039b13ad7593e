package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
)

func (h *Handler) GetMyAoCID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyAoCID")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	puzzleID, err := h.accountService.GetPuzzleID(ctx, principal.LocalID)
	if err != nil {
		h.logger.WarnContext(ctx, "get aoc id failed", "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, aocIDDTO{AoCID: puzzleID})
}

func (h *Handler) SetMyAoCID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMyAoCID")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req setAoCIDRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.AoCID = strings.TrimSpace(req.AoCID)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.accountService.SetPuzzleID(ctx, principal.LocalID, req.AoCID); err != nil {
		h.logger.WarnContext(ctx, "set aoc id failed", "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, aocIDDTO{AoCID: req.AoCID})
}

func (h *Handler) ListMyParticipations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyParticipations")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.participationService.List(ctx, principal.LocalID)
	if err != nil {
		h.logger.WarnContext(ctx, "list participations failed", "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationsToDTO(items))
}

func (h *Handler) JoinYear(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinYear")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req joinRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.GitHub != nil {
		trimmed := strings.TrimSpace(*req.GitHub)
		req.GitHub = &trimmed
		if trimmed == "" {
			req.GitHub = nil
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := participation.Participation{
		LocalID:  principal.LocalID,
		Year:     req.Year,
		RepoSlug: req.GitHub,
	}
	if err := h.participationService.Join(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "join year failed", "year", req.Year, "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationDTO{Year: item.Year, GitHub: item.RepoSlug})
}

func (h *Handler) LeaveYear(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveYear")
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

	if err := h.participationService.Leave(ctx, principal.LocalID, yearNum); err != nil {
		h.logger.WarnContext(ctx, "leave year failed", "year", yearNum, "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetMySettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySettings")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	settings, err := h.accountService.Settings(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "user_id", principal.LocalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(principal.DisplayName, settings))
}
