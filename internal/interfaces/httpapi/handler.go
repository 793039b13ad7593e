package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/usecase"
)

type Handler struct {
	leaderboardService   *usecase.LeaderboardService
	yearService          *usecase.YearService
	participationService *usecase.ParticipationService
	accountService       *usecase.AccountService
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	leaderboardService *usecase.LeaderboardService,
	yearService *usecase.YearService,
	participationService *usecase.ParticipationService,
	accountService *usecase.AccountService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leaderboardService:   leaderboardService,
		yearService:          yearService,
		participationService: participationService,
		accountService:       accountService,
		logger:               logger.Named("httpapi"),
		validator:            newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("leaderboard_id", func(fl validator.FieldLevel) bool {
		return year.ValidLeaderboardID(fl.Field().String())
	})
	_ = v.RegisterValidation("repo_slug", func(fl validator.FieldLevel) bool {
		return participation.ValidRepoSlug(fl.Field().String())
	})
	return v
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(body io.Reader, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func yearFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("year"))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: year %q must be a positive integer", usecase.ErrInvalidInput, raw)
	}
	return value, nil
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}
