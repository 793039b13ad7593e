package httpapi

import (
	"net/http"

	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// AuthCookieName is the identity provider's session cookie accepted in place of a bearer token.
	AuthCookieName string
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier, cfg.AuthCookieName)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
