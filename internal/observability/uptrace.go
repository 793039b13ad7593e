package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/aoc-leaderboard/internal/config"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitTracing configures the global OpenTelemetry providers to export to Uptrace.
func InitTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	if !cfg.UptraceEnabled {
		logger.Info("tracing export disabled", "reason", "UPTRACE_ENABLED=false")
		return noop
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("tracing export disabled", "reason", "UPTRACE_DSN empty")
		return noop
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("tracing export enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)

	return uptrace.Shutdown
}
