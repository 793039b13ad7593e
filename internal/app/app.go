package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/external/adventofcode"
	"github.com/riskibarqy/aoc-leaderboard/external/gamma"
	"github.com/riskibarqy/aoc-leaderboard/external/github"
	"github.com/riskibarqy/aoc-leaderboard/internal/config"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	cacherepo "github.com/riskibarqy/aoc-leaderboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/aoc-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/aoc-leaderboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/aoc-leaderboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/aoc-leaderboard/internal/observability"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/fanout"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/aoc-leaderboard/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App owns the HTTP server and everything that must be released after it stops.
type App struct {
	Server  *http.Server
	closers []func(context.Context) error
}

type repositories struct {
	years          year.Repository
	users          user.Repository
	participations participation.Repository
}

// New builds the service graph. On error every resource opened so far is released.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (app *App, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app = &App{}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
			app = nil
		}
	}()

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	store, err := openCacheStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	repos, err := openRepositories(ctx, cfg, app)
	if err != nil {
		return nil, err
	}
	repos.years = cacherepo.NewYearRepository(repos.years, store, cfg.YearCacheTTL, logger)

	pool, err := fanout.NewPool(cfg.FanoutWorkers)
	if err != nil {
		return nil, err
	}
	app.onClose(func(context.Context) error {
		pool.Release()
		return nil
	})

	listener := metrics.BreakerListener()
	aocClient := adventofcode.NewClient(adventofcode.ClientConfig{
		HTTPClient: tracedHTTPClient(cfg.AoCTimeout),
		BaseURL:    cfg.AoCBaseURL,
		Session:    cfg.AoCSession,
		MaxRetries: cfg.AoCMaxRetries,
		Logger:     logger,
		Breaker:    resilience.BreakerFor("adventofcode", cfg.AoCCircuit, listener),
		OnFailure:  metrics.UpstreamFailure,
	})
	gammaClient := gamma.NewClient(gamma.ClientConfig{
		HTTPClient: tracedHTTPClient(cfg.GammaTimeout),
		BaseURL:    cfg.GammaBaseURL,
		APIKey:     cfg.GammaAPIKey,
		Logger:     logger,
		Breaker:    resilience.BreakerFor("gamma", cfg.GammaCircuit, listener),
		OnFailure:  metrics.UpstreamFailure,
	})
	githubClient := github.NewClient(github.ClientConfig{
		HTTPClient:   tracedHTTPClient(cfg.GitHubTimeout),
		BaseURL:      cfg.GitHubBaseURL,
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		Logger:       logger,
		Breaker:      resilience.BreakerFor("github", cfg.GitHubCircuit, listener),
		OnFailure:    metrics.UpstreamFailure,
	})

	owners := usecase.NewOwnerPolicy(cfg.GammaOwnerGroups)
	leaderboardSvc := usecase.NewLeaderboardService(usecase.LeaderboardDeps{
		Years:          repos.years,
		Participations: repos.participations,
		Store:          store,
		Boards:         aocClient,
		Profiles:       gammaClient,
		Languages:      githubClient,
		Pool:           pool,
		Metrics:        metrics,
		Logger:         logger,
	}, usecase.LeaderboardConfig{
		ScoreTTL:    cfg.ScoreCacheTTL,
		SplitsTTL:   cfg.SplitsCacheTTL,
		LanguageTTL: cfg.LanguageCacheTTL,
	})
	yearSvc := usecase.NewYearService(repos.years, owners)
	participationSvc := usecase.NewParticipationService(repos.participations, repos.years)
	accountSvc := usecase.NewAccountService(repos.users, repos.participations, repos.years, owners)

	handler := httpapi.NewHandler(leaderboardSvc, yearSvc, participationSvc, accountSvc, logger)
	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthCookieName:     cfg.GammaCookieName,
	}
	if metrics != nil {
		routerCfg.Metrics = metrics.Handler()
	}

	app.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, gammaClient, logger, routerCfg),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("application wired",
		"storage_driver", cfg.StorageDriver,
		"cache_backend", cfg.CacheBackend,
		"fanout_workers", pool.Cap(),
		"metrics_enabled", cfg.MetricsEnabled,
	)
	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func openCacheStore(ctx context.Context, cfg config.Config, app *App) (cache.Store, error) {
	if cfg.CacheBackend == config.CacheBackendMemory {
		return cache.NewMemoryStore(), nil
	}

	store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	app.onClose(func(context.Context) error { return store.Close() })
	return store, nil
}

func openRepositories(ctx context.Context, cfg config.Config, app *App) (repositories, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		users := memory.NewUserRepository(nil)
		return repositories{
			years:          memory.NewYearRepository(nil),
			users:          users,
			participations: memory.NewParticipationRepository(users, nil),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return repositories{}, err
	}
	app.onClose(func(context.Context) error { return db.Close() })

	return repositories{
		years:          postgres.NewYearRepository(db),
		users:          postgres.NewUserRepository(db),
		participations: postgres.NewParticipationRepository(db),
	}, nil
}

func tracedHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
