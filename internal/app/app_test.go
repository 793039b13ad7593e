package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/riskibarqy/aoc-leaderboard/internal/config"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageDriverMemory,
		CacheBackend:       config.CacheBackendMemory,
		ScoreCacheTTL:      time.Minute,
		SplitsCacheTTL:     time.Minute,
		LanguageCacheTTL:   time.Minute,
		YearCacheTTL:       time.Minute,
		FanoutWorkers:      2,
		AoCTimeout:         time.Second,
		GammaTimeout:       time.Second,
		GammaCookieName:    "gamma",
		GitHubTimeout:      time.Second,
		GammaCircuit:       resilience.DefaultCircuitBreakerConfig(),
		MetricsEnabled:     true,
	}
}

func TestNew_MemoryBackends(t *testing.T) {
	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	for _, path := range []string{"/healthz", "/metrics", "/v1/years"} {
		rec := httptest.NewRecorder()
		a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me/settings", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected anonymous settings request to be rejected, got %d", rec.Code)
	}
}

func TestNew_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.CacheBackend = config.CacheBackendRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"
	cfg.MetricsEnabled = false

	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected /metrics to be absent when disabled, got %d", rec.Code)
	}

	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("close app: %v", err)
	}
}

func TestNew_UnreachableRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.CacheBackend = config.CacheBackendRedis
	cfg.RedisURL = "redis://" + addr + "/0"

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
