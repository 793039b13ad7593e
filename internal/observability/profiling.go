package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/aoc-leaderboard/internal/config"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
)

// StartProfiling starts the pprof listener and the pyroscope agent when enabled.
// The returned stop function is always non-nil.
func StartProfiling(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var pprofSrv *http.Server
	if cfg.PprofEnabled {
		pprofSrv = startPprof(cfg.PprofAddr, logger)
	}

	var profiler *pyroscope.Profiler
	if cfg.PyroscopeEnabled {
		var err error
		profiler, err = pyroscope.Start(pyroscope.Config{
			ApplicationName:   cfg.PyroscopeAppName,
			ServerAddress:     cfg.PyroscopeServerAddress,
			AuthToken:         cfg.PyroscopeAuthToken,
			BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
			BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
			UploadRate:        cfg.PyroscopeUploadRate,
			Tags: map[string]string{
				"env":     cfg.AppEnv,
				"service": cfg.ServiceName,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
				pyroscope.ProfileMutexDuration,
				pyroscope.ProfileBlockDuration,
			},
		})
		if err != nil {
			if pprofSrv != nil {
				_ = pprofSrv.Close()
			}
			return nil, err
		}
		logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	}

	return func(ctx context.Context) error {
		var errs []error
		if profiler != nil {
			errs = append(errs, profiler.Stop())
		}
		if pprofSrv != nil {
			errs = append(errs, pprofSrv.Shutdown(ctx))
		}
		return errors.Join(errs...)
	}, nil
}

func startPprof(addr string, logger *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pprof server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	return srv
}
