package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataprep/internal"
	"dataprep/internal/admin"
	"dataprep/internal/api"
	"dataprep/internal/config"

	"golang.org/x/sync/errgroup"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(appConfig.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, logger); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	logger.Info("Shutdown complete")
}

// run serves the API, and the admin listener when profiling is enabled,
// until ctx is cancelled or a listener fails
func run(ctx context.Context, appConfig *config.Config, logger *internal.Logger) error {
	servers := []*http.Server{{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           api.NewServer(appConfig, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}

	if appConfig.Profiling.Enabled {
		servers = append(servers, &http.Server{
			Addr:              ":" + appConfig.Profiling.Port,
			Handler:           admin.NewApp().Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
		logger.Info("Profiling server on :%s", appConfig.Profiling.Port)
		logger.Info("View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down (timeout %s)", appConfig.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()

		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	return g.Wait()
}
