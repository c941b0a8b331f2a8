package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adapterHTTP "github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "kanso-api:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.LogFormat != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("opening store", zap.String("driver", cfg.StoreDriver))
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := boot(ctx, a); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      adapterHTTP.NewRouter(adapterHTTP.DependenciesFromApp(a, logger)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return serve(ctx, srv, a, logger)
}

type lifecycle interface {
	Load(ctx context.Context) error
	Start(ctx context.Context)
	Close(ctx context.Context) error
}

// boot loads and starts the app. A failed load still releases the backend.
func boot(ctx context.Context, a lifecycle) error {
	if err := a.Load(ctx); err != nil {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return errors.Join(fmt.Errorf("load state: %w", err), a.Close(closeCtx))
	}
	a.Start(ctx)
	return nil
}

// serve runs srv until ctx ends or the listener fails, then shuts down and
// closes the app. A listener failure is returned.
func serve(ctx context.Context, srv *http.Server, a lifecycle, logger *zap.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("kanso bridge listening", zap.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			runErr = fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("stop signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := a.Close(shutdownCtx); err != nil {
		logger.Warn("unsynced changes remain after shutdown", zap.Error(err))
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("server stopped gracefully")
	return nil
}
