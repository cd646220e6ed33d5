package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Bahjat/har-report/backend/internal/backend"
	"github.com/Bahjat/har-report/backend/internal/display"
	"github.com/Bahjat/har-report/backend/internal/platform/config"
	"github.com/Bahjat/har-report/backend/internal/platform/logger"
	"github.com/Bahjat/har-report/backend/internal/platform/middleware"
	"github.com/Bahjat/har-report/backend/internal/reporter"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	formatter, err := display.New(cfg.Locale, loc)
	if err != nil {
		return err
	}

	provider, cleanup, err := backend.NewProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := reporter.NewService(provider, log)
	transport := reporter.NewTransport(svc, formatter, reporter.TransportOptions{
		DefaultFilePath: cfg.DefaultFilePath,
		Timeout:         cfg.AnalysisTimeout,
	}, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.RequestID(middleware.Logging(log)(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.AnalysisTimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("report server listening", "addr", srv.Addr, "backend", cfg.BackendURL)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
