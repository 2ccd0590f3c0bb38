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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/smartexpense/internal/config"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/export"
	apiHttp "github.com/MrJamesThe3rd/smartexpense/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/smartexpense/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/smartexpense/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/smartexpense/internal/http/export"
	reportHandler "github.com/MrJamesThe3rd/smartexpense/internal/http/report"
	"github.com/MrJamesThe3rd/smartexpense/internal/logging"
	"github.com/MrJamesThe3rd/smartexpense/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg, os.Stderr)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	backend, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	defer func() {
		if err := backend.Cleanup(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	store := expense.NewStore(backend.Backend,
		expense.WithKey(cfg.Storage.Key),
		expense.WithIDGenerator(expense.GeneratorFor(expense.IDScheme(cfg.Ledger.IDScheme))),
		expense.WithLogger(logger),
	)

	if err := store.Load(context.Background()); err != nil {
		return err
	}

	var (
		exportService = export.NewService(store, logger)
		now           = time.Now
	)

	var (
		expenseH  = expenseHandler.NewHandler(store, logger)
		reportH   = reportHandler.NewHandler(store, now, logger)
		categoryH = categoryHandler.NewHandler(logger)
		exportH   = exportHandler.NewHandler(exportService, now, logger)
	)

	router := apiHttp.New(cfg.Server.AllowedOrigins, expenseH, reportH, categoryH, exportH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("starting server", "addr", server.Addr, "storage", cfg.Storage.Backend)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	}

	logger.Info("server stopped")

	return nil
}
