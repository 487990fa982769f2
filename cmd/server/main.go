package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thalha/cabslip/internal/backup"
	"github.com/thalha/cabslip/internal/config"
	"github.com/thalha/cabslip/internal/export"
	"github.com/thalha/cabslip/internal/images"
	"github.com/thalha/cabslip/internal/server"
	"github.com/thalha/cabslip/internal/service"
	"github.com/thalha/cabslip/internal/storage/sqlite"
	"github.com/thalha/cabslip/pkg/logging"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err, "db_path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("storage initialized", "database", cfg.DBPath)

	imageStore, err := images.NewStore(cfg.ImageDir, logger)
	if err != nil {
		logger.Error("failed to initialize image storage", "error", err, "dir", cfg.ImageDir)
		os.Exit(1)
	}

	router := server.NewRouter(
		store,
		service.NewReceiptService(store, logger),
		service.NewProfileService(store, logger),
		backup.NewEngine(store, logger),
		export.NewService(store, logger),
		imageStore,
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
