package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookstore-ledger/internal/api"
	"github.com/bookstore-ledger/internal/config"
	"github.com/bookstore-ledger/internal/covers"
	"github.com/bookstore-ledger/internal/data/postgres"
	"github.com/bookstore-ledger/internal/logger"
	"github.com/bookstore-ledger/internal/platform/persistence"
	"github.com/bookstore-ledger/internal/store"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize database with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	bookRepo := postgres.NewBookRepository(log, postgresDB)
	ledgerRepo := postgres.NewLedgerRepository(log, postgresDB)
	cashboxRepo := postgres.NewCashboxRepository(log, postgresDB)

	// Initialize the ledger core and load the cash balance
	bookstore := store.New(postgresDB.Pool(), bookRepo, ledgerRepo, cashboxRepo, log)
	if err := bookstore.LoadBalance(appCtx, cfg.Store.OpeningBalance); err != nil {
		log.Warn("Cash balance loaded in degraded mode", "error", err)
	}

	// Initialize the cover image client and warm its cache for the catalog
	coverClient, err := covers.NewClient(log, &cfg.Covers)
	if err != nil {
		log.Error("Failed to initialize cover client", "error", err)
		os.Exit(1)
	}
	if catalog, err := bookstore.Catalog(appCtx); err == nil {
		isbns := make([]string, 0, len(catalog))
		for _, b := range catalog {
			isbns = append(isbns, b.ISBN)
		}
		coverClient.Prefetch(isbns)
	} else {
		log.Warn("Cover prefetch skipped", "error", err)
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, bookstore, coverClient)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	coverClient.Close()
	postgresDB.Close()

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
