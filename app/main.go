package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/John-Gell/cleaning-calculator/app/api"
	"github.com/John-Gell/cleaning-calculator/app/cfg"
	"github.com/John-Gell/cleaning-calculator/app/database"
	"github.com/John-Gell/cleaning-calculator/app/fetch"
	"github.com/John-Gell/cleaning-calculator/app/listing"
	"github.com/John-Gell/cleaning-calculator/app/report"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting Cleaning Calculator server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	configCache := listing.NewConfigCache(appCfg.ListingsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load listing configurations", "dir", appCfg.ListingsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Listing configurations loaded", "dir", appCfg.ListingsDir, "count", configCache.GetConfigCount())

	listingRepo := database.NewListingRepository(db)
	registerListings(configCache, listingRepo)

	fetcher := fetch.NewFetcher(&http.Client{}, appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second, appCfg.WorkerCount)
	reportService := report.NewService(fetcher, listingRepo)

	handler := api.NewHandler(configCache, listingRepo, reportService)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// registerListings mirrors the loaded configurations into the sqlite
// registry. Registration failures are logged, not fatal: reports only need
// the in-memory configs.
func registerListings(configCache *listing.ConfigCache, listingRepo database.ListingRepository) {
	registered := 0
	for name, config := range configCache.GetConfigs() {
		id, urlChanged, err := listingRepo.UpsertListing(name, config.DisplayName,
			config.URL, config.RateAmount.String(), config.Enabled)
		if err != nil {
			slog.Warn("Failed to register listing", "listing", name, "error", err)
			continue
		}

		if urlChanged {
			slog.Info("Listing feed URL updated", "listing", name, "id", id, "url", config.URL)
		} else {
			slog.Debug("Listing registered", "listing", name, "id", id)
		}
		registered++
	}
	slog.Info("Listings registered", "count", registered)
}
