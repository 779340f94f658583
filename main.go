package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"inmopanel/adapters/csvsource"
	"inmopanel/adapters/postgres"
	"inmopanel/app"
	"inmopanel/domain/market"
	"inmopanel/internal"
	"inmopanel/internal/config"
	"inmopanel/internal/loader"
	"inmopanel/ports"
	"inmopanel/ui"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := internal.NewDefaultLogger()

	source, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("data source error: %v", err)
	}

	metrics := market.MetricsConfig{
		AverageUnitM2:       cfg.Metrics.AverageUnitM2,
		AnnualOperatingCost: cfg.Metrics.AnnualOperatingCost,
		FallbackPricePerM2:  cfg.Metrics.FallbackPricePerM2,
	}

	datasetLoader := loader.New(source, cfg.Data.CacheTTL, logger)
	service := app.NewDashboardService(datasetLoader, metrics, logger)

	// Pre-load the snapshot so the first interaction is fast. A failed
	// warm-up is retried by the next interaction.
	go service.Warm(context.Background())

	if cfg.Ops.Enabled {
		opsRouter := ui.NewOpsRouter(service)
		go func() {
			logger.Info("ops server listening on :%s", cfg.Ops.Port)
			if err := http.ListenAndServe(":"+cfg.Ops.Port, opsRouter); err != nil {
				logger.Error("ops server stopped: %v", err)
			}
		}()
	}

	server := ui.NewServer(service, cfg.Server.GinMode)
	logger.Info("dashboard API listening on :%s", cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// buildSource selects the dataset backend from configuration
func buildSource(cfg *config.Config) (ports.MarketDataPort, error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewMarketSource(db), nil
	default:
		return csvsource.NewSource(
			cfg.Data.ListingsFile,
			cfg.Data.HousingFile,
			cfg.Data.CrimeFile,
			cfg.Data.CrimeDelimiter,
		), nil
	}
}
