// Command export runs the load-derive-filter pipeline once and writes the
// resulting listing table to a file, without starting the dashboard server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"inmopanel/adapters/csvsource"
	"inmopanel/adapters/postgres"
	"inmopanel/app"
	"inmopanel/domain/market"
	"inmopanel/internal"
	"inmopanel/internal/config"
	"inmopanel/internal/export"
	"inmopanel/internal/loader"
	"inmopanel/ports"
)

func main() {
	city := flag.String("city", "", "city to filter by (Valencia, Malaga, Madrid, Barcelona)")
	neighbourhoods := flag.String("neighbourhoods", "", "comma-separated neighbourhoods to keep (default: all)")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	out := flag.String("out", "", "output file (default: unique name in the working directory)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	source, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("data source error: %v", err)
	}

	logger := internal.NewDefaultLogger()
	service := app.NewDashboardService(
		loader.New(source, cfg.Data.CacheTTL, logger),
		market.MetricsConfig{
			AverageUnitM2:       cfg.Metrics.AverageUnitM2,
			AnnualOperatingCost: cfg.Metrics.AnnualOperatingCost,
			FallbackPricePerM2:  cfg.Metrics.FallbackPricePerM2,
		},
		logger,
	)

	sel := market.Selection{City: *city}
	for _, name := range strings.Split(*neighbourhoods, ",") {
		if name = strings.TrimSpace(name); name != "" {
			sel.Neighbourhoods = append(sel.Neighbourhoods, name)
		}
	}

	interaction, err := service.Refresh(context.Background(), sel)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("valencia_inmobiliario_%s.%s", uuid.New().String()[:8], *format)
	}

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer file.Close()

	switch *format {
	case "csv":
		err = export.WriteCSV(file, interaction.Listings)
	case "xlsx":
		err = export.WriteXLSX(file, interaction.Listings)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}

	log.Printf("wrote %d listings to %s", interaction.Listings.Len(), path)
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
