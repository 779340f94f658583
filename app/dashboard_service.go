// Package app wires the loader, metrics engine and filter engine into the
// per-interaction dashboard workflow.
package app

import (
	"context"
	"fmt"
	"time"

	"inmopanel/domain/market"
	"inmopanel/internal"
	"inmopanel/internal/errors"
	"inmopanel/internal/loader"
)

// Interaction is everything one dashboard render pass needs: the filtered,
// metric-augmented listings plus the two auxiliary tables and the
// neighbourhood universe backing the selection controls.
type Interaction struct {
	Listings   *market.ListingSet
	SalePrices *market.SalePriceSet
	Crime      *market.CrimeSet
	Universe   []string
	LoadedAt   time.Time
}

// DashboardService recomputes the dashboard state from the cached snapshot
// on every interaction. There is no incremental update path; each widget
// change runs the whole derive-and-filter pipeline again.
type DashboardService struct {
	loader  *loader.Loader
	metrics market.MetricsConfig
	logger  *internal.Logger
}

// NewDashboardService creates the service
func NewDashboardService(l *loader.Loader, metrics market.MetricsConfig, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		loader:  l,
		metrics: metrics,
		logger:  logger.Named("dashboard"),
	}
}

// Refresh runs one interaction: load (or reuse) the snapshot, derive the
// investment metrics, then narrow to the selection
func (s *DashboardService) Refresh(ctx context.Context, sel market.Selection) (*Interaction, error) {
	if sel.City != "" && !market.IsKnownCity(sel.City) {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown city %q", sel.City))
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	augmented := market.ComputeMetrics(snap.Listings, snap.SalePrices, s.metrics)

	filtered, universe, err := market.Filter(augmented, sel)
	if err != nil {
		s.logger.Warn("filter produced no rows: %v", err)
		return nil, err
	}

	s.logger.Debug("interaction: %d of %d listings after filter", filtered.Len(), augmented.Len())

	return &Interaction{
		Listings:   filtered,
		SalePrices: snap.SalePrices,
		Crime:      snap.Crime,
		Universe:   universe,
		LoadedAt:   snap.LoadedAt,
	}, nil
}

// Universe returns the neighbourhood options for a city selection without
// running the full pipeline
func (s *DashboardService) Universe(ctx context.Context, city string) ([]string, error) {
	if city != "" && !market.IsKnownCity(city) {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown city %q", city))
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	_, universe, err := market.Filter(snap.Listings, market.Selection{City: city})
	if err != nil {
		return nil, err
	}
	return universe, nil
}

// Ready reports whether a snapshot has been loaded at least once
func (s *DashboardService) Ready() bool {
	return s.loader.Current() != nil
}

// Warm triggers an initial load so the first interaction does not pay the
// read cost; failures are logged and left for the next interaction to retry
func (s *DashboardService) Warm(ctx context.Context) {
	if _, err := s.loader.Load(ctx); err != nil {
		s.logger.Warn("warm-up load failed: %v", err)
	}
}
