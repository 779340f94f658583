// Package loader owns the process-wide dataset snapshot and its time-based
// expiry. The cache is an explicit (value, timestamp) pair held by a Loader
// the caller constructs and injects, not a hidden global.
package loader

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"inmopanel/domain/market"
	"inmopanel/internal"
	"inmopanel/internal/errors"
	"inmopanel/ports"
)

// Snapshot is one consistent read of the three datasets. Consumers treat it
// as immutable; concurrent sessions within the validity window share it.
type Snapshot struct {
	Listings   *market.ListingSet
	SalePrices *market.SalePriceSet
	Crime      *market.CrimeSet
	LoadedAt   time.Time
}

// Loader reads the three sources through the data port and caches the result
// for a validity window. A failed load caches nothing.
type Loader struct {
	source ports.MarketDataPort
	ttl    time.Duration
	logger *internal.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
}

// New creates a loader with the given validity window
func New(source ports.MarketDataPort, ttl time.Duration, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{
		source: source,
		ttl:    ttl,
		logger: logger.Named("loader"),
		now:    time.Now,
	}
}

// Load returns the cached snapshot while it is fresh, otherwise re-reads all
// three sources. If any single source fails the whole load fails: the caller
// gets no partial data.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.RLock()
	if snap := l.snapshot; snap != nil && l.now().Sub(snap.LoadedAt) < l.ttl {
		l.mu.RUnlock()
		return snap, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another session may have refreshed while we waited for the lock.
	if snap := l.snapshot; snap != nil && l.now().Sub(snap.LoadedAt) < l.ttl {
		return snap, nil
	}

	snap, err := l.loadAll(ctx)
	if err != nil {
		l.logger.Error("dataset load failed: %+v", err)
		return nil, err
	}

	l.snapshot = snap
	l.logger.Info("dataset snapshot refreshed: %d listings, %d sale records, %d crime records",
		snap.Listings.Len(), len(snap.SalePrices.Records), len(snap.Crime.Records))
	return snap, nil
}

// loadAll reads the three sources concurrently with fail-fast semantics
func (l *Loader) loadAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listings, err := l.source.LoadListings(gctx)
		if err != nil {
			return errors.DataUnavailable("listing", err)
		}
		snap.Listings = listings
		return nil
	})
	g.Go(func() error {
		sales, err := l.source.LoadSalePrices(gctx)
		if err != nil {
			return errors.DataUnavailable("sale-price", err)
		}
		snap.SalePrices = sales
		return nil
	})
	g.Go(func() error {
		crime, err := l.source.LoadCrimeStats(gctx)
		if err != nil {
			return errors.DataUnavailable("crime", err)
		}
		snap.Crime = crime
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.LoadedAt = l.now()
	return snap, nil
}

// Current returns the cached snapshot without triggering a load, nil when
// nothing has loaded yet. Readiness checks use it.
func (l *Loader) Current() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// Invalidate drops the cached snapshot so the next Load re-reads storage
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshot = nil
}

// WithClock overrides the time source, for tests
func (l *Loader) WithClock(now func() time.Time) *Loader {
	l.now = now
	return l
}
