// Package ports defines the interfaces between the application core and its
// adapters.
package ports

import (
	"context"

	"inmopanel/domain/market"
)

// MarketDataPort abstracts the three tabular dataset sources. Implementations
// read fixed external resources and return them unchanged; derivation and
// filtering happen downstream.
type MarketDataPort interface {
	LoadListings(ctx context.Context) (*market.ListingSet, error)
	LoadSalePrices(ctx context.Context) (*market.SalePriceSet, error)
	LoadCrimeStats(ctx context.Context) (*market.CrimeSet, error)
}
