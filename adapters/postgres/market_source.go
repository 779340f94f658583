// Package postgres implements the market data port over a Postgres database
// populated by the listing ingestion jobs.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"inmopanel/domain/market"
	"inmopanel/ports"

	"github.com/jmoiron/sqlx"
)

// marketSource implements ports.MarketDataPort
type marketSource struct {
	db *sqlx.DB
}

// NewMarketSource creates a Postgres-backed market data source
func NewMarketSource(db *sqlx.DB) ports.MarketDataPort {
	return &marketSource{db: db}
}

// listingRow mirrors the listings table; nullable numerics become NaN
type listingRow struct {
	ID            string          `db:"id"`
	City          sql.NullString  `db:"city"`
	Neighbourhood sql.NullString  `db:"neighbourhood"`
	Price         sql.NullFloat64 `db:"price"`
	DaysRented    sql.NullFloat64 `db:"days_rented"`
	Amenities     sql.NullString  `db:"amenities"`
	Bedrooms      sql.NullFloat64 `db:"bedrooms"`
	Bathrooms     sql.NullFloat64 `db:"bathrooms"`
	Reviews       sql.NullFloat64 `db:"number_of_reviews"`
	Latitude      sql.NullFloat64 `db:"latitude"`
	Longitude     sql.NullFloat64 `db:"longitude"`
}

func nullableFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return market.Missing()
	}
	return v.Float64
}

// LoadListings reads the full listings table
func (s *marketSource) LoadListings(ctx context.Context) (*market.ListingSet, error) {
	query := `SELECT
		id, city, neighbourhood, price, days_rented, amenities,
		bedrooms, bathrooms, number_of_reviews, latitude, longitude
	FROM listings ORDER BY id`

	var rows []listingRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	listings := make([]market.Listing, 0, len(rows))
	for _, r := range rows {
		listings = append(listings, market.Listing{
			ID:            r.ID,
			City:          r.City.String,
			Neighbourhood: r.Neighbourhood.String,
			Price:         nullableFloat(r.Price),
			DaysRented:    nullableFloat(r.DaysRented),
			Amenities:     r.Amenities.String,
			Bedrooms:      nullableFloat(r.Bedrooms),
			Bathrooms:     nullableFloat(r.Bathrooms),
			Reviews:       nullableFloat(r.Reviews),
			Latitude:      nullableFloat(r.Latitude),
			Longitude:     nullableFloat(r.Longitude),
		})
	}

	// The relational schema is fixed, so every column is present.
	columns := make(market.ColumnSet)
	for _, col := range []string{
		market.ColID, market.ColCity, market.ColNeighbourhood,
		market.ColPrice, market.ColDaysRented, market.ColAmenities,
		market.ColBedrooms, market.ColBathrooms, market.ColNumberOfReviews,
		market.ColLatitude, market.ColLongitude,
	} {
		columns.Add(col)
	}

	return market.NewListingSet(listings, columns), nil
}

// LoadSalePrices reads the comparable housing-sales table
func (s *marketSource) LoadSalePrices(ctx context.Context) (*market.SalePriceSet, error) {
	query := `SELECT neighbourhood, price_per_m2 FROM housing_sales`

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query housing sales: %w", err)
	}
	defer rows.Close()

	var records []market.SalePriceRecord
	for rows.Next() {
		var neighbourhood sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&neighbourhood, &price); err != nil {
			return nil, fmt.Errorf("failed to scan housing sale row: %w", err)
		}
		records = append(records, market.SalePriceRecord{
			Neighbourhood: neighbourhood.String,
			PricePerM2:    nullableFloat(price),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read housing sales: %w", err)
	}

	return &market.SalePriceSet{Records: records, HasPrice: true}, nil
}

// LoadCrimeStats reads the crime-statistics table, synthetic Total rows
// included
func (s *marketSource) LoadCrimeStats(ctx context.Context) (*market.CrimeSet, error) {
	query := `SELECT category, year, reports FROM crime_reports ORDER BY year, category`

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query crime reports: %w", err)
	}
	defer rows.Close()

	var records []market.CrimeRecord
	for rows.Next() {
		var record market.CrimeRecord
		if err := rows.Scan(&record.Category, &record.Year, &record.Reports); err != nil {
			return nil, fmt.Errorf("failed to scan crime row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crime reports: %w", err)
	}

	return &market.CrimeSet{Records: records}, nil
}
