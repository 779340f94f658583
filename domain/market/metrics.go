package market

import (
	"github.com/montanaflynn/stats"
)

// MetricsConfig carries the valuation policy values. Defaults match the
// figures the dashboard has always used.
type MetricsConfig struct {
	AverageUnitM2       float64 // assumed unit size in m² for valuation, default 70
	AnnualOperatingCost float64 // fixed yearly operating cost in EUR, default 3000
	FallbackPricePerM2  float64 // reference price when sales data has no price column, default 2000
}

// DefaultMetricsConfig returns the standard policy values
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		AverageUnitM2:       70,
		AnnualOperatingCost: 3000,
		FallbackPricePerM2:  2000,
	}
}

// ReferencePricePerM2 computes the city-wide mean sale price per m², ignoring
// missing values. Without a price column the fallback constant applies; with
// a price column but no usable values the result is NaN, matching a mean
// over an all-missing column.
func ReferencePricePerM2(sales *SalePriceSet, cfg MetricsConfig) float64 {
	if sales == nil || !sales.HasPrice {
		return cfg.FallbackPricePerM2
	}
	values := make([]float64, 0, len(sales.Records))
	for _, r := range sales.Records {
		if IsMissing(r.PricePerM2) {
			continue
		}
		values = append(values, r.PricePerM2)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return Missing()
	}
	return mean
}

// ComputeMetrics derives the five investment metrics for every listing row.
// The estimated property value is a single scalar broadcast to all rows: the
// city-wide mean sale price per m² times the configured average unit size.
// It is not neighbourhood-specific. No row is dropped or added;
// a derived field is NaN only when one of its per-row inputs was missing.
func ComputeMetrics(listings *ListingSet, sales *SalePriceSet, cfg MetricsConfig) *ListingSet {
	referencePrice := ReferencePricePerM2(sales, cfg)
	propertyValue := referencePrice * cfg.AverageUnitM2

	rows := make([]Listing, len(listings.Rows))
	copy(rows, listings.Rows)

	hasPrice := listings.Columns.Has(ColPrice)
	hasDays := listings.Columns.Has(ColDaysRented)

	for i := range rows {
		price := rows[i].Price
		days := rows[i].DaysRented
		if !hasPrice {
			price = Missing()
		}
		if !hasDays {
			days = Missing()
		}

		rows[i].AnnualIncome = price * days
		rows[i].EstimatedPropertyValue = propertyValue
		rows[i].GrossROIPct = rows[i].AnnualIncome / propertyValue * 100
		rows[i].NetAnnualIncome = rows[i].AnnualIncome - cfg.AnnualOperatingCost
		rows[i].NetROIPct = rows[i].NetAnnualIncome / propertyValue * 100
	}

	columns := listings.Columns.Clone()
	for _, col := range []string{
		ColAnnualIncome,
		ColEstimatedPropertyValue,
		ColGrossROI,
		ColNetAnnualIncome,
		ColNetROI,
	} {
		columns.Add(col)
	}

	return NewListingSet(rows, columns)
}
