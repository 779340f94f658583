package market

// Sale-price dataset column names.
const (
	ColSaleNeighbourhood = "neighbourhood"
	ColSalePrice         = "precio"
)

// SalePriceRecord is one comparable housing sale, price in EUR per m²
type SalePriceRecord struct {
	Neighbourhood string
	PricePerM2    float64
}

// SalePriceSet is the housing sale-price table. HasPrice is false when the
// source lacked the price column entirely, which switches the metrics engine
// to its fallback reference price.
type SalePriceSet struct {
	Records  []SalePriceRecord
	HasPrice bool
}

// Crime dataset column names (semicolon-delimited source).
const (
	ColCrimeCategory = "Parámetro"
	ColCrimeYear     = "Año"
	ColCrimeReports  = "Denuncias"

	// CrimeTotalCategory is the synthetic per-year aggregate row present in
	// the source; it must be excluded before any aggregation.
	CrimeTotalCategory = "Total"
)

// CrimeRecord is one reported-incident count for a category and year
type CrimeRecord struct {
	Category string
	Year     int
	Reports  float64
}

// CrimeSet is the crime-statistics table for a fixed city
type CrimeSet struct {
	Records []CrimeRecord
}

// WithoutTotals returns the records minus the synthetic Total rows
func (c *CrimeSet) WithoutTotals() []CrimeRecord {
	out := make([]CrimeRecord, 0, len(c.Records))
	for _, r := range c.Records {
		if r.Category == CrimeTotalCategory {
			continue
		}
		out = append(out, r)
	}
	return out
}
