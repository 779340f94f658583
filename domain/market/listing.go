// Package market holds the rental-market data model together with the
// derived-metrics and filtering logic that turns raw listing rows into
// investment-ready numbers.
package market

import "math"

// Source column names for the listings dataset.
const (
	ColID              = "id"
	ColCity            = "city"
	ColNeighbourhood   = "neighbourhood"
	ColPrice           = "price"
	ColDaysRented      = "days_rented"
	ColAmenities       = "amenities"
	ColBedrooms        = "bedrooms"
	ColBathrooms       = "bathrooms"
	ColNumberOfReviews = "number_of_reviews"
	ColLatitude        = "latitude"
	ColLongitude       = "longitude"
)

// Derived column names added by ComputeMetrics.
const (
	ColAnnualIncome           = "annual_income"
	ColEstimatedPropertyValue = "estimated_property_value"
	ColGrossROI               = "ROI (%)"
	ColNetAnnualIncome        = "net_annual_income"
	ColNetROI                 = "Net ROI (%)"
)

// Listing is one short-term-rental unit record. Numeric fields are NaN when
// the value was missing or unparsable in the source.
type Listing struct {
	ID            string
	City          string
	Neighbourhood string
	Price         float64
	DaysRented    float64
	Amenities     string
	Bedrooms      float64
	Bathrooms     float64
	Reviews       float64
	Latitude      float64
	Longitude     float64

	// Derived investment metrics, populated by ComputeMetrics.
	AnnualIncome           float64
	EstimatedPropertyValue float64
	GrossROIPct            float64
	NetAnnualIncome        float64
	NetROIPct              float64
}

// ColumnSet records which columns were actually present in a source table,
// so views can degrade per-column instead of failing on absent optionals.
type ColumnSet map[string]bool

// Has reports whether the named column was present in the source
func (c ColumnSet) Has(name string) bool {
	return c[name]
}

// Add marks a column as present
func (c ColumnSet) Add(name string) {
	c[name] = true
}

// Clone returns an independent copy of the column set
func (c ColumnSet) Clone() ColumnSet {
	out := make(ColumnSet, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ListingSet is an in-memory listings table plus its column inventory
type ListingSet struct {
	Rows    []Listing
	Columns ColumnSet
}

// NewListingSet builds a set over the given rows with the given columns
func NewListingSet(rows []Listing, columns ColumnSet) *ListingSet {
	if columns == nil {
		columns = make(ColumnSet)
	}
	return &ListingSet{Rows: rows, Columns: columns}
}

// Len returns the number of listing rows
func (s *ListingSet) Len() int {
	return len(s.Rows)
}

// IsEmpty reports whether the set has no rows
func (s *ListingSet) IsEmpty() bool {
	return len(s.Rows) == 0
}

// IsMissing reports whether a numeric cell carried no usable value
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing is the sentinel for absent numeric cells
func Missing() float64 {
	return math.NaN()
}
