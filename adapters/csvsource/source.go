package csvsource

import (
	"context"

	"inmopanel/domain/market"
)

// Source reads the three dashboard datasets from delimited files
type Source struct {
	ListingsPath   string
	HousingPath    string
	CrimePath      string
	CrimeDelimiter rune
}

// NewSource creates a CSV-backed market data source. The crime file uses a
// non-default delimiter (semicolon in the published dataset).
func NewSource(listingsPath, housingPath, crimePath string, crimeDelimiter rune) *Source {
	if crimeDelimiter == 0 {
		crimeDelimiter = ';'
	}
	return &Source{
		ListingsPath:   listingsPath,
		HousingPath:    housingPath,
		CrimePath:      crimePath,
		CrimeDelimiter: crimeDelimiter,
	}
}

// LoadListings reads the rental-listings table
func (s *Source) LoadListings(ctx context.Context) (*market.ListingSet, error) {
	table, err := ReadTable(s.ListingsPath, ',')
	if err != nil {
		return nil, err
	}

	columns := make(market.ColumnSet)
	indexes := make(map[string]int)
	for _, col := range []string{
		market.ColID,
		market.ColCity,
		market.ColNeighbourhood,
		market.ColPrice,
		market.ColDaysRented,
		market.ColAmenities,
		market.ColBedrooms,
		market.ColBathrooms,
		market.ColNumberOfReviews,
		market.ColLatitude,
		market.ColLongitude,
	} {
		idx := table.ColumnIndex(col)
		indexes[col] = idx
		if idx >= 0 {
			columns.Add(col)
		}
	}

	rows := make([]market.Listing, 0, len(table.Rows))
	for _, record := range table.Rows {
		rows = append(rows, market.Listing{
			ID:            cell(record, indexes[market.ColID]),
			City:          cell(record, indexes[market.ColCity]),
			Neighbourhood: cell(record, indexes[market.ColNeighbourhood]),
			Price:         parseFloat(cell(record, indexes[market.ColPrice])),
			DaysRented:    parseFloat(cell(record, indexes[market.ColDaysRented])),
			Amenities:     cell(record, indexes[market.ColAmenities]),
			Bedrooms:      parseFloat(cell(record, indexes[market.ColBedrooms])),
			Bathrooms:     parseFloat(cell(record, indexes[market.ColBathrooms])),
			Reviews:       parseFloat(cell(record, indexes[market.ColNumberOfReviews])),
			Latitude:      parseFloat(cell(record, indexes[market.ColLatitude])),
			Longitude:     parseFloat(cell(record, indexes[market.ColLongitude])),
		})
	}

	return market.NewListingSet(rows, columns), nil
}

// LoadSalePrices reads the comparable housing-sales table
func (s *Source) LoadSalePrices(ctx context.Context) (*market.SalePriceSet, error) {
	table, err := ReadTable(s.HousingPath, ',')
	if err != nil {
		return nil, err
	}

	neighbourhoodIdx := table.ColumnIndex(market.ColSaleNeighbourhood)
	priceIdx := table.ColumnIndex(market.ColSalePrice)

	records := make([]market.SalePriceRecord, 0, len(table.Rows))
	for _, record := range table.Rows {
		price := market.Missing()
		if priceIdx >= 0 {
			price = parseFloat(cell(record, priceIdx))
		}
		records = append(records, market.SalePriceRecord{
			Neighbourhood: cell(record, neighbourhoodIdx),
			PricePerM2:    price,
		})
	}

	return &market.SalePriceSet{Records: records, HasPrice: priceIdx >= 0}, nil
}

// LoadCrimeStats reads the crime-statistics table, Total rows included; the
// views exclude them before aggregation
func (s *Source) LoadCrimeStats(ctx context.Context) (*market.CrimeSet, error) {
	table, err := ReadTable(s.CrimePath, s.CrimeDelimiter)
	if err != nil {
		return nil, err
	}

	categoryIdx := table.ColumnIndex(market.ColCrimeCategory)
	yearIdx := table.ColumnIndex(market.ColCrimeYear)
	reportsIdx := table.ColumnIndex(market.ColCrimeReports)

	records := make([]market.CrimeRecord, 0, len(table.Rows))
	for _, record := range table.Rows {
		// A row without a parsable year has no bucket to group under.
		year, ok := parseInt(cell(record, yearIdx))
		if !ok {
			continue
		}
		records = append(records, market.CrimeRecord{
			Category: cell(record, categoryIdx),
			Year:     year,
			Reports:  parseFloat(cell(record, reportsIdx)),
		})
	}

	return &market.CrimeSet{Records: records}, nil
}
