// Package testkit provides deterministic sample datasets for tests.
package testkit

import (
	"context"

	"inmopanel/domain/market"
)

// SampleListings returns a small Valencia/Malaga listing table with every
// source column present
func SampleListings() *market.ListingSet {
	columns := make(market.ColumnSet)
	for _, col := range []string{
		market.ColID, market.ColCity, market.ColNeighbourhood,
		market.ColPrice, market.ColDaysRented, market.ColAmenities,
		market.ColBedrooms, market.ColBathrooms, market.ColNumberOfReviews,
		market.ColLatitude, market.ColLongitude,
	} {
		columns.Add(col)
	}

	rows := []market.Listing{
		{ID: "1", City: "Valencia", Neighbourhood: "Russafa", Price: 50, DaysRented: 100, Amenities: "Wifi,Kitchen,Heating", Bedrooms: 2, Bathrooms: 1, Reviews: 120, Latitude: 39.4600, Longitude: -0.3750},
		{ID: "2", City: "Valencia", Neighbourhood: "Russafa", Price: 80, DaysRented: 200, Amenities: "Wifi,Kitchen", Bedrooms: 3, Bathrooms: 2, Reviews: 45, Latitude: 39.4612, Longitude: -0.3741},
		{ID: "3", City: "Valencia", Neighbourhood: "El Carmen", Price: 65, DaysRented: 25, Amenities: "Wifi", Bedrooms: 1, Bathrooms: 1, Reviews: 10, Latitude: 39.4780, Longitude: -0.3790},
		{ID: "4", City: "Valencia", Neighbourhood: "Benimaclet", Price: 40, DaysRented: 150, Amenities: "Wifi,Kitchen,Washer,Dryer", Bedrooms: 2, Bathrooms: 1, Reviews: 60, Latitude: 39.4850, Longitude: -0.3600},
		{ID: "5", City: "Malaga", Neighbourhood: "Soho", Price: 70, DaysRented: 180, Amenities: "Wifi,Pool", Bedrooms: 2, Bathrooms: 2, Reviews: 90, Latitude: 36.7180, Longitude: -4.4220},
	}

	return market.NewListingSet(rows, columns)
}

// SampleSalePrices returns sale records whose city-wide mean price is 2500
func SampleSalePrices() *market.SalePriceSet {
	return &market.SalePriceSet{
		HasPrice: true,
		Records: []market.SalePriceRecord{
			{Neighbourhood: "Russafa", PricePerM2: 3000},
			{Neighbourhood: "El Carmen", PricePerM2: 2500},
			{Neighbourhood: "Benimaclet", PricePerM2: 2000},
		},
	}
}

// SampleCrime returns crime records including the synthetic Total rows
func SampleCrime() *market.CrimeSet {
	return &market.CrimeSet{
		Records: []market.CrimeRecord{
			{Category: "Robos", Year: 2021, Reports: 120},
			{Category: "Hurtos", Year: 2021, Reports: 300},
			{Category: "Total", Year: 2021, Reports: 420},
			{Category: "Robos", Year: 2022, Reports: 100},
			{Category: "Hurtos", Year: 2022, Reports: 280},
			{Category: "Total", Year: 2022, Reports: 380},
		},
	}
}

// StaticSource is an in-memory market data source for tests
type StaticSource struct {
	Listings   *market.ListingSet
	SalePrices *market.SalePriceSet
	Crime      *market.CrimeSet

	Err       error // returned by every Load call when set
	LoadCalls int   // counts LoadListings invocations
}

// NewStaticSource builds a source over the sample datasets
func NewStaticSource() *StaticSource {
	return &StaticSource{
		Listings:   SampleListings(),
		SalePrices: SampleSalePrices(),
		Crime:      SampleCrime(),
	}
}

func (s *StaticSource) LoadListings(ctx context.Context) (*market.ListingSet, error) {
	s.LoadCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Listings, nil
}

func (s *StaticSource) LoadSalePrices(ctx context.Context) (*market.SalePriceSet, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.SalePrices, nil
}

func (s *StaticSource) LoadCrimeStats(ctx context.Context) (*market.CrimeSet, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Crime, nil
}
