package csvsource

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmopanel/domain/market"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadListings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "listings.csv",
		"id,city,neighbourhood,price,days_rented,amenities,number_of_reviews\n"+
			"1,Valencia,Russafa,50,100,\"Wifi,Kitchen\",12\n"+
			"2,Valencia,El Carmen,not-a-number,,Wifi,3\n")

	source := NewSource(path, "", "", ';')
	listings, err := source.LoadListings(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, listings.Len())
	assert.True(t, listings.Columns.Has(market.ColPrice))
	assert.True(t, listings.Columns.Has(market.ColAmenities))
	// bedrooms and latitude were not in the header
	assert.False(t, listings.Columns.Has(market.ColBedrooms))
	assert.False(t, listings.Columns.Has(market.ColLatitude))

	assert.Equal(t, "Russafa", listings.Rows[0].Neighbourhood)
	assert.Equal(t, "Wifi,Kitchen", listings.Rows[0].Amenities)
	assert.Equal(t, 50.0, listings.Rows[0].Price)

	// Unparsable and empty cells coerce to missing, not to errors.
	assert.True(t, math.IsNaN(listings.Rows[1].Price))
	assert.True(t, math.IsNaN(listings.Rows[1].DaysRented))
}

func TestLoadListingsMissingFile(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "absent.csv"), "", "", ';')
	_, err := source.LoadListings(context.Background())
	assert.Error(t, err)
}

func TestLoadSalePrices(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "housing.csv",
		"neighbourhood,precio\nRussafa,2500\nEl Carmen,\n")

	source := NewSource("", path, "", ';')
	sales, err := source.LoadSalePrices(context.Background())
	require.NoError(t, err)

	assert.True(t, sales.HasPrice)
	require.Len(t, sales.Records, 2)
	assert.Equal(t, 2500.0, sales.Records[0].PricePerM2)
	assert.True(t, math.IsNaN(sales.Records[1].PricePerM2))
}

func TestLoadSalePricesWithoutPriceColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "housing.csv",
		"neighbourhood,superficie\nRussafa,80\n")

	source := NewSource("", path, "", ';')
	sales, err := source.LoadSalePrices(context.Background())
	require.NoError(t, err)
	assert.False(t, sales.HasPrice)
}

func TestLoadCrimeStatsSemicolonDelimited(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "crime.csv",
		"Parámetro;Año;Denuncias\nRobos;2021;120\nTotal;2021;420\n")

	source := NewSource("", "", path, ';')
	crime, err := source.LoadCrimeStats(context.Background())
	require.NoError(t, err)

	require.Len(t, crime.Records, 2)
	assert.Equal(t, "Robos", crime.Records[0].Category)
	assert.Equal(t, 2021, crime.Records[0].Year)
	assert.Equal(t, 120.0, crime.Records[0].Reports)

	// The synthetic Total row survives loading; views drop it later.
	withoutTotals := crime.WithoutTotals()
	require.Len(t, withoutTotals, 1)
	assert.Equal(t, "Robos", withoutTotals[0].Category)
}

func TestLoadCrimeStatsDropsRowsWithoutYear(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "crime.csv",
		"Parámetro;Año;Denuncias\nRobos;2021;120\nHurtos;;90\nEstafas;n/a;50\n")

	source := NewSource("", "", path, ';')
	crime, err := source.LoadCrimeStats(context.Background())
	require.NoError(t, err)

	// Rows without a parsable year would otherwise group under a fabricated
	// year-0 bucket.
	require.Len(t, crime.Records, 1)
	assert.Equal(t, "Robos", crime.Records[0].Category)
	assert.Equal(t, 2021, crime.Records[0].Year)
}

func TestReadTableRejectsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "a,b\n1,2,3\n")

	_, err := ReadTable(path, ',')
	assert.Error(t, err)
}
