package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmopanel/domain/market"
	"inmopanel/internal/testkit"
)

func augmentedSample(t *testing.T) *market.ListingSet {
	t.Helper()
	return market.ComputeMetrics(testkit.SampleListings(), testkit.SampleSalePrices(), market.DefaultMetricsConfig())
}

func valenciaSample(t *testing.T) *market.ListingSet {
	t.Helper()
	filtered, _, err := market.Filter(augmentedSample(t), market.Selection{City: "Valencia"})
	require.NoError(t, err)
	return filtered
}

func TestBuildOverview(t *testing.T) {
	view := BuildOverview(augmentedSample(t))

	assert.Equal(t, 5, view.ListingCount)
	assert.InDelta(t, 61.0, view.MeanPrice, 1e-9)
	require.NotNil(t, view.GrossROI)
	require.NotNil(t, view.NetROI)
	assert.Len(t, view.GrossROI.X, kdeGridPoints+1)
	assert.Equal(t, 0.0, view.GrossROI.X[0])
	assert.Equal(t, 50.0, view.GrossROI.X[kdeGridPoints])
	assert.Empty(t, view.Notice)
}

func TestBuildOverviewTooFewRowsForDensity(t *testing.T) {
	set := augmentedSample(t)
	single := market.NewListingSet(set.Rows[:1], set.Columns)

	view := BuildOverview(single)
	assert.Equal(t, 1, view.ListingCount)
	assert.Nil(t, view.GrossROI)
	assert.NotEmpty(t, view.Notice)
}

func TestHousingPriceRanking(t *testing.T) {
	ranking := HousingPriceRanking(testkit.SampleSalePrices())

	require.Len(t, ranking.Entries, 3)
	assert.Equal(t, "Russafa", ranking.Entries[0].Neighbourhood)
	assert.InDelta(t, 3000, ranking.Entries[0].Value, 1e-9)
	assert.Equal(t, "Benimaclet", ranking.Entries[2].Neighbourhood)
}

func TestHousingPriceRankingWithoutPriceColumn(t *testing.T) {
	ranking := HousingPriceRanking(&market.SalePriceSet{HasPrice: false})
	assert.Empty(t, ranking.Entries)
	assert.NotEmpty(t, ranking.Notice)
}

func TestBuildProfitabilityOrdering(t *testing.T) {
	view := BuildProfitability(valenciaSample(t))

	require.NotEmpty(t, view.NetROI.Entries)
	require.NotEmpty(t, view.GrossROI.Entries)
	for i := 1; i < len(view.NetROI.Entries); i++ {
		assert.GreaterOrEqual(t, view.NetROI.Entries[i-1].Value, view.NetROI.Entries[i].Value)
	}
}

func TestBuildCompetition(t *testing.T) {
	view := BuildCompetition(valenciaSample(t))

	require.NotEmpty(t, view.Listings.Entries)
	assert.Equal(t, "Russafa", view.Listings.Entries[0].Neighbourhood)
	assert.Equal(t, 2.0, view.Listings.Entries[0].Value)

	// El Carmen's only listing is rented 25 days, below the active bar.
	for _, entry := range view.ActiveListings.Entries {
		assert.NotEqual(t, "El Carmen", entry.Neighbourhood)
	}
}

func TestBuildCompetitionWithoutDaysRented(t *testing.T) {
	set := valenciaSample(t)
	columns := set.Columns.Clone()
	delete(columns, market.ColDaysRented)
	view := BuildCompetition(market.NewListingSet(set.Rows, columns))

	assert.NotEmpty(t, view.Listings.Entries)
	assert.Empty(t, view.ActiveListings.Entries)
	assert.NotEmpty(t, view.ActiveListings.Notice)
}

func TestAmenityCount(t *testing.T) {
	assert.Equal(t, 3.0, amenityCount("Wifi,Kitchen,Heating"))
	assert.Equal(t, 1.0, amenityCount("Wifi"))
	assert.True(t, market.IsMissing(amenityCount("")))
}

func TestBuildAdvancedScatterPerListingForValencia(t *testing.T) {
	view := BuildAdvanced(valenciaSample(t), testkit.SampleCrime())

	require.NotNil(t, view.PriceVsNetROI)
	assert.True(t, view.PriceVsNetROI.PerListing)
	assert.Len(t, view.PriceVsNetROI.Points, 4)
}

func TestBuildAdvancedScatterCollapsesForMixedCities(t *testing.T) {
	view := BuildAdvanced(augmentedSample(t), testkit.SampleCrime())

	require.NotNil(t, view.PriceVsNetROI)
	assert.False(t, view.PriceVsNetROI.PerListing)
	// One point per neighbourhood mean.
	assert.Len(t, view.PriceVsNetROI.Points, 4)
}

func TestBuildScatterConstantPriceMarshals(t *testing.T) {
	columns := make(market.ColumnSet)
	for _, col := range []string{market.ColCity, market.ColNeighbourhood, market.ColPrice} {
		columns.Add(col)
	}
	set := market.NewListingSet([]market.Listing{
		{City: "Valencia", Neighbourhood: "Russafa", Price: 50, NetROIPct: 1.5},
		{City: "Valencia", Neighbourhood: "El Carmen", Price: 50, NetROIPct: 2.5},
	}, columns)

	chart := buildScatter(set)
	require.Len(t, chart.Points, 2)
	// A constant axis has no defined correlation; the payload must still
	// serialize.
	assert.Equal(t, 0.0, chart.Correlation)

	_, err := json.Marshal(chart)
	require.NoError(t, err)
}

func TestViewsStayFiniteWithZeroReferencePrice(t *testing.T) {
	sales := &market.SalePriceSet{
		HasPrice: true,
		Records: []market.SalePriceRecord{
			{Neighbourhood: "Russafa", PricePerM2: 0},
		},
	}
	augmented := market.ComputeMetrics(testkit.SampleListings(), sales, market.DefaultMetricsConfig())
	filtered, _, err := market.Filter(augmented, market.Selection{City: "Valencia"})
	require.NoError(t, err)

	// A zero property value makes every ROI infinite; the charts must drop
	// those values instead of emitting them.
	view := BuildAdvanced(filtered, testkit.SampleCrime())
	assert.NotEmpty(t, view.NetROIHistogram.Notice)
	assert.Empty(t, view.PriceVsNetROI.Points)

	_, err = json.Marshal(view)
	require.NoError(t, err)

	overview := BuildOverview(filtered)
	assert.Equal(t, 0.0, overview.MeanNetROIPct)
	_, err = json.Marshal(overview)
	require.NoError(t, err)
}

func TestBuildAdvancedAmenitiesRanking(t *testing.T) {
	view := BuildAdvanced(valenciaSample(t), testkit.SampleCrime())

	require.NotEmpty(t, view.Amenities.Entries)
	assert.Equal(t, "Benimaclet", view.Amenities.Entries[0].Neighbourhood)
	assert.InDelta(t, 4.0, view.Amenities.Entries[0].Value, 1e-9)

	var russafa *RankingEntry
	for i := range view.Amenities.Entries {
		if view.Amenities.Entries[i].Neighbourhood == "Russafa" {
			russafa = &view.Amenities.Entries[i]
		}
	}
	require.NotNil(t, russafa)
	assert.InDelta(t, 2.5, russafa.Value, 1e-9)
}

func TestBuildAdvancedMapPoints(t *testing.T) {
	view := BuildAdvanced(valenciaSample(t), testkit.SampleCrime())
	assert.Len(t, view.MapPoints, 4)
	assert.Empty(t, view.MapNotice)

	set := valenciaSample(t)
	columns := set.Columns.Clone()
	delete(columns, market.ColLatitude)
	degraded := BuildAdvanced(market.NewListingSet(set.Rows, columns), testkit.SampleCrime())
	assert.Empty(t, degraded.MapPoints)
	assert.NotEmpty(t, degraded.MapNotice)
}

func TestBuildHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	hist := BuildHistogram("test", values, 5)

	require.Len(t, hist.Counts, 5)
	require.Len(t, hist.BinEdges, 6)
	total := 0
	for _, c := range hist.Counts {
		total += c
	}
	assert.Equal(t, len(values), total)
	assert.Equal(t, []int{2, 2, 2, 2, 2}, hist.Counts)
}

func TestBuildHistogramDegenerateRange(t *testing.T) {
	hist := BuildHistogram("test", []float64{5, 5, 5}, 40)
	assert.Equal(t, []int{3}, hist.Counts)
}

func TestSummarizeBoxOutliers(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	summary, ok := summarizeBox("Russafa", values)

	require.True(t, ok)
	assert.Contains(t, summary.Outliers, 100.0)
	assert.Equal(t, 1.0, summary.Min)
	assert.LessOrEqual(t, summary.Max, 9.0)
	assert.Less(t, summary.Q1, summary.Median)
	assert.Less(t, summary.Median, summary.Q3)
}

func TestBuildCrimeViewExcludesTotals(t *testing.T) {
	view := BuildCrimeView(testkit.SampleCrime())

	require.Len(t, view.Bars, 4)
	for _, bar := range view.Bars {
		assert.NotEqual(t, market.CrimeTotalCategory, bar.Category)
	}

	require.NotNil(t, view.Heatmap)
	assert.Equal(t, []string{"Hurtos", "Robos"}, view.Heatmap.Categories)
	assert.Equal(t, []int{2021, 2022}, view.Heatmap.Years)
	assert.Equal(t, 300.0, view.Heatmap.Values[0][0])
	assert.Equal(t, 100.0, view.Heatmap.Values[1][1])
}

func TestBuildCrimeViewEmpty(t *testing.T) {
	view := BuildCrimeView(&market.CrimeSet{})
	assert.Empty(t, view.Bars)
	assert.NotEmpty(t, view.Notice)
}

func TestBuildDensityNeedsVariance(t *testing.T) {
	assert.Nil(t, BuildDensity([]float64{1}, 0, 50, 0.7))
	assert.Nil(t, BuildDensity([]float64{3, 3, 3}, 0, 50, 0.7))

	curve := BuildDensity([]float64{1, 2, 3, 4, 5}, 0, 50, 0.7)
	require.NotNil(t, curve)
	assert.Len(t, curve.X, kdeGridPoints+1)
	assert.Len(t, curve.Y, kdeGridPoints+1)
}
