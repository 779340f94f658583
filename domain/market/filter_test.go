package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmopanel/domain/market"
	"inmopanel/internal/errors"
	"inmopanel/internal/testkit"
)

func TestFilterByCity(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		wantRows int
		wantCode string
	}{
		{name: "valencia lower case matches", city: "valencia", wantRows: 4},
		{name: "canonical casing matches", city: "Valencia", wantRows: 4},
		{name: "malaga matches single row", city: "MALAGA", wantRows: 1},
		{name: "madrid has no rows", city: "madrid", wantCode: errors.CodeNoMatchingData},
		{name: "no city keeps everything", city: "", wantRows: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, _, err := market.Filter(testkit.SampleListings(), market.Selection{City: tt.city})
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, filtered.Len())
		})
	}
}

func TestFilterCityEmptyBeforeUniverse(t *testing.T) {
	_, universe, err := market.Filter(testkit.SampleListings(), market.Selection{
		City:           "madrid",
		Neighbourhoods: []string{"Salamanca"},
	})

	require.Error(t, err)
	assert.Equal(t, errors.CodeNoMatchingData, errors.GetCode(err))
	// The city step empties the set before the universe can be computed.
	assert.Nil(t, universe)
}

func TestFilterNeighbourhoodsCaseSensitive(t *testing.T) {
	_, _, err := market.Filter(testkit.SampleListings(), market.Selection{
		City:           "Valencia",
		Neighbourhoods: []string{"russafa"},
	})

	require.Error(t, err)
	assert.Equal(t, errors.CodeNoMatchingData, errors.GetCode(err))
}

func TestFilterUniverseFromCityNarrowedSet(t *testing.T) {
	filtered, universe, err := market.Filter(testkit.SampleListings(), market.Selection{City: "Valencia"})
	require.NoError(t, err)

	// Sorted, and without Malaga's neighbourhoods.
	assert.Equal(t, []string{"Benimaclet", "El Carmen", "Russafa"}, universe)
	assert.Equal(t, 4, filtered.Len())
}

func TestFilterWithoutCityColumn(t *testing.T) {
	base := testkit.SampleListings()
	columns := base.Columns.Clone()
	delete(columns, market.ColCity)
	set := market.NewListingSet(base.Rows, columns)

	// The city step is skipped entirely, so the universe spans all rows.
	_, universe, err := market.Filter(set, market.Selection{City: "Valencia"})
	require.NoError(t, err)
	assert.Contains(t, universe, "Soho")
}

func TestFilterDefaultsToWholeUniverse(t *testing.T) {
	filtered, universe, err := market.Filter(testkit.SampleListings(), market.Selection{City: "Valencia"})
	require.NoError(t, err)

	explicit, _, err := market.Filter(testkit.SampleListings(), market.Selection{
		City:           "Valencia",
		Neighbourhoods: universe,
	})
	require.NoError(t, err)
	assert.Equal(t, filtered.Rows, explicit.Rows)
}

func TestFilterIdempotent(t *testing.T) {
	sel := market.Selection{City: "Valencia", Neighbourhoods: []string{"Russafa"}}

	once, _, err := market.Filter(testkit.SampleListings(), sel)
	require.NoError(t, err)
	twice, _, err := market.Filter(once, sel)
	require.NoError(t, err)

	assert.Equal(t, once.Rows, twice.Rows)
}

func TestFilterMonotonic(t *testing.T) {
	input := testkit.SampleListings()
	selections := []market.Selection{
		{},
		{City: "Valencia"},
		{City: "Valencia", Neighbourhoods: []string{"Russafa"}},
		{Neighbourhoods: []string{"Soho"}},
	}

	for _, sel := range selections {
		filtered, _, err := market.Filter(input, sel)
		if err != nil {
			continue
		}
		assert.LessOrEqual(t, filtered.Len(), input.Len())
	}
}

func TestIsKnownCity(t *testing.T) {
	assert.True(t, market.IsKnownCity("valencia"))
	assert.True(t, market.IsKnownCity("Barcelona"))
	assert.False(t, market.IsKnownCity("Paris"))
}
