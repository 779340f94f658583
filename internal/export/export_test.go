package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"inmopanel/domain/market"
	"inmopanel/internal/testkit"
)

func augmentedSample(t *testing.T) *market.ListingSet {
	t.Helper()
	return market.ComputeMetrics(testkit.SampleListings(), testkit.SampleSalePrices(), market.DefaultMetricsConfig())
}

func TestWriteCSV(t *testing.T) {
	set := augmentedSample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, set))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, set.Len()+1)

	header := records[0]
	assert.Equal(t, "id", header[0])
	assert.Contains(t, header, market.ColGrossROI)
	assert.Contains(t, header, market.ColNetROI)
	assert.Contains(t, header, market.ColEstimatedPropertyValue)

	// Quoted amenity lists survive the round trip.
	assert.Equal(t, "Wifi,Kitchen,Heating", records[1][5])
}

func TestWriteCSVMissingValuesAsEmptyCells(t *testing.T) {
	columns := make(market.ColumnSet)
	columns.Add(market.ColID)
	columns.Add(market.ColPrice)
	set := market.NewListingSet([]market.Listing{
		{ID: "1", Price: market.Missing()},
	}, columns)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, set))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "price"}, records[0])
	assert.Equal(t, []string{"1", ""}, records[1])
}

func TestWriteCSVOmitsAbsentColumns(t *testing.T) {
	columns := make(market.ColumnSet)
	columns.Add(market.ColID)
	columns.Add(market.ColNeighbourhood)
	set := market.NewListingSet([]market.Listing{
		{ID: "1", Neighbourhood: "Russafa"},
	}, columns)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, set))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "id,neighbourhood", lines[0])
}

func TestWriteXLSX(t *testing.T) {
	set := augmentedSample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, set))

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, set.Len()+1)
	assert.Equal(t, "id", rows[0][0])
}
