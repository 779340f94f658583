// Package export serializes the filtered, metric-augmented listing table for
// download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"inmopanel/domain/market"
)

// Fixed download names offered to the user.
const (
	CSVFileName  = "valencia_inmobiliario.csv"
	XLSXFileName = "valencia_inmobiliario.xlsx"
)

// xlsxSheet is the sheet holding the exported table
const xlsxSheet = "Listados"

// columnOrder is the canonical export order: source columns first, derived
// metrics last
var columnOrder = []string{
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
	market.ColAnnualIncome,
	market.ColEstimatedPropertyValue,
	market.ColGrossROI,
	market.ColNetAnnualIncome,
	market.ColNetROI,
}

// headers lists the columns actually present in the set, in canonical order
func headers(set *market.ListingSet) []string {
	out := make([]string, 0, len(columnOrder))
	for _, col := range columnOrder {
		if set.Columns.Has(col) {
			out = append(out, col)
		}
	}
	return out
}

// formatNumber renders a float cell; missing values export as empty cells
func formatNumber(v float64) string {
	if market.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cellValue extracts a listing field as its export string
func cellValue(row market.Listing, column string) string {
	switch column {
	case market.ColID:
		return row.ID
	case market.ColCity:
		return row.City
	case market.ColNeighbourhood:
		return row.Neighbourhood
	case market.ColPrice:
		return formatNumber(row.Price)
	case market.ColDaysRented:
		return formatNumber(row.DaysRented)
	case market.ColAmenities:
		return row.Amenities
	case market.ColBedrooms:
		return formatNumber(row.Bedrooms)
	case market.ColBathrooms:
		return formatNumber(row.Bathrooms)
	case market.ColNumberOfReviews:
		return formatNumber(row.Reviews)
	case market.ColLatitude:
		return formatNumber(row.Latitude)
	case market.ColLongitude:
		return formatNumber(row.Longitude)
	case market.ColAnnualIncome:
		return formatNumber(row.AnnualIncome)
	case market.ColEstimatedPropertyValue:
		return formatNumber(row.EstimatedPropertyValue)
	case market.ColGrossROI:
		return formatNumber(row.GrossROIPct)
	case market.ColNetAnnualIncome:
		return formatNumber(row.NetAnnualIncome)
	case market.ColNetROI:
		return formatNumber(row.NetROIPct)
	}
	return ""
}

// WriteCSV streams the set as comma-delimited UTF-8 text
func WriteCSV(w io.Writer, set *market.ListingSet) error {
	writer := csv.NewWriter(w)

	cols := headers(set)
	if err := writer.Write(cols); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(cols))
	for _, row := range set.Rows {
		for i, col := range cols {
			record[i] = cellValue(row, col)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the set as an Excel workbook
func WriteXLSX(w io.Writer, set *market.ListingSet) error {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	cols := headers(set)
	for i, col := range cols {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := file.SetCellValue(xlsxSheet, cellName, col); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for r, row := range set.Rows {
		for i, col := range cols {
			cellName, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := file.SetCellValue(xlsxSheet, cellName, cellValue(row, col)); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
