package analysis

import (
	"sort"

	"inmopanel/domain/market"
)

// CrimeBar is one grouped-bar value: reports for a category in a year
type CrimeBar struct {
	Year     int     `json:"year"`
	Category string  `json:"category"`
	Reports  float64 `json:"reports"`
}

// CrimeHeatmap is the category×year pivot of summed report counts; missing
// cells are zero-filled
type CrimeHeatmap struct {
	Categories []string    `json:"categories"`
	Years      []int       `json:"years"`
	Values     [][]float64 `json:"values"` // indexed [category][year]
}

// CrimeView carries the reported-crime charts for the fixed city
type CrimeView struct {
	Bars    []CrimeBar    `json:"bars"`
	Heatmap *CrimeHeatmap `json:"heatmap,omitempty"`
	Notice  string        `json:"notice,omitempty"`
}

// BuildCrimeView aggregates reported incidents per category and year. The
// synthetic Total rows are dropped before aggregation so they cannot double
// the counts.
func BuildCrimeView(crime *market.CrimeSet) *CrimeView {
	view := &CrimeView{}
	if crime == nil || len(crime.Records) == 0 {
		view.Notice = "no crime data to show"
		return view
	}

	records := crime.WithoutTotals()
	if len(records) == 0 {
		view.Notice = "no crime data to show"
		return view
	}

	type key struct {
		year     int
		category string
	}
	sums := make(map[key]float64)
	yearSet := make(map[int]bool)
	categorySet := make(map[string]bool)
	for _, r := range records {
		if !isFinite(r.Reports) {
			continue
		}
		sums[key{r.Year, r.Category}] += r.Reports
		yearSet[r.Year] = true
		categorySet[r.Category] = true
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, y := range years {
		for _, c := range categories {
			if reports, ok := sums[key{y, c}]; ok {
				view.Bars = append(view.Bars, CrimeBar{Year: y, Category: c, Reports: reports})
			}
		}
	}

	values := make([][]float64, len(categories))
	for i, c := range categories {
		values[i] = make([]float64, len(years))
		for j, y := range years {
			values[i][j] = sums[key{y, c}]
		}
	}
	view.Heatmap = &CrimeHeatmap{Categories: categories, Years: years, Values: values}

	return view
}
