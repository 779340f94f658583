// Package analysis computes the read-only aggregations behind the dashboard
// views. Inputs are never mutated; every view degrades independently when an
// optional column is absent.
package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"inmopanel/domain/market"
)

// TopNeighbourhoods is the ranking cutoff used across the views
const TopNeighbourhoods = 15

// RankingEntry is one neighbourhood with its aggregated value
type RankingEntry struct {
	Neighbourhood string  `json:"neighbourhood"`
	Value         float64 `json:"value"`
}

// Ranking is an ordered neighbourhood chart, highest value first
type Ranking struct {
	Title   string         `json:"title"`
	Entries []RankingEntry `json:"entries"`
	Notice  string         `json:"notice,omitempty"`
}

// isFinite reports whether a value can appear in a JSON payload; NaN and
// ±Inf cannot be marshalled
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// groupValues collects the finite values of one listing field per
// neighbourhood
func groupValues(rows []market.Listing, value func(market.Listing) float64) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, row := range rows {
		if row.Neighbourhood == "" {
			continue
		}
		v := value(row)
		if !isFinite(v) {
			continue
		}
		groups[row.Neighbourhood] = append(groups[row.Neighbourhood], v)
	}
	return groups
}

// meanByNeighbourhood reduces grouped values to per-neighbourhood means
func meanByNeighbourhood(rows []market.Listing, value func(market.Listing) float64) map[string]float64 {
	out := make(map[string]float64)
	for name, values := range groupValues(rows, value) {
		if mean, err := stats.Mean(values); err == nil {
			out[name] = mean
		}
	}
	return out
}

// sumByNeighbourhood reduces grouped values to per-neighbourhood sums
func sumByNeighbourhood(rows []market.Listing, value func(market.Listing) float64) map[string]float64 {
	out := make(map[string]float64)
	for name, values := range groupValues(rows, value) {
		if sum, err := stats.Sum(values); err == nil {
			out[name] = sum
		}
	}
	return out
}

// countByNeighbourhood counts rows per neighbourhood
func countByNeighbourhood(rows []market.Listing) map[string]float64 {
	out := make(map[string]float64)
	for _, row := range rows {
		if row.Neighbourhood == "" {
			continue
		}
		out[row.Neighbourhood]++
	}
	return out
}

// topEntries orders a neighbourhood→value map descending by value and keeps
// the first limit entries. Ties break alphabetically so output is stable.
func topEntries(byNeighbourhood map[string]float64, limit int) []RankingEntry {
	entries := make([]RankingEntry, 0, len(byNeighbourhood))
	for name, value := range byNeighbourhood {
		entries = append(entries, RankingEntry{Neighbourhood: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Neighbourhood < entries[j].Neighbourhood
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// topNeighbourhoodsByCount returns the busiest neighbourhoods, for boxplot
// row selection
func topNeighbourhoodsByCount(rows []market.Listing, limit int) []string {
	entries := topEntries(countByNeighbourhood(rows), limit)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Neighbourhood
	}
	return names
}

// collect gathers the finite values of one field across all rows
func collect(rows []market.Listing, value func(market.Listing) float64) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		v := value(row)
		if !isFinite(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// safeMean is a NaN-free mean for JSON payloads: zero when nothing is usable
func safeMean(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}
