package analysis

import (
	"github.com/montanaflynn/stats"

	"inmopanel/domain/market"
)

// ActiveDaysThreshold separates active listings from dormant ones: anything
// rented more than 30 days a year counts as active.
const ActiveDaysThreshold = 30.0

// HousingPriceRanking ranks neighbourhoods by mean sale price per m², from
// the unfiltered sale-price table
func HousingPriceRanking(sales *market.SalePriceSet) *Ranking {
	ranking := &Ranking{Title: "Top neighbourhoods by mean purchase price per m²"}
	if sales == nil || !sales.HasPrice {
		ranking.Notice = "no housing price data to show"
		return ranking
	}

	grouped := make(map[string][]float64)
	for _, r := range sales.Records {
		if r.Neighbourhood == "" || !isFinite(r.PricePerM2) {
			continue
		}
		grouped[r.Neighbourhood] = append(grouped[r.Neighbourhood], r.PricePerM2)
	}
	means := make(map[string]float64, len(grouped))
	for name, values := range grouped {
		if mean, err := stats.Mean(values); err == nil {
			means[name] = mean
		}
	}

	ranking.Entries = topEntries(means, TopNeighbourhoods)
	if len(ranking.Entries) == 0 {
		ranking.Notice = "no housing price data to show"
	}
	return ranking
}

// ProfitabilityView ranks neighbourhoods by mean net and gross ROI
type ProfitabilityView struct {
	NetROI   *Ranking `json:"net_roi"`
	GrossROI *Ranking `json:"gross_roi"`
}

// BuildProfitability computes both profitability rankings over the filtered
// set
func BuildProfitability(listings *market.ListingSet) *ProfitabilityView {
	net := &Ranking{
		Title: "Top neighbourhoods by net ROI (%)",
		Entries: topEntries(
			meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.NetROIPct }),
			TopNeighbourhoods),
	}
	gross := &Ranking{
		Title: "Top neighbourhoods by gross ROI (%)",
		Entries: topEntries(
			meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.GrossROIPct }),
			TopNeighbourhoods),
	}
	if len(net.Entries) == 0 {
		net.Notice = "no net ROI data to show"
	}
	if len(gross.Entries) == 0 {
		gross.Notice = "no gross ROI data to show"
	}
	return &ProfitabilityView{NetROI: net, GrossROI: gross}
}

// CompetitionView ranks neighbourhoods by listing supply
type CompetitionView struct {
	Listings       *Ranking `json:"listings"`
	ActiveListings *Ranking `json:"active_listings"`
}

// BuildCompetition counts listings, and active listings, per neighbourhood.
// The active chart needs the days-rented column and degrades on its own when
// that column is absent.
func BuildCompetition(listings *market.ListingSet) *CompetitionView {
	total := &Ranking{
		Title:   "Top neighbourhoods by number of listings",
		Entries: topEntries(countByNeighbourhood(listings.Rows), TopNeighbourhoods),
	}
	if len(total.Entries) == 0 {
		total.Notice = "no competition data to show"
	}

	active := &Ranking{Title: "Top neighbourhoods by active listings (>30 days rented/year)"}
	if !listings.Columns.Has(market.ColDaysRented) {
		active.Notice = "no days-rented data to identify active listings"
		return &CompetitionView{Listings: total, ActiveListings: active}
	}

	counts := make(map[string]float64)
	for _, row := range listings.Rows {
		if row.Neighbourhood == "" || market.IsMissing(row.DaysRented) {
			continue
		}
		if row.DaysRented > ActiveDaysThreshold {
			counts[row.Neighbourhood]++
		}
	}
	active.Entries = topEntries(counts, TopNeighbourhoods)
	if len(active.Entries) == 0 {
		active.Notice = "no active listings to show"
	}

	return &CompetitionView{Listings: total, ActiveListings: active}
}
