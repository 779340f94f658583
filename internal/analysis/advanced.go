package analysis

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"inmopanel/domain/market"
)

// ScatterPoint is one marker on the price/ROI chart
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// ScatterChart relates rental price to net ROI. For a pure-Valencia set the
// points are individual listings; otherwise one point per neighbourhood mean.
type ScatterChart struct {
	Title       string         `json:"title"`
	PerListing  bool           `json:"per_listing"`
	Points      []ScatterPoint `json:"points"`
	Correlation float64        `json:"correlation"`
	Notice      string         `json:"notice,omitempty"`
}

// RoomsEntry carries mean bedroom and bathroom counts for one neighbourhood
type RoomsEntry struct {
	Neighbourhood string  `json:"neighbourhood"`
	Bedrooms      float64 `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
}

// RoomsChart ranks neighbourhoods by mean bedroom count
type RoomsChart struct {
	Title   string       `json:"title"`
	Entries []RoomsEntry `json:"entries"`
	Notice  string       `json:"notice,omitempty"`
}

// MapPoint is one listing location
type MapPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AdvancedView is the extended analysis: scatter, attribute rankings,
// distributions, locations and crime statistics
type AdvancedView struct {
	PriceVsNetROI *ScatterChart `json:"price_vs_net_roi"`
	Amenities     *Ranking      `json:"amenities"`
	Reviews       *Ranking      `json:"reviews"`
	Rooms         *RoomsChart   `json:"rooms"`

	PriceHistogram      *Histogram `json:"price_histogram"`
	NetROIHistogram     *Histogram `json:"net_roi_histogram"`
	DaysRentedHistogram *Histogram `json:"days_rented_histogram"`

	PriceBoxplots      *BoxplotChart `json:"price_boxplots"`
	NetROIBoxplots     *BoxplotChart `json:"net_roi_boxplots"`
	DaysRentedBoxplots *BoxplotChart `json:"days_rented_boxplots"`

	MapPoints []MapPoint `json:"map_points"`
	MapNotice string     `json:"map_notice,omitempty"`

	Crime *CrimeView `json:"crime"`
}

// BuildAdvanced assembles the extended analysis view. Each chart inspects
// only the columns it needs and carries its own notice when they are absent.
func BuildAdvanced(listings *market.ListingSet, crime *market.CrimeSet) *AdvancedView {
	return &AdvancedView{
		PriceVsNetROI:       buildScatter(listings),
		Amenities:           buildAmenitiesRanking(listings),
		Reviews:             buildReviewsRanking(listings),
		Rooms:               buildRoomsChart(listings),
		PriceHistogram:      buildColumnHistogram(listings, market.ColPrice, "Rental price distribution", func(l market.Listing) float64 { return l.Price }),
		NetROIHistogram:     BuildHistogram("Net ROI (%) distribution", collect(listings.Rows, func(l market.Listing) float64 { return l.NetROIPct }), DefaultHistogramBins),
		DaysRentedHistogram: buildColumnHistogram(listings, market.ColDaysRented, "Days rented distribution", func(l market.Listing) float64 { return l.DaysRented }),
		PriceBoxplots:       buildColumnBoxplots(listings, market.ColPrice, "Rental price by neighbourhood", func(l market.Listing) float64 { return l.Price }),
		NetROIBoxplots:      buildBoxplots(listings, "Net ROI (%) by neighbourhood", func(l market.Listing) float64 { return l.NetROIPct }),
		DaysRentedBoxplots:  buildColumnBoxplots(listings, market.ColDaysRented, "Days rented by neighbourhood", func(l market.Listing) float64 { return l.DaysRented }),
		MapPoints:           buildMapPoints(listings),
		MapNotice:           mapNotice(listings),
		Crime:               BuildCrimeView(crime),
	}
}

// amenityCount mirrors the historical derivation: comma count plus one
func amenityCount(amenities string) float64 {
	if strings.TrimSpace(amenities) == "" {
		return market.Missing()
	}
	return float64(strings.Count(amenities, ",") + 1)
}

func buildAmenitiesRanking(listings *market.ListingSet) *Ranking {
	ranking := &Ranking{Title: "Top neighbourhoods by mean amenity count"}
	if !listings.Columns.Has(market.ColAmenities) {
		ranking.Notice = "no amenity data to show"
		return ranking
	}
	ranking.Entries = topEntries(
		meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return amenityCount(l.Amenities) }),
		TopNeighbourhoods)
	if len(ranking.Entries) == 0 {
		ranking.Notice = "no amenity data to show"
	}
	return ranking
}

func buildReviewsRanking(listings *market.ListingSet) *Ranking {
	ranking := &Ranking{Title: "Top neighbourhoods by total reviews"}
	if !listings.Columns.Has(market.ColNumberOfReviews) {
		ranking.Notice = "no review data to show"
		return ranking
	}
	ranking.Entries = topEntries(
		sumByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.Reviews }),
		TopNeighbourhoods)
	if len(ranking.Entries) == 0 {
		ranking.Notice = "no review data to show"
	}
	return ranking
}

func buildRoomsChart(listings *market.ListingSet) *RoomsChart {
	chart := &RoomsChart{Title: "Top neighbourhoods by mean bedrooms and bathrooms"}
	if !listings.Columns.Has(market.ColBedrooms) || !listings.Columns.Has(market.ColBathrooms) {
		chart.Notice = "no bedroom or bathroom data to show"
		return chart
	}

	bedrooms := meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.Bedrooms })
	bathrooms := meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.Bathrooms })

	entries := make([]RoomsEntry, 0, len(bedrooms))
	for name, beds := range bedrooms {
		entries = append(entries, RoomsEntry{
			Neighbourhood: name,
			Bedrooms:      beds,
			Bathrooms:     bathrooms[name],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Bedrooms != entries[j].Bedrooms {
			return entries[i].Bedrooms > entries[j].Bedrooms
		}
		return entries[i].Neighbourhood < entries[j].Neighbourhood
	})
	if len(entries) > TopNeighbourhoods {
		entries = entries[:TopNeighbourhoods]
	}
	chart.Entries = entries
	if len(chart.Entries) == 0 {
		chart.Notice = "no bedroom or bathroom data to show"
	}
	return chart
}

// buildScatter keeps per-listing points for a single-city Valencia set,
// otherwise collapses to per-neighbourhood means
func buildScatter(listings *market.ListingSet) *ScatterChart {
	chart := &ScatterChart{Title: "Rental price vs net ROI"}
	if !listings.Columns.Has(market.ColPrice) {
		chart.Notice = "no price data to relate to ROI"
		return chart
	}

	if isSingleCityValencia(listings) {
		chart.PerListing = true
		for _, row := range listings.Rows {
			if !isFinite(row.Price) || !isFinite(row.NetROIPct) {
				continue
			}
			chart.Points = append(chart.Points, ScatterPoint{
				X:     row.Price,
				Y:     row.NetROIPct,
				Label: row.Neighbourhood,
			})
		}
	} else {
		prices := meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.Price })
		rois := meanByNeighbourhood(listings.Rows, func(l market.Listing) float64 { return l.NetROIPct })
		names := make([]string, 0, len(prices))
		for name := range prices {
			if _, ok := rois[name]; ok {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			chart.Points = append(chart.Points, ScatterPoint{
				X:     prices[name],
				Y:     rois[name],
				Label: name,
			})
		}
	}

	if len(chart.Points) == 0 {
		chart.Notice = "not enough data to relate price and ROI"
		return chart
	}
	if len(chart.Points) > 1 {
		xs := make([]float64, len(chart.Points))
		ys := make([]float64, len(chart.Points))
		for i, p := range chart.Points {
			xs[i] = p.X
			ys[i] = p.Y
		}
		// Correlation is NaN when either axis is constant; the chart then
		// carries no correlation rather than an unmarshallable value.
		if corr := stat.Correlation(xs, ys, nil); isFinite(corr) {
			chart.Correlation = corr
		}
	}
	return chart
}

// isSingleCityValencia reports whether every row belongs to Valencia
func isSingleCityValencia(listings *market.ListingSet) bool {
	if !listings.Columns.Has(market.ColCity) || listings.IsEmpty() {
		return false
	}
	for _, row := range listings.Rows {
		if !strings.EqualFold(row.City, "valencia") {
			return false
		}
	}
	return true
}

func buildColumnHistogram(listings *market.ListingSet, column, title string, value func(market.Listing) float64) *Histogram {
	if !listings.Columns.Has(column) {
		return &Histogram{Title: title, Notice: "column " + column + " not present in the data"}
	}
	return BuildHistogram(title, collect(listings.Rows, value), DefaultHistogramBins)
}

func buildColumnBoxplots(listings *market.ListingSet, column, title string, value func(market.Listing) float64) *BoxplotChart {
	if !listings.Columns.Has(column) {
		return &BoxplotChart{Title: title, Notice: "column " + column + " not present in the data"}
	}
	return buildBoxplots(listings, title, value)
}

// buildBoxplots summarizes the field per neighbourhood, restricted to the
// busiest neighbourhoods
func buildBoxplots(listings *market.ListingSet, title string, value func(market.Listing) float64) *BoxplotChart {
	chart := &BoxplotChart{Title: title}
	top := topNeighbourhoodsByCount(listings.Rows, TopNeighbourhoods)
	grouped := groupValues(listings.Rows, value)
	for _, name := range top {
		if summary, ok := summarizeBox(name, grouped[name]); ok {
			chart.Summaries = append(chart.Summaries, summary)
		}
	}
	if len(chart.Summaries) == 0 {
		chart.Notice = "no data for this chart"
	}
	return chart
}

func buildMapPoints(listings *market.ListingSet) []MapPoint {
	if !listings.Columns.Has(market.ColLatitude) || !listings.Columns.Has(market.ColLongitude) {
		return nil
	}
	points := make([]MapPoint, 0, listings.Len())
	for _, row := range listings.Rows {
		if !isFinite(row.Latitude) || !isFinite(row.Longitude) {
			continue
		}
		points = append(points, MapPoint{Latitude: row.Latitude, Longitude: row.Longitude})
	}
	return points
}

func mapNotice(listings *market.ListingSet) string {
	if !listings.Columns.Has(market.ColLatitude) || !listings.Columns.Has(market.ColLongitude) {
		return "no location data to show on the map"
	}
	return ""
}
