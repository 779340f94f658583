package analysis

import (
	"inmopanel/domain/market"
)

// ROI density clipping and bandwidth parameters.
const (
	roiClipLow  = 0.0
	roiClipHigh = 50.0
	roiBWAdjust = 0.7
)

// Overview is the general market summary view
type Overview struct {
	ListingCount  int           `json:"listing_count"`
	MeanNetROIPct float64       `json:"mean_net_roi_pct"`
	MeanPrice     float64       `json:"mean_price"`
	GrossROI      *DensityCurve `json:"gross_roi_density,omitempty"`
	NetROI        *DensityCurve `json:"net_roi_density,omitempty"`
	Notice        string        `json:"notice,omitempty"`
}

// BuildOverview computes listing count, mean net ROI, mean rental price and
// the gross/net ROI density curves for the filtered set
func BuildOverview(listings *market.ListingSet) *Overview {
	view := &Overview{ListingCount: listings.Len()}

	view.MeanNetROIPct = safeMean(collect(listings.Rows, func(l market.Listing) float64 { return l.NetROIPct }))
	view.MeanPrice = safeMean(collect(listings.Rows, func(l market.Listing) float64 { return l.Price }))

	if listings.Len() > 1 {
		gross := collect(listings.Rows, func(l market.Listing) float64 { return l.GrossROIPct })
		net := collect(listings.Rows, func(l market.Listing) float64 { return l.NetROIPct })
		view.GrossROI = BuildDensity(gross, roiClipLow, roiClipHigh, roiBWAdjust)
		view.NetROI = BuildDensity(net, roiClipLow, roiClipHigh, roiBWAdjust)
	}
	if view.GrossROI == nil || view.NetROI == nil {
		view.Notice = "not enough data to estimate the ROI distribution"
	}

	return view
}
