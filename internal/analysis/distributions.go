package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Histogram is a fixed-bin frequency chart
type Histogram struct {
	Title    string    `json:"title"`
	BinEdges []float64 `json:"bin_edges"` // len = bins+1
	Counts   []int     `json:"counts"`
	Notice   string    `json:"notice,omitempty"`
}

// DefaultHistogramBins matches the dashboard's historical bin count
const DefaultHistogramBins = 40

// BuildHistogram bins the values into equal-width bins across their range
func BuildHistogram(title string, values []float64, bins int) *Histogram {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	if len(values) == 0 {
		return &Histogram{Title: title, Notice: "no data for this chart"}
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		// Degenerate range: one bin holding everything.
		return &Histogram{
			Title:    title,
			BinEdges: []float64{min, max},
			Counts:   []int{len(values)},
		}
	}

	width := (max - min) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max

	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return &Histogram{Title: title, BinEdges: edges, Counts: counts}
}

// BoxplotSummary is a five-number summary with IQR outliers
type BoxplotSummary struct {
	Neighbourhood string    `json:"neighbourhood"`
	Min           float64   `json:"min"`
	Q1            float64   `json:"q1"`
	Median        float64   `json:"median"`
	Q3            float64   `json:"q3"`
	Max           float64   `json:"max"`
	Outliers      []float64 `json:"outliers,omitempty"`
}

// BoxplotChart groups per-neighbourhood summaries for one field, restricted
// to the busiest neighbourhoods
type BoxplotChart struct {
	Title     string           `json:"title"`
	Summaries []BoxplotSummary `json:"summaries"`
	Notice    string           `json:"notice,omitempty"`
}

// summarizeBox computes the five-number summary; whiskers stop at the most
// extreme values inside 1.5×IQR, everything beyond is an outlier
func summarizeBox(neighbourhood string, values []float64) (BoxplotSummary, bool) {
	if len(values) == 0 {
		return BoxplotSummary{}, false
	}
	q1, err1 := stats.Percentile(values, 25)
	median, err2 := stats.Median(values)
	q3, err3 := stats.Percentile(values, 75)
	if err1 != nil || err2 != nil || err3 != nil {
		// Percentile needs a handful of values; fall back to the raw extent.
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		mid := sorted[len(sorted)/2]
		return BoxplotSummary{
			Neighbourhood: neighbourhood,
			Min:           sorted[0],
			Q1:            sorted[0],
			Median:        mid,
			Q3:            sorted[len(sorted)-1],
			Max:           sorted[len(sorted)-1],
		}, true
	}

	iqr := q3 - q1
	lowFence := q1 - 1.5*iqr
	highFence := q3 + 1.5*iqr

	summary := BoxplotSummary{
		Neighbourhood: neighbourhood,
		Q1:            q1,
		Median:        median,
		Q3:            q3,
		Min:           math.Inf(1),
		Max:           math.Inf(-1),
	}
	for _, v := range values {
		if v < lowFence || v > highFence {
			summary.Outliers = append(summary.Outliers, v)
			continue
		}
		if v < summary.Min {
			summary.Min = v
		}
		if v > summary.Max {
			summary.Max = v
		}
	}
	if math.IsInf(summary.Min, 1) {
		summary.Min, summary.Max = q1, q3
	}
	sort.Float64s(summary.Outliers)
	return summary, true
}

// DensityCurve is a kernel density estimate evaluated on a fixed grid
type DensityCurve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// kdeGridPoints is the evaluation resolution for density curves
const kdeGridPoints = 200

// BuildDensity estimates a Gaussian KDE over [clipLow, clipHigh]. Bandwidth
// is Scott's rule scaled by bwAdjust, matching the 0.7 adjustment the ROI
// charts have always used.
func BuildDensity(values []float64, clipLow, clipHigh, bwAdjust float64) *DensityCurve {
	if len(values) < 2 {
		return nil
	}

	stdDev, err := stats.StandardDeviationSample(values)
	if err != nil || stdDev == 0 {
		return nil
	}
	bandwidth := bwAdjust * stdDev * math.Pow(float64(len(values)), -1.0/5.0)
	kernel := distuv.Normal{Mu: 0, Sigma: bandwidth}

	x := make([]float64, kdeGridPoints+1)
	y := make([]float64, kdeGridPoints+1)
	step := (clipHigh - clipLow) / float64(kdeGridPoints)
	for i := range x {
		x[i] = clipLow + float64(i)*step
		var density float64
		for _, v := range values {
			density += kernel.Prob(x[i] - v)
		}
		y[i] = density / float64(len(values))
	}

	return &DensityCurve{X: x, Y: y}
}
