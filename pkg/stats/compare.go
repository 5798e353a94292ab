package stats

import (
	"fmt"
	"math"

	"github.com/cloud-bulldozer/shbench/pkg/sample"
)

// Ratio is the mean ratio of a candidate variant over the baseline,
// with the bounds of its 95% confidence interval.
type Ratio struct {
	Value float64
	Min   float64
	Max   float64
}

// Compare estimates the candidate/baseline mean ratio with 95% bounds.
// Both snapshots need at least two samples. The bounds apply a quarter
// of the mean-difference interval to numerator and denominator; this is
// an approximation, not a Fieller interval. The standard-error
// denominators are count-1, matching the Bessel-corrected variance
// they divide.
func Compare[T sample.Number[T]](baseline, candidate *Stats[T]) Ratio {
	df := baseline.Count - 1
	if candidate.Count-1 < df {
		df = candidate.Count - 1
	}
	tStar := TTable(df, TwoSided95)

	se := math.Sqrt(baseline.SigmaSq()/float64(baseline.Count-1) +
		candidate.SigmaSq()/float64(candidate.Count-1))
	confH := tStar * se
	confQ := confH / 2

	am := baseline.Mean.AsFloat()
	cm := candidate.Mean.AsFloat()
	return Ratio{
		Value: cm / am,
		Min:   (cm - confQ) / (am + confQ),
		Max:   (cm + confQ) / (am - confQ),
	}
}

// String renders the contract form, e.g. "1.042 0.987..1.099 (95% conf)".
func (r Ratio) String() string {
	return fmt.Sprintf("%.3f %.3f..%.3f (95%% conf)", r.Value, r.Min, r.Max)
}
