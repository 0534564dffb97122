package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the confidence level used for every interval the driver builds.
const DefaultConfidence = 0.95

// containsSlack is the relative tolerance Contains applies at each bound.
const containsSlack = 0.01

// ConfidenceInterval is an immutable [Lower, Upper] estimate.
type ConfidenceInterval struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// NewConfidenceInterval builds an interval from its bounds.
func NewConfidenceInterval(lower, upper float64) ConfidenceInterval {
	return ConfidenceInterval{Lower: lower, Upper: upper}
}

// Center is the midpoint of the interval.
func (ci ConfidenceInterval) Center() float64 {
	return (ci.Lower + ci.Upper) / 2
}

// Precision is the relative half-width (U-L)/(U+L).
// A degenerate interval at zero has precision 0.
func (ci ConfidenceInterval) Precision() float64 {
	width := ci.Upper - ci.Lower
	sum := ci.Upper + ci.Lower
	if sum == 0 {
		if width == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return width / sum
}

// Contains reports whether v lies inside the interval, allowing 1% relative
// slack at each bound.
func (ci ConfidenceInterval) Contains(v float64) bool {
	lower := ci.Lower - containsSlack*math.Abs(ci.Lower)
	upper := ci.Upper + containsSlack*math.Abs(ci.Upper)
	return lower <= v && v <= upper
}

// Converges reports whether each interval's center lies strictly inside the other.
func (ci ConfidenceInterval) Converges(other ConfidenceInterval) bool {
	return Converges(ci, other)
}

// Converges reports whether a and b agree: a's center is strictly inside b and
// b's center is strictly inside a. The relation is symmetric.
func Converges(a, b ConfidenceInterval) bool {
	ca, cb := a.Center(), b.Center()
	return a.Lower < cb && cb < a.Upper && b.Lower < ca && ca < b.Upper
}

func (ci ConfidenceInterval) String() string {
	return fmt.Sprintf("[%.5f, %.5f] (center %.5f, precision %.3f%%)",
		ci.Lower, ci.Upper, ci.Center(), 100*ci.Precision())
}

// StudentTPercentile returns the two-sided critical value t_{1-α/2, dof}.
func StudentTPercentile(confidence float64, dof int) float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	return t.Quantile(1 - (1-confidence)/2)
}

// ChiSquarePercentiles returns the lower (α/2) and upper (1-α/2) chi-square
// quantiles for dof degrees of freedom.
func ChiSquarePercentiles(confidence float64, dof int) (lower, upper float64) {
	alpha := 1 - confidence
	c := distuv.ChiSquared{K: float64(dof)}
	return c.Quantile(alpha / 2), c.Quantile(1 - alpha/2)
}

// StudentTInterval is the confidence interval for the mean of s using the
// Student's t distribution with s.Len()-1 degrees of freedom.
// With fewer than two observations the interval collapses to the mean.
func StudentTInterval(s *Sample, confidence float64) ConfidenceInterval {
	n := s.Len()
	mean := s.Mean()
	if n < 2 {
		return NewConfidenceInterval(mean, mean)
	}
	half := StudentTPercentile(confidence, n-1) * math.Sqrt(s.Variance()/float64(n))
	return NewConfidenceInterval(mean-half, mean+half)
}

// ChiSquareInterval is the confidence interval for a population variance given
// a variance estimate with dof degrees of freedom:
// [dof*v/χ²(1-α/2), dof*v/χ²(α/2)].
func ChiSquareInterval(variance float64, dof int, confidence float64) ConfidenceInterval {
	if dof < 1 {
		return NewConfidenceInterval(variance, variance)
	}
	lo, hi := ChiSquarePercentiles(confidence, dof)
	scaled := float64(dof) * variance
	return NewConfidenceInterval(scaled/hi, scaled/lo)
}
