package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceInterval_CenterAndPrecision(t *testing.T) {
	tests := []struct {
		name          string
		lower, upper  float64
		wantCenter    float64
		wantPrecision float64
	}{
		{"symmetric", 9, 11, 10, 0.1},
		{"degenerate at zero", 0, 0, 0, 0},
		{"degenerate point", 3, 3, 3, 0},
		{"wide", 0, 2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ci := NewConfidenceInterval(tt.lower, tt.upper)
			assert.InDelta(t, tt.wantCenter, ci.Center(), 1e-12)
			assert.InDelta(t, tt.wantPrecision, ci.Precision(), 1e-12)
		})
	}
}

func TestConfidenceInterval_Precision_ZeroSumNonDegenerate_IsInf(t *testing.T) {
	ci := NewConfidenceInterval(-1, 1)
	assert.True(t, math.IsInf(ci.Precision(), 1))
}

func TestConfidenceInterval_Contains_WithSlack(t *testing.T) {
	ci := NewConfidenceInterval(10, 20)
	tests := []struct {
		v    float64
		want bool
	}{
		{15, true},
		{10, true},
		{9.95, true},  // within 1% of the lower bound
		{20.15, true}, // within 1% of the upper bound
		{9.8, false},
		{20.3, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ci.Contains(tt.v), "Contains(%g)", tt.v)
	}
}

func TestConverges_SymmetricAndStrict(t *testing.T) {
	tests := []struct {
		name string
		a, b ConfidenceInterval
		want bool
	}{
		{"overlapping centers", NewConfidenceInterval(0.9, 1.1), NewConfidenceInterval(0.95, 1.2), true},
		{"identical", NewConfidenceInterval(1, 2), NewConfidenceInterval(1, 2), true},
		{"disjoint", NewConfidenceInterval(0, 1), NewConfidenceInterval(2, 3), false},
		// b's center 1.55 is inside a, but a's center 1.0 is outside b
		{"one-sided", NewConfidenceInterval(0, 2), NewConfidenceInterval(1.1, 2.0), false},
		// a's center lies exactly on b's bound
		{"center on bound", NewConfidenceInterval(0, 2), NewConfidenceInterval(1, 1.5), false},
		{"degenerate", NewConfidenceInterval(1, 1), NewConfidenceInterval(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// THEN the relation is symmetric
			assert.Equal(t, tt.want, Converges(tt.a, tt.b))
			assert.Equal(t, tt.want, Converges(tt.b, tt.a))
			assert.Equal(t, tt.want, tt.a.Converges(tt.b))
		})
	}
}

func TestConverges_Reflexive_ForNondegenerateInterval(t *testing.T) {
	ci := NewConfidenceInterval(0.3, 0.7)
	assert.True(t, Converges(ci, ci))
}

func TestStudentTPercentile_KnownValues(t *testing.T) {
	tests := []struct {
		dof  int
		want float64
	}{
		{1, 12.706204736},
		{9, 2.262157163},
		{29, 2.045229642},
		{999, 1.962341461},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, StudentTPercentile(0.95, tt.dof), 1e-6, "dof=%d", tt.dof)
	}
}

func TestChiSquarePercentiles_KnownValues(t *testing.T) {
	// GIVEN 29 degrees of freedom
	lo, hi := ChiSquarePercentiles(0.95, 29)

	// THEN the 2.5% and 97.5% quantiles match published tables
	assert.InDelta(t, 16.047071, lo, 1e-4)
	assert.InDelta(t, 45.722286, hi, 1e-4)
}

func TestStudentTInterval(t *testing.T) {
	// GIVEN a sample 1..10 (mean 5.5, var 55/6)
	s := NewSample(10)
	for i := 1; i <= 10; i++ {
		s.Append(float64(i))
	}

	// WHEN the 95% interval is built
	ci := StudentTInterval(s, 0.95)

	// THEN it is centered on the mean with half-width t(9)·sqrt(var/n)
	half := 2.262157163 * math.Sqrt(55.0/6.0/10.0)
	assert.InDelta(t, 5.5, ci.Center(), 1e-9)
	assert.InDelta(t, 5.5-half, ci.Lower, 1e-6)
	assert.InDelta(t, 5.5+half, ci.Upper, 1e-6)
}

func TestStudentTInterval_SingleObservation_Collapses(t *testing.T) {
	s := NewSample(1)
	s.Append(4)
	ci := StudentTInterval(s, 0.95)
	assert.Equal(t, NewConfidenceInterval(4, 4), ci)
}

func TestChiSquareInterval(t *testing.T) {
	// GIVEN variance 2 with 29 degrees of freedom
	ci := ChiSquareInterval(2, 29, 0.95)

	// THEN bounds are 29·2/χ²(0.975) and 29·2/χ²(0.025), bracketing 2
	assert.InDelta(t, 58/45.722286, ci.Lower, 1e-4)
	assert.InDelta(t, 58/16.047071, ci.Upper, 1e-4)
	assert.True(t, ci.Contains(2))
}

func TestChiSquareInterval_LargeDof_Tight(t *testing.T) {
	// GIVEN the dof of a 1000-departure round
	ci := ChiSquareInterval(1, 999, 0.95)

	// THEN the interval is tight around the estimate
	assert.Less(t, ci.Precision(), 0.1)
	assert.InDelta(t, 1.0, ci.Center(), 0.01)
}
