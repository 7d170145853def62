// Package testutil provides reusable test helpers for synthesizer tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	DBTolerance      = 0.01
)

// Pull reads up to n samples from next, stopping early at the first missing
// sample.
func Pull(next func() (fixed.Sample, bool), n int) []fixed.Sample {
	out := make([]fixed.Sample, 0, n)
	for range n {
		s, ok := next()
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out
}

// Float64s converts samples to floats in [-1, 1).
func Float64s(s []fixed.Sample) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Float64()
	}
	return out
}

// Spectrum returns the magnitude of each non-negative frequency bin of x.
func Spectrum(x []float64) []float64 {
	fft := fourier.NewFFT(len(x))
	coeffs := fft.Coefficients(nil, x)
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin.
func DominantFrequency(x []float64, sampleRate float64) float64 {
	mags := Spectrum(x)
	if len(mags) < 2 {
		return 0
	}
	peak := floats.MaxIdx(mags[1:]) + 1
	return float64(peak) * sampleRate / float64(len(x))
}

// BinMagnitude returns the spectral magnitude nearest freq.
func BinMagnitude(x []float64, sampleRate, freq float64) float64 {
	mags := Spectrum(x)
	bin := int(math.Round(freq * float64(len(x)) / sampleRate))
	if bin < 0 || bin >= len(mags) {
		return 0
	}
	return mags[bin]
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

// AssertNoiseStatistics checks that x looks like broadband noise: mean near
// wantMean and standard deviation above minStdDev.
func AssertNoiseStatistics(t *testing.T, x []float64, wantMean, meanTol, minStdDev float64) bool {
	t.Helper()
	mean, std := stat.MeanStdDev(x, nil)
	ok := assert.InDelta(t, wantMean, mean, meanTol, "mean = %f", mean)
	return assert.Greater(t, std, minStdDev, "stddev = %f", std) && ok
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSamplesInRange verifies that every sample is within [minVal, maxVal].
func AssertSamplesInRange(t *testing.T, s []fixed.Sample, minVal, maxVal fixed.Sample) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "sample out of range",
				"s[%d]=%d is outside range [%d, %d]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice never decreases.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
