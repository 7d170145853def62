// Package fixed implements the signed 16-bit sample type and the
// normalized fixed-point arithmetic built on it.
//
// A Sample of Max represents roughly +1.0 and Min represents exactly -1.0.
// NormMul treats both operands as fractions of Norm, so multiplying a signal
// by a gain or envelope never leaves the 16-bit range except for the single
// Min*Min case, which clamps to Max.
package fixed

import "math"

// Sample is one mono audio value.
type Sample int16

// Range and normalization constants.
const (
	Max  Sample = math.MaxInt16
	Min  Sample = math.MinInt16
	Zero Sample = 0

	// Norm is the divisor that maps a product of two samples back into
	// sample range.
	Norm int32 = 1 << 15
)

// Clamp saturates a widened value into sample range.
func Clamp(v int32) Sample {
	switch {
	case v > int32(Max):
		return Max
	case v < int32(Min):
		return Min
	default:
		return Sample(v)
	}
}

// Wrap truncates a widened value to 16 bits with two's-complement wraparound.
func Wrap(v int32) Sample {
	return Sample(int16(v))
}

// SaturatingAdd returns a+b clamped to [Min, Max].
func (a Sample) SaturatingAdd(b Sample) Sample {
	return Clamp(int32(a) + int32(b))
}

// SaturatingSub returns a-b clamped to [Min, Max].
func (a Sample) SaturatingSub(b Sample) Sample {
	return Clamp(int32(a) - int32(b))
}

// SaturatingMul returns the integer product a*b clamped to [Min, Max].
func (a Sample) SaturatingMul(b Sample) Sample {
	return Clamp(int32(a) * int32(b))
}

// NormMul returns a*b/Norm, truncated toward zero. Min*Min clamps to Max.
func (a Sample) NormMul(b Sample) Sample {
	return Clamp(int32(a) * int32(b) / Norm)
}

// Shift returns a arithmetically shifted right by n bits.
func (a Sample) Shift(n uint) Sample {
	return a >> n
}

// IsClipping reports whether a sits on either rail.
func (a Sample) IsClipping() bool {
	return a == Max || a == Min
}

// Float64 maps a into [-1, 1).
func (a Sample) Float64() float64 {
	return float64(a) / float64(Norm)
}

// Float32 maps a into [-1, 1).
func (a Sample) Float32() float32 {
	return float32(a) / float32(Norm)
}

// FromFloat64 converts a value in [-1, 1] to a Sample, saturating outside
// that range. NaN maps to Zero.
func FromFloat64(v float64) Sample {
	if math.IsNaN(v) {
		return Zero
	}
	s := math.Round(v * float64(Norm))
	switch {
	case s >= float64(Max):
		return Max
	case s <= float64(Min):
		return Min
	default:
		return Sample(s)
	}
}
