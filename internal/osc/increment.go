package osc

import (
	"math/bits"

	"github.com/tphakala/go-fixed-synth/internal/units"
)

// alphaFor returns (PhiMax << alphaBits) / sampleRate. sampleRate must be
// non-zero.
func alphaFor(sampleRate units.MilliHertz) uint64 {
	return (uint64(PhiMax) << alphaBits) / uint64(sampleRate)
}

// deltaPhiShift computes freq*alpha >> alphaBits with a 128-bit product,
// clamped to PhiMax.
func deltaPhiShift(freq units.MilliHertz, alpha uint64) int32 {
	hi, lo := bits.Mul64(uint64(freq), alpha)
	if hi>>alphaBits != 0 {
		return PhiMax
	}
	d := hi<<(64-alphaBits) | lo>>alphaBits
	if d > uint64(PhiMax) {
		return PhiMax
	}
	return int32(d)
}

// deltaPhiDivide computes freq*PhiMax / sampleRate, clamped to PhiMax.
// sampleRate must be non-zero.
func deltaPhiDivide(freq, sampleRate units.MilliHertz) int32 {
	d := (uint64(freq) << phiBits) / uint64(sampleRate)
	if d > uint64(PhiMax) {
		return PhiMax
	}
	return int32(d)
}
