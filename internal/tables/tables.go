// Package tables holds the static wavetables shared by every oscillator.
//
// Tables are generated once at package initialization and are read-only
// afterwards. Oscillators keep a reference to a table and never copy it.
package tables

import (
	"math"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
)

// Table sizes. Powers of two keep index quantization uniform.
const (
	Size      = 1024
	DecaySize = 2048
)

// decayRate sets the exponential-decay slope: the last entry is
// exp(-decayRate) of full scale, about -60 dB.
const decayRate = 6.9

var (
	sine     [Size]fixed.Sample
	saw      [Size]fixed.Sample
	square   [Size]fixed.Sample
	triangle [Size]fixed.Sample
	decay    [DecaySize]fixed.Sample
)

// Shared tables. Callers must treat these as read-only.
var (
	// Sine is one cycle of a full-scale sine wave.
	Sine = sine[:]

	// Saw is one cycle of a rising sawtooth from Min to just below Max.
	Saw = saw[:]

	// Square is one cycle of a 50% duty square wave.
	Square = square[:]

	// Triangle is one cycle of a triangle wave starting at zero.
	Triangle = triangle[:]

	// Decay is a one-shot exponential envelope from Max toward zero.
	Decay = decay[:]
)

func init() {
	for i := range Size {
		phase := float64(i) / Size

		sine[i] = fixed.FromFloat64(math.Sin(2 * math.Pi * phase))
		saw[i] = fixed.Clamp(int32(fixed.Min) + int32(i*(1<<16)/Size))

		if i < Size/2 {
			square[i] = fixed.Max
		} else {
			square[i] = fixed.Min
		}

		// 0 -> 1 -> 0 -> -1 -> 0 over the cycle
		var tri float64
		switch {
		case phase < 0.25:
			tri = 4 * phase
		case phase < 0.75:
			tri = 2 - 4*phase
		default:
			tri = 4*phase - 4
		}
		triangle[i] = fixed.FromFloat64(tri)
	}

	for i := range DecaySize {
		decay[i] = fixed.FromFloat64(math.Exp(-decayRate * float64(i) / DecaySize))
	}
}
