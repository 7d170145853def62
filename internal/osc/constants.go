package osc

import "github.com/tphakala/go-fixed-synth/internal/units"

// Phase accumulator geometry
const (
	phiBits = 20

	// PhiMax is the phase accumulator span of one waveform cycle.
	PhiMax int32 = 1 << phiBits
)

// Coefficient exchange. alpha carries PhiMax scaled up by 2^alphaBits so the
// per-frequency increment reduces to a multiply and a shift.
const (
	alphaBits = 28
)

// Defaults applied to every new oscillator.
const (
	DefaultSampleRate = units.Hertz(44_100)
	DefaultFrequency  = units.Hertz(440)
)

// Increment names the coefficient path compiled into this build.
type Increment string

const (
	// IncrementShift derives the phase increment from a precomputed alpha
	// using a multiply and a right shift.
	IncrementShift Increment = "shift"

	// IncrementDivide derives the phase increment by dividing by the sample
	// rate directly. Selected with the osc_divide build tag.
	IncrementDivide Increment = "divide"
)
