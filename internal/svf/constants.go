package svf

import (
	"math"

	"github.com/tphakala/go-fixed-synth/internal/units"
)

// Fixed-point scaling
const (
	// Norm is the coefficient denominator: ft and qInv are fractions of Norm.
	Norm int32 = 2048

	// QMax is the largest meaningful resonance. It drives qInv to zero, the
	// edge of self-oscillation.
	QMax uint16 = uint16(Norm)

	// ftMax bounds the frequency coefficient so ft*sample fits in int32.
	ftMax = math.MaxUint16
)

// Defaults applied to every new filter.
const (
	DefaultSampleRate = units.Hertz(44_100)
	DefaultCutoff     = units.Hertz(1_000)
)
