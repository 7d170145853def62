package synth

import (
	"errors"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/noise"
	"github.com/tphakala/go-fixed-synth/internal/osc"
	"github.com/tphakala/go-fixed-synth/internal/svf"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

// Source is the pull-based contract shared by every block. NextSample
// returns false when the source has nothing to emit, for example a stopped
// oscillator or a finished one-shot envelope.
type Source interface {
	NextSample() (Sample, bool)
	SampleRate() MilliHertz
	SetSampleRate(Frequency) error
}

// Sample types
type (
	Sample = fixed.Sample
)

// Sample range
const (
	SampleMax = fixed.Max
	SampleMin = fixed.Min
)

// Unit types
type (
	Frequency    = units.Frequency
	MilliHertz   = units.MilliHertz
	Hertz        = units.Hertz
	KiloHertz    = units.KiloHertz
	Milliseconds = units.Milliseconds
	Microseconds = units.Microseconds
)

// Block types
type (
	Oscillator   = osc.Oscillator
	Filter       = svf.Filter
	FilterConfig = svf.Config
	FilterMode   = svf.Mode
	WhiteNoise   = noise.White
	BitFlipNoise = noise.BitFlip
	PinkNoise    = noise.Pink
	CrackleNoise = noise.Crackle
)

// Filter modes
const (
	LowPass  = svf.LowPass
	BandPass = svf.BandPass
	HighPass = svf.HighPass
	Notch    = svf.Notch
)

// QMax is the largest filter resonance.
const QMax = svf.QMax

var (
	// ErrZeroSampleRate is returned when a sample rate of zero is set.
	ErrZeroSampleRate = errors.New("synth: zero sample rate")

	// ErrInvalidConfig is returned for configurations that cannot build a
	// patch.
	ErrInvalidConfig = errors.New("synth: invalid configuration")

	// ErrUnknownPatch is returned by NewPatch for unrecognized names.
	ErrUnknownPatch = errors.New("synth: unknown patch")
)

// FromHertzFloat converts a frequency in hertz to the nearest millihertz.
func FromHertzFloat(hz float64) MilliHertz { return units.FromHertzFloat(hz) }

var (
	_ Source = (*Oscillator)(nil)
	_ Source = (*Filter)(nil)
	_ Source = (*WhiteNoise)(nil)
	_ Source = (*BitFlipNoise)(nil)
	_ Source = (*PinkNoise)(nil)
	_ Source = (*CrackleNoise)(nil)
	_ Source = (*Gain)(nil)
	_ Source = (*Attenuator)(nil)
	_ Source = (*Mix)(nil)
	_ Source = (*VCA)(nil)
)
