// Package svf implements a Chamberlin two-pole state-variable filter in
// 16-bit fixed point.
//
// One call to Feed produces low-pass, band-pass, high-pass and notch outputs
// at once. The recurrence is a first-order discretization and is only
// accurate well below the Nyquist frequency.
//
// Intermediate products are computed in 32 bits. Results are narrowed back to
// 16 bits according to the filter's Overflow policy: Wrap (the default)
// truncates with two's-complement wraparound, Saturate clamps to the sample
// rails. Extreme input combined with high resonance can overflow under
// either policy; Wrap turns that into loud aliasing, Saturate into clipping.
package svf

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

var (
	// ErrZeroSampleRate is returned when a sample rate of zero is set.
	ErrZeroSampleRate = errors.New("svf: zero sample rate")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("svf: invalid configuration")
)

// Mode selects which output NextSample returns.
type Mode int

const (
	LowPass Mode = iota
	BandPass
	HighPass
	Notch
)

func (m Mode) String() string {
	switch m {
	case LowPass:
		return "lowpass"
	case BandPass:
		return "bandpass"
	case HighPass:
		return "highpass"
	case Notch:
		return "notch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Overflow selects how widened results are narrowed to 16 bits.
type Overflow int

const (
	// Wrap truncates to 16 bits with two's-complement wraparound.
	Wrap Overflow = iota

	// Saturate clamps to [fixed.Min, fixed.Max].
	Saturate
)

// Input is anything the filter can pull samples from.
type Input interface {
	NextSample() (fixed.Sample, bool)
}

// rateSetter is implemented by inputs that follow the filter's sample rate.
type rateSetter interface {
	SetSampleRate(units.Frequency) error
}

// Config describes a new filter. Zero-valued Cutoff and SampleRate select
// DefaultCutoff and DefaultSampleRate.
type Config struct {
	// Input is pulled once per NextSample. It may be nil when the filter is
	// only driven through Feed.
	Input Input

	Mode       Mode
	Cutoff     units.Frequency
	SampleRate units.Frequency

	// Resonance in [0, QMax]. Larger values clamp to QMax.
	Resonance uint16

	Overflow Overflow
}

// Validate reports whether the configuration can build a filter.
func (c *Config) Validate() error {
	if c.SampleRate != nil && c.SampleRate.MilliHertz() == 0 {
		return fmt.Errorf("%w: sample rate resolves to 0 mHz", ErrInvalidConfig)
	}
	if c.Mode < LowPass || c.Mode > Notch {
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidConfig, c.Mode)
	}
	if c.Overflow != Wrap && c.Overflow != Saturate {
		return fmt.Errorf("%w: unknown overflow policy %d", ErrInvalidConfig, c.Overflow)
	}
	return nil
}

// Filter is a Chamberlin state-variable filter. It is not safe for
// concurrent use.
type Filter struct {
	lp, bp, hp fixed.Sample
	no         fixed.Sample // hp + lp from the last Feed, cached for Notch

	ft   uint32
	qInv uint16

	cutoff     units.MilliHertz
	resonance  uint16
	sampleRate units.MilliHertz

	mode     Mode
	overflow Overflow
	input    Input
}

// New builds a filter from cfg. A nil cfg yields a low-pass filter at the
// default cutoff and sample rate with no resonance.
func New(cfg *Config) (*Filter, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var cutoff, rate units.Frequency = DefaultCutoff, DefaultSampleRate
	if cfg.Cutoff != nil {
		cutoff = cfg.Cutoff
	}
	if cfg.SampleRate != nil {
		rate = cfg.SampleRate
	}

	f := &Filter{
		mode:       cfg.Mode,
		overflow:   cfg.Overflow,
		input:      cfg.Input,
		cutoff:     cutoff.MilliHertz(),
		sampleRate: rate.MilliHertz(),
	}
	f.SetResonance(cfg.Resonance)
	f.updateFt()
	return f, nil
}

func (f *Filter) narrow(v int32) fixed.Sample {
	if f.overflow == Saturate {
		return fixed.Clamp(v)
	}
	return fixed.Wrap(v)
}

// Feed advances the filter by one input sample. The update order is part of
// the filter's definition and must not change.
func (f *Filter) Feed(in fixed.Sample) {
	ft := int32(f.ft)
	q := int32(f.qInv)

	f.lp = f.narrow(int32(f.lp) + ft*int32(f.bp)/Norm)
	f.hp = f.narrow(int32(in) - int32(f.lp) - q*int32(f.bp)/Norm)
	f.bp = f.narrow(int32(f.bp) + ft*int32(f.hp)/Norm)
	f.no = f.narrow(int32(f.hp) + int32(f.lp))
}

// NextSample pulls one sample from the input, feeds it and returns the
// output selected by the filter's mode. It returns false when there is no
// input or the input has no sample; the filter state is then unchanged.
func (f *Filter) NextSample() (fixed.Sample, bool) {
	if f.input == nil {
		return fixed.Zero, false
	}
	in, ok := f.input.NextSample()
	if !ok {
		return fixed.Zero, false
	}
	f.Feed(in)
	return f.Output(), true
}

// Output returns the output selected by the filter's mode.
func (f *Filter) Output() fixed.Sample {
	switch f.mode {
	case BandPass:
		return f.bp
	case HighPass:
		return f.hp
	case Notch:
		return f.no
	default:
		return f.lp
	}
}

func (f *Filter) LowPass() fixed.Sample  { return f.lp }
func (f *Filter) BandPass() fixed.Sample { return f.bp }
func (f *Filter) HighPass() fixed.Sample { return f.hp }
func (f *Filter) Notch() fixed.Sample    { return f.no }

// Reset clears the filter state. Coefficients are kept.
func (f *Filter) Reset() {
	f.lp, f.bp, f.hp, f.no = 0, 0, 0, 0
}

// SetInput replaces the input source.
func (f *Filter) SetInput(in Input) { f.input = in }

// SetMode selects the output returned by NextSample.
func (f *Filter) SetMode(m Mode) { f.mode = m }

// Mode returns the selected output.
func (f *Filter) Mode() Mode { return f.mode }

// SetOverflow selects the narrowing policy.
func (f *Filter) SetOverflow(o Overflow) { f.overflow = o }

// SetCutoff sets the target frequency and recomputes ft.
func (f *Filter) SetCutoff(c units.Frequency) {
	f.cutoff = c.MilliHertz()
	f.updateFt()
}

// Cutoff returns the target frequency.
func (f *Filter) Cutoff() units.MilliHertz { return f.cutoff }

// SetResonance sets the resonance. Values above QMax clamp to QMax.
func (f *Filter) SetResonance(q uint16) {
	if q > QMax {
		q = QMax
	}
	f.resonance = q
	f.qInv = QMax - q
}

// Resonance returns the resonance, in [0, QMax].
func (f *Filter) Resonance() uint16 { return f.resonance }

// SetSampleRate sets the sample rate and recomputes ft. When the input
// follows a sample rate too it is updated first. A zero rate is rejected and
// leaves the filter and its input unchanged.
func (f *Filter) SetSampleRate(rate units.Frequency) error {
	m := rate.MilliHertz()
	if m == 0 {
		return ErrZeroSampleRate
	}
	if rs, ok := f.input.(rateSetter); ok {
		if err := rs.SetSampleRate(rate); err != nil {
			return fmt.Errorf("svf: input: %w", err)
		}
	}
	f.sampleRate = m
	f.updateFt()
	return nil
}

// SampleRate returns the sample rate.
func (f *Filter) SampleRate() units.MilliHertz { return f.sampleRate }

// Coefficients returns the frequency coefficient ft and the inverse
// resonance qInv, both as fractions of Norm.
func (f *Filter) Coefficients() (ft uint32, qInv uint16) {
	return f.ft, f.qInv
}

func (f *Filter) updateFt() {
	ft := uint64(Norm) * uint64(f.cutoff) / uint64(f.sampleRate)
	if ft > ftMax {
		ft = ftMax
	}
	f.ft = uint32(ft)
}
