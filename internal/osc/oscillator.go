// Package osc implements the fixed-point wavetable oscillator.
//
// An Oscillator walks a wavetable with a 20-bit phase accumulator. The
// per-sample phase increment is derived from the target frequency and the
// sample rate only when either changes; the per-sample path is an add, a
// compare and a shift.
//
// Every oscillator flavor (raw wavetable, sine, decay envelope, saw, square,
// triangle) is the same engine with a different default table and repeat
// flag. See NewSine, NewDecay and friends.
package osc

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

var (
	// ErrZeroSampleRate is returned when a sample rate of zero is set.
	ErrZeroSampleRate = errors.New("osc: zero sample rate")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("osc: invalid configuration")
)

// Config describes a new oscillator. Zero-valued Frequency and SampleRate
// fields select DefaultFrequency and DefaultSampleRate.
type Config struct {
	// Table is the wavetable to play. It is referenced, not copied. An
	// empty table is valid; the oscillator then yields no samples.
	Table []fixed.Sample

	// Repeat selects looping playback. When false the oscillator stops
	// after one cycle.
	Repeat bool

	// Frequency is the initial target frequency.
	Frequency units.Frequency

	// SampleRate is the initial output sample rate. Must not resolve to 0 mHz.
	SampleRate units.Frequency

	// Start puts the oscillator in the running state on construction.
	Start bool
}

// Validate reports whether the configuration can build an oscillator.
func (c *Config) Validate() error {
	if c.SampleRate != nil && c.SampleRate.MilliHertz() == 0 {
		return fmt.Errorf("%w: sample rate resolves to 0 mHz", ErrInvalidConfig)
	}
	return nil
}

// Oscillator is a phase-accumulator wavetable generator. It is not safe for
// concurrent use; give each voice its own instance.
type Oscillator struct {
	table []fixed.Sample

	freq       units.MilliHertz
	sampleRate units.MilliHertz

	phi      int32
	deltaPhi int32
	alpha    uint64

	running bool
	repeat  bool

	idx int
}

// New builds an oscillator from cfg. A nil cfg yields an empty looping
// wavetable oscillator at the default frequency and sample rate.
func New(cfg *Config) (*Oscillator, error) {
	if cfg == nil {
		cfg = &Config{Repeat: true}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var freq, rate units.Frequency = DefaultFrequency, DefaultSampleRate
	if cfg.Frequency != nil {
		freq = cfg.Frequency
	}
	if cfg.SampleRate != nil {
		rate = cfg.SampleRate
	}

	o := &Oscillator{
		table:   cfg.Table,
		repeat:  cfg.Repeat,
		running: cfg.Start,
	}
	if err := o.SetSampleRate(rate); err != nil {
		return nil, err
	}
	o.SetFrequency(freq)
	return o, nil
}

// newDefault builds an oscillator with default rates, which cannot fail.
func newDefault(table []fixed.Sample, repeat bool) *Oscillator {
	o, err := New(&Config{Table: table, Repeat: repeat})
	if err != nil {
		panic("osc: default configuration rejected: " + err.Error())
	}
	return o
}

// NextSample advances the phase by one tick and returns the table entry at
// the new phase. It returns false while the oscillator is stopped or the
// table is empty.
func (o *Oscillator) NextSample() (fixed.Sample, bool) {
	if !o.running {
		return fixed.Zero, false
	}

	o.phi += o.deltaPhi
	if o.phi >= PhiMax {
		o.phi -= PhiMax
		if !o.repeat {
			o.StopAndReset()
			return fixed.Zero, false
		}
	}

	if len(o.table) == 0 {
		return fixed.Zero, false
	}
	o.idx = int((uint64(len(o.table)) * uint64(o.phi)) >> phiBits)
	return o.table[o.idx], true
}

// Start puts the oscillator into the running state.
func (o *Oscillator) Start() { o.running = true }

// Stop leaves the running state. The phase is retained.
func (o *Oscillator) Stop() { o.running = false }

// Reset zeroes the phase without changing the running state.
func (o *Oscillator) Reset() {
	o.phi = 0
	o.idx = 0
}

// ResetAndStart zeroes the phase and starts the oscillator.
func (o *Oscillator) ResetAndStart() {
	o.Reset()
	o.Start()
}

// StopAndReset stops the oscillator and zeroes the phase.
func (o *Oscillator) StopAndReset() {
	o.Stop()
	o.Reset()
}

// IsRunning reports whether the oscillator is producing samples.
func (o *Oscillator) IsRunning() bool { return o.running }

// SetRepeat selects looping (true) or one-shot (false) playback.
func (o *Oscillator) SetRepeat(repeat bool) { o.repeat = repeat }

// Repeat reports whether the oscillator loops.
func (o *Oscillator) Repeat() bool { return o.repeat }

// SetWavetable replaces the table. The phase is kept, so a table swap while
// running continues from the same relative position.
func (o *Oscillator) SetWavetable(table []fixed.Sample) {
	o.table = table
	if o.idx >= len(table) {
		o.idx = 0
	}
}

// Wavetable returns the current table.
func (o *Oscillator) Wavetable() []fixed.Sample { return o.table }

// SetFrequency sets the target frequency. Zero holds the current index.
// Frequencies at or above the sample rate clamp to one full cycle per tick.
func (o *Oscillator) SetFrequency(f units.Frequency) {
	o.freq = f.MilliHertz()
	o.updateDeltaPhi()
}

// Frequency returns the target frequency.
func (o *Oscillator) Frequency() units.MilliHertz { return o.freq }

// SetSampleRate sets the output sample rate and recomputes the increment
// coefficients. A zero rate is rejected and leaves the oscillator unchanged.
func (o *Oscillator) SetSampleRate(rate units.Frequency) error {
	m := rate.MilliHertz()
	if m == 0 {
		return ErrZeroSampleRate
	}
	o.sampleRate = m
	o.alpha = alphaFor(m)
	o.updateDeltaPhi()
	return nil
}

// SampleRate returns the output sample rate.
func (o *Oscillator) SampleRate() units.MilliHertz { return o.sampleRate }

// Phase returns the phase accumulator, in [0, PhiMax).
func (o *Oscillator) Phase() int32 { return o.phi }

// Index returns the table index of the last emitted sample.
func (o *Oscillator) Index() int { return o.idx }

// Info describes the oscillator's derived coefficients.
type Info struct {
	Frequency  units.MilliHertz
	SampleRate units.MilliHertz
	Alpha      uint64
	DeltaPhi   int32
	PhiMax     int32
	Phase      int32
	TableLen   int
	Running    bool
	Repeat     bool
	Increment  Increment
}

// Info returns a snapshot of the oscillator's configuration and state.
func (o *Oscillator) Info() Info {
	return Info{
		Frequency:  o.freq,
		SampleRate: o.sampleRate,
		Alpha:      o.alpha,
		DeltaPhi:   o.deltaPhi,
		PhiMax:     PhiMax,
		Phase:      o.phi,
		TableLen:   len(o.table),
		Running:    o.running,
		Repeat:     o.repeat,
		Increment:  ActiveIncrement,
	}
}
