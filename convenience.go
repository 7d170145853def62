package synth

import (
	"fmt"
	"slices"

	"github.com/tphakala/go-fixed-synth/internal/noise"
	"github.com/tphakala/go-fixed-synth/internal/osc"
	"github.com/tphakala/go-fixed-synth/internal/render"
	"github.com/tphakala/go-fixed-synth/internal/svf"
)

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

func started(o *Oscillator, freq Frequency) *Oscillator {
	o.SetFrequency(freq)
	o.Start()
	return o
}

// NewSine returns a running sine oscillator at freq.
func NewSine(freq Frequency) *Oscillator { return started(osc.NewSine(), freq) }

// NewSaw returns a running sawtooth oscillator at freq.
func NewSaw(freq Frequency) *Oscillator { return started(osc.NewSaw(), freq) }

// NewSquare returns a running square oscillator at freq.
func NewSquare(freq Frequency) *Oscillator { return started(osc.NewSquare(), freq) }

// NewTriangle returns a running triangle oscillator at freq.
func NewTriangle(freq Frequency) *Oscillator { return started(osc.NewTriangle(), freq) }

// NewDecay returns a running one-shot exponential envelope lasting length.
// A zero length selects 400 ms; a zero-frequency one-shot would otherwise
// hold full scale forever.
func NewDecay(length Milliseconds) *Oscillator {
	if length == 0 {
		length = defaultPluckDecayMs
	}
	return started(osc.NewDecay(), length)
}

// NewWavetable returns a running oscillator over a caller-supplied table.
// The table is referenced, not copied.
func NewWavetable(table []Sample, freq Frequency, repeat bool) (*Oscillator, error) {
	return osc.New(&osc.Config{
		Table:     table,
		Repeat:    repeat,
		Frequency: freq,
		Start:     true,
	})
}

// NewFilter returns a state-variable filter. See FilterConfig.
func NewFilter(cfg *FilterConfig) (*Filter, error) {
	return svf.New(cfg)
}

// NewWhiteNoise returns a white noise source.
func NewWhiteNoise() *WhiteNoise { return noise.NewWhite() }

// NewPinkNoise returns a pink noise source.
func NewPinkNoise() *PinkNoise { return noise.NewPink() }

// NewBitFlipNoise returns a one-bit noise source.
func NewBitFlipNoise() *BitFlipNoise { return noise.NewBitFlip() }

// NewCrackleNoise returns a sparse impulse source with density impulses per
// second.
func NewCrackleNoise(density Frequency) *CrackleNoise {
	c := noise.NewCrackle()
	c.SetDensity(density)
	return c
}

// NewNoisePatch returns white noise at a quarter of full scale through a
// 200 Hz low-pass with resonance QMax/8.
func NewNoisePatch() *Filter {
	f, err := newNoisePatch(Hertz(noisePatchCutoffHz), noisePatchResonance)
	if err != nil {
		panic("synth: default noise patch rejected: " + err.Error())
	}
	return f
}

func newNoisePatch(cutoff Frequency, resonance uint16) (*Filter, error) {
	return svf.New(&svf.Config{
		Input:     NewAttenuator(noise.NewWhite(), noisePatchShift),
		Mode:      svf.LowPass,
		Cutoff:    cutoff,
		Resonance: resonance,
	})
}

// NewPluck returns a sine at freq shaped by an exponential decay of the
// given length. The voice ends when the envelope does.
func NewPluck(freq Frequency, decay Milliseconds) (*VCA, error) {
	if decay == 0 {
		return nil, fmt.Errorf("%w: pluck decay must be positive", ErrInvalidConfig)
	}
	return NewVCA(NewSine(freq), NewDecay(decay)), nil
}

// Render pulls samples from src into dst until dst is full or src has no
// more samples, and returns the number written.
func Render(src Source, dst []Sample) int {
	return render.Block(src, dst)
}

// ===== Named patches =====

// PatchConfig selects and parameterizes a named patch.
type PatchConfig struct {
	// Name is one of PatchNames.
	Name string

	// Frequency is the pitch of tonal patches. Zero selects 440 Hz.
	Frequency Frequency

	// SampleRate is the output rate. Zero selects DefaultSampleRate.
	SampleRate Frequency

	// Cutoff and Resonance configure the noise patch filter. Zero cutoff
	// selects 200 Hz.
	Cutoff    Frequency
	Resonance uint16

	// Decay is the envelope length of the decay and pluck patches. Zero
	// selects 400 ms.
	Decay Milliseconds

	// Density is the impulse rate of the crackle patch. Zero selects 20 Hz.
	Density Frequency
}

type patchBuilder func(cfg *PatchConfig) (Source, error)

var patches = map[string]patchBuilder{
	"sine":     func(c *PatchConfig) (Source, error) { return NewSine(c.Frequency), nil },
	"saw":      func(c *PatchConfig) (Source, error) { return NewSaw(c.Frequency), nil },
	"square":   func(c *PatchConfig) (Source, error) { return NewSquare(c.Frequency), nil },
	"triangle": func(c *PatchConfig) (Source, error) { return NewTriangle(c.Frequency), nil },
	"decay":    func(c *PatchConfig) (Source, error) { return NewDecay(c.Decay), nil },
	"pluck":    func(c *PatchConfig) (Source, error) { return NewPluck(c.Frequency, c.Decay) },
	"white":    func(*PatchConfig) (Source, error) { return NewWhiteNoise(), nil },
	"pink":     func(*PatchConfig) (Source, error) { return NewPinkNoise(), nil },
	"bitflip":  func(*PatchConfig) (Source, error) { return NewBitFlipNoise(), nil },
	"crackle":  func(c *PatchConfig) (Source, error) { return NewCrackleNoise(c.Density), nil },
	"noise":    func(c *PatchConfig) (Source, error) { return newNoisePatch(c.Cutoff, c.Resonance) },
}

// PatchNames returns the names accepted by NewPatch, sorted.
func PatchNames() []string {
	names := make([]string, 0, len(patches))
	for name := range patches {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate reports whether the configuration names a known patch with a
// usable sample rate.
func (c *PatchConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil patch config", ErrInvalidConfig)
	}
	if _, ok := patches[c.Name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPatch, c.Name)
	}
	if c.SampleRate != nil && c.SampleRate.MilliHertz() == 0 {
		return fmt.Errorf("%w: sample rate resolves to 0 mHz", ErrInvalidConfig)
	}
	return nil
}

// withDefaults returns a copy of c with zero fields filled in.
func (c *PatchConfig) withDefaults() *PatchConfig {
	out := *c
	if out.Frequency == nil || out.Frequency.MilliHertz() == 0 {
		out.Frequency = osc.DefaultFrequency
	}
	if out.SampleRate == nil {
		out.SampleRate = DefaultSampleRate
	}
	if out.Cutoff == nil || out.Cutoff.MilliHertz() == 0 {
		out.Cutoff = Hertz(noisePatchCutoffHz)
	}
	if out.Decay == 0 {
		out.Decay = defaultPluckDecayMs
	}
	if out.Density == nil || out.Density.MilliHertz() == 0 {
		out.Density = noise.DefaultCrackleDensity
	}
	return &out
}

// NewPatch builds the named patch and sets its sample rate.
func NewPatch(cfg *PatchConfig) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.withDefaults()

	src, err := patches[c.Name](c)
	if err != nil {
		return nil, err
	}
	if err := src.SetSampleRate(c.SampleRate); err != nil {
		return nil, fmt.Errorf("synth: patch %q: %w", c.Name, err)
	}
	return src, nil
}
