package noise

import (
	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/lfsr"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

// White is full-band noise from a 32-bit LFSR.
//
// Each sample is Max minus the low 16 bits of the register. The transform is
// biased: its mean sits half an LSB below zero, and consecutive samples
// inherit the register's shift correlation. Kept as is so seeded output
// stays reproducible.
type White struct {
	clock
	reg *lfsr.LFSR[uint32]
}

// NewWhite returns a white noise source with the default seed.
func NewWhite() *White {
	return &White{clock: newClock(), reg: lfsr.New32()}
}

// NextSample returns the next noise sample. It always succeeds.
func (w *White) NextSample() (fixed.Sample, bool) {
	low := int32(w.reg.Next() & 0xFFFF)
	return fixed.Sample(int32(fixed.Max) - low), true
}

// SetSeed reseeds the register. Zero is rejected.
func (w *White) SetSeed(seed uint32) error {
	return w.reg.SetSeed(seed)
}

// SetSampleRate records the sample rate. White noise is rate independent.
func (w *White) SetSampleRate(f units.Frequency) error {
	return w.set(f)
}
