package noise

import (
	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/lfsr"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

// BitFlip is one-bit noise: every sample is Max or Min depending on the low
// bit of a 16-bit LFSR. The short register gives the metallic, periodic
// character of console noise channels.
type BitFlip struct {
	clock
	reg *lfsr.LFSR[uint16]
}

// NewBitFlip returns a bit-flip noise source with the default seed.
func NewBitFlip() *BitFlip {
	return &BitFlip{clock: newClock(), reg: lfsr.New16()}
}

func (b *BitFlip) NextSample() (fixed.Sample, bool) {
	if b.reg.Next()&1 != 0 {
		return fixed.Max, true
	}
	return fixed.Min, true
}

// SetSeed reseeds the register. Zero is rejected.
func (b *BitFlip) SetSeed(seed uint16) error {
	return b.reg.SetSeed(seed)
}

func (b *BitFlip) SetSampleRate(f units.Frequency) error {
	return b.set(f)
}
