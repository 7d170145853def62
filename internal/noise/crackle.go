package noise

import (
	"math"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/lfsr"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

// DefaultCrackleDensity is the default average impulse rate.
const DefaultCrackleDensity = units.Hertz(20)

// Crackle emits sparse random impulses, like vinyl surface noise. On each
// tick the register is compared against a threshold derived from the
// density and sample rate; a hit emits one impulse of random amplitude and
// sign, otherwise silence.
type Crackle struct {
	clock
	reg       *lfsr.LFSR[uint32]
	amp       *lfsr.LFSR[uint16]
	density   units.MilliHertz
	threshold uint32
}

// NewCrackle returns a crackle source at DefaultCrackleDensity.
func NewCrackle() *Crackle {
	c := &Crackle{clock: newClock(), reg: lfsr.New32(), amp: lfsr.New16()}
	c.SetDensity(DefaultCrackleDensity)
	return c
}

// SetDensity sets the average number of impulses per second.
func (c *Crackle) SetDensity(d units.Frequency) {
	c.density = d.MilliHertz()
	c.updateThreshold()
}

// Density returns the average impulse rate.
func (c *Crackle) Density() units.MilliHertz { return c.density }

func (c *Crackle) updateThreshold() {
	t := (uint64(c.density) << 32) / uint64(c.sampleRate)
	if t > math.MaxUint32 {
		t = math.MaxUint32
	}
	c.threshold = uint32(t)
}

func (c *Crackle) NextSample() (fixed.Sample, bool) {
	if c.reg.Next() >= c.threshold {
		return fixed.Zero, true
	}
	return fixed.Sample(int16(c.amp.Next())), true
}

// SetSeed reseeds the trigger register. Zero is rejected.
func (c *Crackle) SetSeed(seed uint32) error {
	return c.reg.SetSeed(seed)
}

// SetSampleRate sets the sample rate and rescales the impulse threshold so
// the density in impulses per second is kept.
func (c *Crackle) SetSampleRate(f units.Frequency) error {
	if err := c.set(f); err != nil {
		return err
	}
	c.updateThreshold()
	return nil
}
