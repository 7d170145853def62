package noise

import (
	"math/bits"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/lfsr"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

// Voss-McCartney geometry
const (
	pinkRows = 8

	// Each row and the white component contribute a value in
	// [-pinkHalfRange, pinkHalfRange).
	pinkBits      = 12
	pinkHalfRange = 1 << (pinkBits - 1)
	pinkMask      = 1<<pinkBits - 1
)

// Pink approximates 1/f noise with the Voss-McCartney algorithm. Row k is
// refreshed every 2^(k+1) samples, selected by the trailing zero count of a
// running counter, so each tick touches at most one row.
type Pink struct {
	clock
	reg     *lfsr.LFSR[uint32]
	rows    [pinkRows]int32
	sum     int32
	counter uint32
}

// NewPink returns a pink noise source with the default seed.
func NewPink() *Pink {
	p := &Pink{clock: newClock(), reg: lfsr.New32()}
	p.fill()
	return p
}

func (p *Pink) random() int32 {
	return int32(p.reg.Next()&pinkMask) - pinkHalfRange
}

func (p *Pink) fill() {
	p.sum = 0
	for i := range p.rows {
		p.rows[i] = p.random()
		p.sum += p.rows[i]
	}
	p.counter = 0
}

func (p *Pink) NextSample() (fixed.Sample, bool) {
	p.counter++
	if k := bits.TrailingZeros32(p.counter); k < pinkRows {
		v := p.random()
		p.sum += v - p.rows[k]
		p.rows[k] = v
	}
	return fixed.Clamp(p.sum + p.random()), true
}

// SetSeed reseeds the register and refills every row. Zero is rejected.
func (p *Pink) SetSeed(seed uint32) error {
	if err := p.reg.SetSeed(seed); err != nil {
		return err
	}
	p.fill()
	return nil
}

func (p *Pink) SetSampleRate(f units.Frequency) error {
	return p.set(f)
}
