// Package noise provides LFSR-driven noise sources.
//
// All sources are deterministic for a given seed and produce one sample per
// call with no allocation. They never stop, so NextSample always reports a
// sample.
package noise

import (
	"errors"

	"github.com/tphakala/go-fixed-synth/internal/units"
)

// DefaultSampleRate is the rate every source starts with.
const DefaultSampleRate = units.Hertz(44_100)

// ErrZeroSampleRate is returned when a sample rate of zero is set.
var ErrZeroSampleRate = errors.New("noise: zero sample rate")

// clock holds the sample rate shared by every source.
type clock struct {
	sampleRate units.MilliHertz
}

func newClock() clock {
	return clock{sampleRate: DefaultSampleRate.MilliHertz()}
}

// SampleRate returns the output sample rate.
func (c *clock) SampleRate() units.MilliHertz { return c.sampleRate }

func (c *clock) set(f units.Frequency) error {
	m := f.MilliHertz()
	if m == 0 {
		return ErrZeroSampleRate
	}
	c.sampleRate = m
	return nil
}
