package synth

import "fmt"

// rateFollower stores a composite's sample rate and forwards changes to its
// children. Zero is rejected before any child is touched. If a child
// rejects the rate, the children already changed are restored to their
// previous rates and the composite keeps its own.
type rateFollower struct {
	sampleRate MilliHertz
}

func (r *rateFollower) SampleRate() MilliHertz { return r.sampleRate }

func (r *rateFollower) propagate(rate Frequency, children ...Source) error {
	m := rate.MilliHertz()
	if m == 0 {
		return ErrZeroSampleRate
	}
	prev := make([]MilliHertz, 0, len(children))
	for i, c := range children {
		was := c.SampleRate()
		if err := c.SetSampleRate(rate); err != nil {
			for j, done := range children[:i] {
				if prev[j] != 0 {
					_ = done.SetSampleRate(prev[j])
				}
			}
			return fmt.Errorf("synth: source %d: %w", i, err)
		}
		prev = append(prev, was)
	}
	r.sampleRate = m
	return nil
}

// Gain scales a source by a fixed-point factor where SampleMax is unity.
type Gain struct {
	rateFollower
	in   Source
	gain Sample
}

// NewGain returns in scaled by gain.
func NewGain(in Source, gain Sample) *Gain {
	return &Gain{rateFollower: rateFollower{sampleRate: in.SampleRate()}, in: in, gain: gain}
}

func (g *Gain) NextSample() (Sample, bool) {
	s, ok := g.in.NextSample()
	if !ok {
		return 0, false
	}
	return s.NormMul(g.gain), true
}

// SetGain replaces the gain factor.
func (g *Gain) SetGain(gain Sample) { g.gain = gain }

func (g *Gain) SetSampleRate(rate Frequency) error {
	return g.propagate(rate, g.in)
}

// Attenuator divides a source by 2^Bits with an arithmetic shift.
type Attenuator struct {
	rateFollower
	in   Source
	bits uint
}

// NewAttenuator returns in shifted right by bits.
func NewAttenuator(in Source, bits uint) *Attenuator {
	return &Attenuator{rateFollower: rateFollower{sampleRate: in.SampleRate()}, in: in, bits: bits}
}

func (a *Attenuator) NextSample() (Sample, bool) {
	s, ok := a.in.NextSample()
	if !ok {
		return 0, false
	}
	return s.Shift(a.bits), true
}

func (a *Attenuator) SetSampleRate(rate Frequency) error {
	return a.propagate(rate, a.in)
}

// Mix sums its inputs with saturation. Inputs without a sample contribute
// silence; Mix itself reports no sample only when every input is silent.
type Mix struct {
	rateFollower
	inputs []Source
}

// NewMix returns the saturating sum of inputs. The sample rate is taken from
// the first input.
func NewMix(inputs ...Source) *Mix {
	m := &Mix{inputs: inputs}
	if len(inputs) > 0 {
		m.sampleRate = inputs[0].SampleRate()
	} else {
		m.sampleRate = DefaultSampleRate.MilliHertz()
	}
	return m
}

func (m *Mix) NextSample() (Sample, bool) {
	var sum Sample
	emitted := false
	for _, in := range m.inputs {
		s, ok := in.NextSample()
		if !ok {
			continue
		}
		sum = sum.SaturatingAdd(s)
		emitted = true
	}
	return sum, emitted
}

func (m *Mix) SetSampleRate(rate Frequency) error {
	return m.propagate(rate, m.inputs...)
}

// VCA multiplies a carrier by an envelope. The voice ends when either the
// carrier or the envelope has no sample.
type VCA struct {
	rateFollower
	carrier  Source
	envelope Source
}

// NewVCA returns carrier shaped by envelope.
func NewVCA(carrier, envelope Source) *VCA {
	return &VCA{
		rateFollower: rateFollower{sampleRate: carrier.SampleRate()},
		carrier:      carrier,
		envelope:     envelope,
	}
}

func (v *VCA) NextSample() (Sample, bool) {
	e, ok := v.envelope.NextSample()
	if !ok {
		return 0, false
	}
	s, ok := v.carrier.NextSample()
	if !ok {
		return 0, false
	}
	return s.NormMul(e), true
}

func (v *VCA) SetSampleRate(rate Frequency) error {
	return v.propagate(rate, v.carrier, v.envelope)
}
