//go:build osc_divide

package osc

// ActiveIncrement is the coefficient path compiled into this build.
const ActiveIncrement = IncrementDivide

func (o *Oscillator) updateDeltaPhi() {
	o.deltaPhi = deltaPhiDivide(o.freq, o.sampleRate)
}
