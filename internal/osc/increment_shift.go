//go:build !osc_divide

package osc

// ActiveIncrement is the coefficient path compiled into this build.
const ActiveIncrement = IncrementShift

func (o *Oscillator) updateDeltaPhi() {
	o.deltaPhi = deltaPhiShift(o.freq, o.alpha)
}
