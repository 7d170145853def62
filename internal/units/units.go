// Package units provides integer frequency and period types used to configure
// oscillators and filters without floating point.
//
// Frequencies come in three scales (mHz, Hz, kHz) that convert between each
// other by exact powers of ten. Periods (ms, us) are reciprocals of
// frequencies and are computed by integer division, so they truncate.
// Converting a zero value to its reciprocal scale yields zero.
package units

import "math"

// Scale factors between unit steps.
const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
)

// Frequency is implemented by every frequency scale.
type Frequency interface {
	MilliHertz() MilliHertz
	Hertz() Hertz
	KiloHertz() KiloHertz
}

// Period is implemented by every unit that can be expressed as a duration.
type Period interface {
	Microseconds() Microseconds
	Milliseconds() Milliseconds
}

// MilliHertz is a frequency in thousandths of a hertz.
type MilliHertz uint32

// Hertz is a frequency in hertz.
type Hertz uint32

// KiloHertz is a frequency in thousands of hertz.
type KiloHertz uint32

// Milliseconds is a period in milliseconds.
type Milliseconds uint32

// Microseconds is a period in microseconds.
type Microseconds uint32

// reciprocal divides num by v, returning 0 for a zero divisor.
func reciprocal(num uint64, v uint32) uint32 {
	if v == 0 {
		return 0
	}
	q := num / uint64(v)
	if q > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(q)
}

// widen multiplies v by f, saturating at the uint32 maximum.
func widen(v uint32, f uint64) uint32 {
	p := uint64(v) * f
	if p > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(p)
}

// ===== MilliHertz =====

func (f MilliHertz) MilliHertz() MilliHertz { return f }
func (f MilliHertz) Hertz() Hertz           { return Hertz(uint32(f) / thousand) }
func (f MilliHertz) KiloHertz() KiloHertz   { return KiloHertz(uint32(f) / million) }

func (f MilliHertz) Microseconds() Microseconds {
	return Microseconds(reciprocal(billion, uint32(f)))
}

func (f MilliHertz) Milliseconds() Milliseconds {
	return Milliseconds(reciprocal(million, uint32(f)))
}

// ===== Hertz =====

func (f Hertz) MilliHertz() MilliHertz { return MilliHertz(widen(uint32(f), thousand)) }
func (f Hertz) Hertz() Hertz           { return f }
func (f Hertz) KiloHertz() KiloHertz   { return KiloHertz(uint32(f) / thousand) }

func (f Hertz) Microseconds() Microseconds {
	return Microseconds(reciprocal(million, uint32(f)))
}

func (f Hertz) Milliseconds() Milliseconds {
	return Milliseconds(reciprocal(thousand, uint32(f)))
}

// ===== KiloHertz =====

func (f KiloHertz) MilliHertz() MilliHertz { return MilliHertz(widen(uint32(f), million)) }
func (f KiloHertz) Hertz() Hertz           { return Hertz(widen(uint32(f), thousand)) }
func (f KiloHertz) KiloHertz() KiloHertz   { return f }

func (f KiloHertz) Microseconds() Microseconds {
	return Microseconds(reciprocal(thousand, uint32(f)))
}

func (f KiloHertz) Milliseconds() Milliseconds {
	return Milliseconds(reciprocal(1, uint32(f)))
}

// ===== Milliseconds =====

func (p Milliseconds) MilliHertz() MilliHertz { return MilliHertz(reciprocal(million, uint32(p))) }
func (p Milliseconds) Hertz() Hertz           { return Hertz(reciprocal(thousand, uint32(p))) }
func (p Milliseconds) KiloHertz() KiloHertz   { return KiloHertz(reciprocal(1, uint32(p))) }

func (p Milliseconds) Microseconds() Microseconds {
	return Microseconds(widen(uint32(p), thousand))
}
func (p Milliseconds) Milliseconds() Milliseconds { return p }

// ===== Microseconds =====

func (p Microseconds) MilliHertz() MilliHertz { return MilliHertz(reciprocal(billion, uint32(p))) }
func (p Microseconds) Hertz() Hertz           { return Hertz(reciprocal(million, uint32(p))) }
func (p Microseconds) KiloHertz() KiloHertz   { return KiloHertz(reciprocal(thousand, uint32(p))) }

func (p Microseconds) Microseconds() Microseconds { return p }
func (p Microseconds) Milliseconds() Milliseconds {
	return Milliseconds(uint32(p) / thousand)
}

// FromHertzFloat converts a floating-point frequency in hertz to the nearest
// millihertz. Negative and NaN inputs map to zero; values beyond the range of
// MilliHertz saturate.
func FromHertzFloat(hz float64) MilliHertz {
	if !(hz > 0) {
		return 0
	}
	m := math.Round(hz * thousand)
	if m >= math.MaxUint32 {
		return math.MaxUint32
	}
	return MilliHertz(m)
}

// HertzFloat returns f in hertz as a float64.
func HertzFloat(f Frequency) float64 {
	return float64(f.MilliHertz()) / thousand
}
