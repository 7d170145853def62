// Package lfsr implements Galois linear-feedback shift registers used as
// pseudo-random bit sources for noise generators.
package lfsr

import (
	"errors"
	"fmt"
)

// Default seeds and tap masks. Both masks give maximal-length sequences.
const (
	Seed16 uint16 = 0xBABE
	Mask16 uint16 = 0xB400

	Seed32 uint32 = 0xCAFEBABE
	Mask32 uint32 = 0xA3000000
)

// ErrZeroSeed is returned when a register would be seeded with zero, which
// locks a Galois LFSR at zero forever.
var ErrZeroSeed = errors.New("lfsr: zero seed")

// Register is the set of supported register widths.
type Register interface {
	~uint16 | ~uint32
}

// LFSR is a Galois shift register of width T. The zero value is not usable;
// construct with New, New16 or New32.
type LFSR[T Register] struct {
	state T
	mask  T
}

// New returns a register with the given seed and tap mask.
func New[T Register](seed, mask T) (*LFSR[T], error) {
	if seed == 0 {
		return nil, fmt.Errorf("%w: mask %#x", ErrZeroSeed, mask)
	}
	return &LFSR[T]{state: seed, mask: mask}, nil
}

// New16 returns a 16-bit register with the default seed and mask.
func New16() *LFSR[uint16] {
	return &LFSR[uint16]{state: Seed16, mask: Mask16}
}

// New32 returns a 32-bit register with the default seed and mask.
func New32() *LFSR[uint32] {
	return &LFSR[uint32]{state: Seed32, mask: Mask32}
}

// Next advances the register one step and returns the new state.
func (l *LFSR[T]) Next() T {
	lsb := l.state & 1
	l.state >>= 1
	if lsb != 0 {
		l.state ^= l.mask
	}
	return l.state
}

// SetSeed replaces the register state. A zero seed is rejected and the
// current state is kept.
func (l *LFSR[T]) SetSeed(seed T) error {
	if seed == 0 {
		return ErrZeroSeed
	}
	l.state = seed
	return nil
}

// State returns the current register contents without advancing.
func (l *LFSR[T]) State() T { return l.state }

// Mask returns the tap mask.
func (l *LFSR[T]) Mask() T { return l.mask }
