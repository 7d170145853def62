package osc

import "github.com/tphakala/go-fixed-synth/internal/tables"

// NewWavetable returns a looping oscillator with no table. Set one with
// SetWavetable before starting.
func NewWavetable() *Oscillator { return newDefault(nil, true) }

// NewSine returns a looping sine oscillator.
func NewSine() *Oscillator { return newDefault(tables.Sine, true) }

// NewDecay returns a one-shot exponential-decay envelope. Its frequency sets
// the envelope length: one cycle lasts 1/frequency seconds.
func NewDecay() *Oscillator { return newDefault(tables.Decay, false) }

// NewSaw returns a looping sawtooth oscillator.
func NewSaw() *Oscillator { return newDefault(tables.Saw, true) }

// NewSquare returns a looping square oscillator.
func NewSquare() *Oscillator { return newDefault(tables.Square, true) }

// NewTriangle returns a looping triangle oscillator.
func NewTriangle() *Oscillator { return newDefault(tables.Triangle, true) }
