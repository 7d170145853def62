// Package synth provides integer-only, fixed-point synthesizer building
// blocks in pure Go.
//
// Every block produces one 16-bit sample per call with a bounded, constant
// cost: no allocation, no locks and no division by a runtime value in the
// per-sample path.
// Rate-dependent coefficients are computed once when a frequency or sample
// rate changes.
//
// # Building Blocks
//
//   - [Oscillator]: phase-accumulator wavetable generator (sine, saw, square,
//     triangle, exponential decay, or any caller-supplied table)
//   - [Filter]: Chamberlin state-variable filter with simultaneous low-pass,
//     band-pass, high-pass and notch outputs
//   - White, bit-flip, pink and crackle noise driven by Galois LFSRs
//   - [Gain], [Attenuator], [Mix] and [VCA] for wiring blocks together
//
// # Quick Start
//
// Pull samples from any [Source]:
//
//	sine := synth.NewSine(synth.Hertz(440))
//	buf := make([]synth.Sample, 1024)
//	n := synth.Render(sine, buf)
//
// Compose a patch:
//
//	noise := synth.NewNoisePatch() // white noise into a 200 Hz low-pass
//	pluck, err := synth.NewPluck(synth.Hertz(220), synth.Milliseconds(400))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mix := synth.NewMix(noise, pluck)
//
// # Units
//
// Frequencies are unsigned integers in mHz, Hz or kHz ([MilliHertz],
// [Hertz], [KiloHertz]); periods are [Milliseconds] or [Microseconds]. Any
// of them can be passed where a [Frequency] is expected.
//
// # Fixed Point
//
// A [Sample] is a signed 16-bit value where [SampleMax] is just below +1.0
// and [SampleMin] is -1.0. Gains and envelopes multiply with
// [Sample.NormMul], which divides the widened product by 32768.
//
// # Build Tags
//
// The oscillator derives its phase increment from a precomputed coefficient
// and a shift. Building with the osc_divide tag switches to a direct
// multiply and divide; both agree to within one unit of phase increment.
//
// # Thread Safety
//
// Blocks are not safe for concurrent use. Give each voice and each goroutine
// its own instances.
package synth
