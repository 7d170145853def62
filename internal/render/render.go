// Package render pulls fixed-point samples from sources into buffers for
// file writers and audio devices.
package render

import (
	"math"

	"github.com/go-audio/audio"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/simdops"
)

// BitDepth is the PCM bit depth of rendered integer buffers.
const BitDepth = 16

// Source is the pull side of every synthesizer block.
type Source interface {
	NextSample() (fixed.Sample, bool)
}

// Block fills dst from src until dst is full or src has no sample, and
// returns the number of samples written.
func Block(src Source, dst []fixed.Sample) int {
	for i := range dst {
		s, ok := src.NextSample()
		if !ok {
			return i
		}
		dst[i] = s
	}
	return len(dst)
}

// Ints renders into buf.Data as mono 16-bit PCM, reusing its capacity.
// buf.Data is resliced to the rendered length, which is returned.
func Ints(src Source, buf *audio.IntBuffer, scratch []fixed.Sample) int {
	n := Block(src, scratch)
	if cap(buf.Data) < n {
		buf.Data = make([]int, n)
	}
	buf.Data = buf.Data[:n]
	for i, s := range scratch[:n] {
		buf.Data[i] = int(s)
	}
	buf.SourceBitDepth = BitDepth
	return n
}

// Float32 converts samples to float32 in [-1, 1).
func Float32(dst []float32, src []fixed.Sample) int {
	return simdops.FromSamples(dst, src)
}

// Float64 converts samples to float64 in [-1, 1).
func Float64(dst []float64, src []fixed.Sample) int {
	return simdops.FromSamples(dst, src)
}

// Stats summarizes a rendered block.
type Stats struct {
	Samples int
	Peak    float64 // largest absolute value, as a fraction of full scale
	Mean    float64
	RMS     float64
	Clipped int // samples sitting on either rail
}

// Analyze computes block statistics. scratch is used for the float
// conversion and must be at least len(samples) long; nil allocates.
func Analyze(samples []fixed.Sample, scratch []float64) Stats {
	st := Stats{Samples: len(samples)}
	if len(samples) == 0 {
		return st
	}
	if len(scratch) < len(samples) {
		scratch = make([]float64, len(samples))
	}
	x := scratch[:Float64(scratch, samples)]

	var peak int32
	for _, v := range samples {
		if v.IsClipping() {
			st.Clipped++
		}
		a := int32(v)
		if a < 0 {
			a = -a
		}
		peak = max(peak, a)
	}
	st.Peak = float64(peak) / float64(fixed.Norm)
	st.Mean = simdops.Mean(x)
	st.RMS = math.Sqrt(simdops.Energy(x) / float64(len(x)))
	return st
}
