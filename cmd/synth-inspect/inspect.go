package main

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/osc"
	"github.com/tphakala/go-fixed-synth/internal/svf"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

const (
	// Measurement window
	settleSamples  = 2048
	measureSamples = 4096

	// Probe tone sits 6 dB below full scale so resonant modes have headroom
	probeShift = 1

	// Bins either side of the probe searched for its peak
	binSearch = 1
)

// oscReport describes the coefficients an oscillator derives for one
// frequency and sample rate.
type oscReport struct {
	Info            osc.Info
	SamplesPerCycle float64
	ActualHz        float64
	ErrorCents      float64
}

// inspectOscillator configures a sine oscillator and reports the phase
// increment it settles on.
func inspectOscillator(freq units.Frequency, rate units.Frequency) (*oscReport, error) {
	o := osc.NewSine()
	if err := o.SetSampleRate(rate); err != nil {
		return nil, err
	}
	o.SetFrequency(freq)
	info := o.Info()

	r := &oscReport{Info: info}
	if info.DeltaPhi > 0 {
		r.SamplesPerCycle = float64(info.PhiMax) / float64(info.DeltaPhi)
		r.ActualHz = float64(info.DeltaPhi) * units.HertzFloat(info.SampleRate) / float64(info.PhiMax)
	}
	if want := units.HertzFloat(info.Frequency); want > 0 && r.ActualHz > 0 {
		r.ErrorCents = 1200 * math.Log2(r.ActualHz/want)
	}
	return r, nil
}

// effectiveCutoff returns the analog corner frequency the filter's ft
// coefficient corresponds to.
func effectiveCutoff(ft uint32, rate units.Frequency) float64 {
	return float64(ft) * units.HertzFloat(rate) / (2 * math.Pi * float64(svf.Norm))
}

// responsePoint is the measured filter gain at one probe frequency.
type responsePoint struct {
	Hz   float64
	Gain float64
}

// DB returns the gain in decibels.
func (p responsePoint) DB() float64 {
	if p.Gain <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(p.Gain)
}

// halved scales an input down by probeShift bits.
type halved struct{ src svf.Input }

func (h halved) NextSample() (fixed.Sample, bool) {
	s, ok := h.src.NextSample()
	return s.Shift(probeShift), ok
}

// measureGain drives a filter built from cfg with a sine at probe and
// returns the ratio of output to input at the probe frequency, after the
// filter has settled.
func measureGain(cfg svf.Config, probe units.Frequency) (float64, error) {
	rate := cfg.SampleRate
	if rate == nil {
		rate = svf.DefaultSampleRate
	}

	tone := osc.NewSine()
	if err := tone.SetSampleRate(rate); err != nil {
		return 0, err
	}
	tone.SetFrequency(probe)
	tone.Start()

	var in fixed.Sample
	tap := tapInput{src: halved{src: tone}, last: &in}
	cfg.Input = tap
	f, err := svf.New(&cfg)
	if err != nil {
		return 0, err
	}

	x := make([]float64, measureSamples)
	y := make([]float64, measureSamples)
	for i := range settleSamples + measureSamples {
		s, ok := f.NextSample()
		if !ok {
			return 0, fmt.Errorf("filter input ended after %d samples", i)
		}
		if j := i - settleSamples; j >= 0 {
			x[j] = in.Float64()
			y[j] = s.Float64()
		}
	}

	bin := int(math.Round(units.HertzFloat(probe) * measureSamples / units.HertzFloat(rate)))
	xin := binPeak(x, bin)
	if xin == 0 {
		return 0, fmt.Errorf("probe %v has no energy in the measurement window", probe)
	}
	return binPeak(y, bin) / xin, nil
}

// tapInput records the last sample it passed on.
type tapInput struct {
	src  svf.Input
	last *fixed.Sample
}

func (t tapInput) NextSample() (fixed.Sample, bool) {
	s, ok := t.src.NextSample()
	*t.last = s
	return s, ok
}

// binPeak returns the largest FFT magnitude within binSearch bins of bin.
func binPeak(x []float64, bin int) float64 {
	fft := fourier.NewFFT(len(x))
	coeffs := fft.Coefficients(nil, x)

	lo := max(bin-binSearch, 1)
	hi := min(bin+binSearch, len(coeffs)-1)
	if lo > hi {
		return 0
	}
	mags := make([]float64, hi-lo+1)
	for i := range mags {
		mags[i] = cmplx.Abs(coeffs[lo+i])
	}
	return floats.Max(mags)
}

// measureResponse measures the filter gain at each probe frequency.
func measureResponse(cfg svf.Config, probes []float64) ([]responsePoint, error) {
	points := make([]responsePoint, 0, len(probes))
	for _, hz := range probes {
		g, err := measureGain(cfg, units.FromHertzFloat(hz))
		if err != nil {
			return nil, fmt.Errorf("probe %.1f Hz: %w", hz, err)
		}
		points = append(points, responsePoint{Hz: hz, Gain: g})
	}
	return points, nil
}

// peakResponse returns the probe with the largest gain.
func peakResponse(points []responsePoint) responsePoint {
	if len(points) == 0 {
		return responsePoint{}
	}
	gains := make([]float64, len(points))
	for i, p := range points {
		gains[i] = p.Gain
	}
	return points[floats.MaxIdx(gains)]
}

// octaveProbes returns frequencies an octave apart from lowest up to but
// excluding nyquist.
func octaveProbes(lowest, nyquist float64) []float64 {
	var probes []float64
	for f := lowest; f < nyquist; f *= 2 {
		probes = append(probes, f)
	}
	return probes
}
