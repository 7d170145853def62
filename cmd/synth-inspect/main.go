// Command synth-inspect prints the fixed-point coefficients the oscillator
// and filter derive for a configuration, and the filter's measured
// magnitude response.
//
// Usage:
//
//	synth-inspect -rate 44100 -freq 440
//	synth-inspect -rate 48000 -cutoff 2000 -resonance 1536 -mode bandpass
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/tphakala/go-fixed-synth/internal/svf"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

const (
	// CLI defaults
	defaultFreqHz   = 440.0
	defaultRateHz   = 44_100
	defaultCutoffHz = 1000.0
	lowestProbeHz   = 20.0
)

var errUnknownMode = errors.New("unknown filter mode")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freq := flag.Float64("freq", defaultFreqHz, "Oscillator frequency in Hz")
	rate := flag.Uint("rate", defaultRateHz, "Sample rate in Hz")
	cutoff := flag.Float64("cutoff", defaultCutoffHz, "Filter cutoff in Hz")
	resonance := flag.Uint("resonance", 0, fmt.Sprintf("Filter resonance, 0-%d", svf.QMax))
	modeName := flag.String("mode", "lowpass", "Filter mode: lowpass, bandpass, highpass, notch")
	saturate := flag.Bool("saturate", false, "Saturate filter state instead of wrapping")
	flag.Parse()

	if *rate == 0 {
		return errors.New("sample rate must be positive")
	}
	mode, err := parseMode(*modeName)
	if err != nil {
		return err
	}
	sampleRate := units.Hertz(*rate)

	fmt.Println("=== Oscillator ===")
	rep, err := inspectOscillator(units.FromHertzFloat(*freq), sampleRate)
	if err != nil {
		return err
	}
	info := rep.Info
	fmt.Printf("  Increment path: %s\n", info.Increment)
	fmt.Printf("  Frequency:      %d mHz\n", info.Frequency)
	fmt.Printf("  Sample rate:    %d mHz\n", info.SampleRate)
	fmt.Printf("  Alpha:          %d\n", info.Alpha)
	fmt.Printf("  DeltaPhi:       %d / %d\n", info.DeltaPhi, info.PhiMax)
	fmt.Printf("  Samples/cycle:  %.3f\n", rep.SamplesPerCycle)
	fmt.Printf("  Actual pitch:   %.4f Hz (%+.3f cents)\n", rep.ActualHz, rep.ErrorCents)

	overflow := svf.Wrap
	if *saturate {
		overflow = svf.Saturate
	}
	cfg := svf.Config{
		Mode:       mode,
		Cutoff:     units.FromHertzFloat(*cutoff),
		SampleRate: sampleRate,
		Resonance:  uint16(min(*resonance, uint(svf.QMax))),
		Overflow:   overflow,
	}
	f, err := svf.New(&cfg)
	if err != nil {
		return err
	}
	ft, qInv := f.Coefficients()

	fmt.Println("\n=== Filter ===")
	fmt.Printf("  Mode:             %s\n", mode)
	fmt.Printf("  ft:               %d / %d\n", ft, svf.Norm)
	fmt.Printf("  qInv:             %d / %d\n", qInv, svf.QMax)
	fmt.Printf("  Effective corner: %.2f Hz\n", effectiveCutoff(ft, sampleRate))

	points, err := measureResponse(cfg, octaveProbes(lowestProbeHz, units.HertzFloat(sampleRate)/2))
	if err != nil {
		return err
	}
	fmt.Println("\n  Magnitude response:")
	for _, p := range points {
		fmt.Printf("    %9.1f Hz  %8.2f dB\n", p.Hz, p.DB())
	}
	peak := peakResponse(points)
	fmt.Printf("  Peak: %.2f dB at %.1f Hz\n", peak.DB(), peak.Hz)

	return nil
}

// parseMode maps a mode name to its filter output.
func parseMode(name string) (svf.Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range []svf.Mode{svf.LowPass, svf.BandPass, svf.HighPass, svf.Notch} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownMode, name)
}
