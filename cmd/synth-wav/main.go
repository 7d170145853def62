// Command synth-wav renders synthesizer patches to 16-bit mono WAV files.
//
// Usage:
//
//	synth-wav -patch sine -freq 440 out.wav
//	synth-wav -patch noise -cutoff 200 -resonance 256 -duration 3 noise.wav
//	synth-wav -patch sine,saw,pluck -duration 1 tones.wav   # tones_sine.wav, tones_saw.wav, ...
//
// Several comma-separated patches are rendered concurrently, one file each.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	synth "github.com/tphakala/go-fixed-synth"
)

const (
	// Samples rendered per WAV write
	bufferSize = 8192

	// CLI defaults
	defaultFreqHz    = 440.0
	defaultRateHz    = synth.RateCD
	defaultDuration  = 2.0
	defaultCutoffHz  = 200.0
	defaultDecayMs   = 400
	defaultDensityHz = 20.0
	minRequiredArgs  = 1

	// Progress reporting
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// WAV format constants
	wavBitDepth    = 16
	wavChannels    = 1
	wavPCMFormat   = 1
	wavSoftwareTag = "synth-wav"
)

var errUsage = errors.New("insufficient arguments")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	patchList := flag.String("patch", "sine", "Patch names, comma separated: "+strings.Join(synth.PatchNames(), ", "))
	freq := flag.Float64("freq", defaultFreqHz, "Tone frequency in Hz")
	rate := flag.Int("rate", defaultRateHz, "Sample rate in Hz")
	duration := flag.Float64("duration", defaultDuration, "Maximum duration in seconds")
	cutoff := flag.Float64("cutoff", defaultCutoffHz, "Noise patch filter cutoff in Hz")
	resonance := flag.Uint("resonance", uint(synth.QMax/8), fmt.Sprintf("Noise patch filter resonance, 0-%d", synth.QMax))
	decay := flag.Uint("decay", defaultDecayMs, "Decay and pluck envelope length in ms")
	density := flag.Float64("density", defaultDensityHz, "Crackle impulses per second")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -patch sine -freq 440 a4.wav          # One second sine\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -patch noise -duration 3 noise.wav    # Filtered noise\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -patch sine,saw -duration 1 tone.wav  # tone_sine.wav, tone_saw.wav\n", os.Args[0])
		return errUsage
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	patches, err := parsePatchList(*patchList)
	if err != nil {
		return err
	}
	if *rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", *rate)
	}

	base := synth.PatchConfig{
		Frequency:  synth.FromHertzFloat(*freq),
		SampleRate: synth.Hertz(*rate),
		Cutoff:     synth.FromHertzFloat(*cutoff),
		Resonance:  clampResonance(*resonance),
		Decay:      synth.Milliseconds(*decay),
		Density:    synth.FromHertzFloat(*density),
	}
	maxSamples := int(*duration * float64(*rate))
	paths := outputPaths(args[0], patches)

	if *verbose {
		log.Printf("Patches: %s", strings.Join(patches, ", "))
		log.Printf("Sample rate: %d Hz", *rate)
		log.Printf("Duration: %.2fs (%d samples max)", *duration, maxSamples)
	}

	start := time.Now()
	results := make([]*renderStats, len(patches))
	g, ctx := errgroup.WithContext(context.Background())
	for i, name := range patches {
		cfg := base
		cfg.Name = name
		g.Go(func() error {
			st, err := renderPatch(ctx, &cfg, paths[i], maxSamples, *verbose)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i, st := range results {
		fmt.Printf("Rendered %s -> %s\n", patches[i], filepath.Base(paths[i]))
		fmt.Printf("  %d samples at %d Hz (%.2fs)\n", st.samples, *rate, float64(st.samples)/float64(*rate))
		fmt.Printf("  peak %.3f, rms %.3f, %d clipped\n", st.peak, st.rms, st.clipped)
	}
	fmt.Printf("Duration: %.2fs\n", elapsed.Seconds())

	return nil
}
