// Command synth-play streams a synthesizer patch to the default audio
// device.
//
// Usage:
//
//	synth-play -patch pluck -freq 220
//	synth-play -patch noise -cutoff 400 -resonance 1024 -duration 10
//
// Playback runs until the patch ends, the duration elapses, or the process
// is interrupted. Build with -tags headless to drain in real time without
// an audio device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	synth "github.com/tphakala/go-fixed-synth"
	"github.com/tphakala/go-fixed-synth/internal/pipeline"
	"github.com/tphakala/go-fixed-synth/internal/render"
)

const (
	// CLI defaults
	defaultFreqHz    = 440.0
	defaultRateHz    = synth.RateDAT
	defaultCutoffHz  = 200.0
	defaultDecayMs   = 400
	defaultDensityHz = 20.0
	defaultBufferMs  = 100

	// Output layout
	outputChannels = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	patch := flag.String("patch", "sine", "Patch name: "+strings.Join(synth.PatchNames(), ", "))
	freq := flag.Float64("freq", defaultFreqHz, "Tone frequency in Hz")
	rate := flag.Int("rate", defaultRateHz, "Sample rate in Hz")
	duration := flag.Duration("duration", 0, "Stop after this long (0 plays until the patch ends)")
	cutoff := flag.Float64("cutoff", defaultCutoffHz, "Noise patch filter cutoff in Hz")
	resonance := flag.Uint("resonance", uint(synth.QMax/8), fmt.Sprintf("Noise patch filter resonance, 0-%d", synth.QMax))
	decay := flag.Uint("decay", defaultDecayMs, "Decay and pluck envelope length in ms")
	density := flag.Float64("density", defaultDensityHz, "Crackle impulses per second")
	bufferMs := flag.Int("buffer", defaultBufferMs, "Render-ahead buffer in ms")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", *rate)
	}

	cfg := &synth.PatchConfig{
		Name:       strings.ToLower(strings.TrimSpace(*patch)),
		Frequency:  synth.FromHertzFloat(*freq),
		SampleRate: synth.Hertz(*rate),
		Cutoff:     synth.FromHertzFloat(*cutoff),
		Resonance:  uint16(min(*resonance, uint(synth.QMax))),
		Decay:      synth.Milliseconds(*decay),
		Density:    synth.FromHertzFloat(*density),
	}
	src, err := synth.NewPatch(cfg)
	if err != nil {
		return err
	}

	stream := pipeline.NewStream(src, streamCapacity(*rate, *bufferMs), 0)
	reader, err := render.NewReader(stream, outputChannels, render.Float32LE, 0)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: stopping playback", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if *verbose {
		log.Printf("Patch: %s", cfg.Name)
		log.Printf("Sample rate: %d Hz, %d channels", *rate, outputChannels)
		log.Printf("Buffer: %d samples", stream.Capacity())
	}

	if *verbose {
		stop := make(chan struct{})
		defer close(stop)
		go reportFill(stop, stream, fillInterval)
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stream.Run(ctx)
	})
	g.Go(func() error {
		return play(ctx, reader, *rate, outputChannels)
	})
	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if *verbose {
		log.Printf("Played %.2fs", time.Since(start).Seconds())
	}
	return nil
}
