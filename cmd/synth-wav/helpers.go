package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	synth "github.com/tphakala/go-fixed-synth"
	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/render"
)

// parsePatchList splits a comma-separated list of patch names and checks
// each against the known patches.
func parsePatchList(list string) ([]string, error) {
	known := synth.PatchNames()
	var patches []string
	for name := range strings.SplitSeq(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown patch %q (known: %s)", name, strings.Join(known, ", "))
		}
		if !slices.Contains(patches, name) {
			patches = append(patches, name)
		}
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("no patch given")
	}
	return patches, nil
}

// outputPaths returns base for a single patch, or base_<patch>.wav for each
// patch otherwise.
func outputPaths(base string, patches []string) []string {
	if len(patches) == 1 {
		return []string{base}
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".wav"
	}
	paths := make([]string, len(patches))
	for i, p := range patches {
		paths[i] = stem + "_" + p + ext
	}
	return paths
}

// clampResonance limits a flag value to the filter's resonance range.
func clampResonance(q uint) uint16 {
	return uint16(min(q, uint(synth.QMax)))
}

// wavOutputWriter wraps an output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates a 16-bit mono PCM WAV file.
func createWAVOutput(path string, sampleRate int, comment string) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(outputFile, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	enc.Metadata = &wav.Metadata{Software: wavSoftwareTag, Comments: comment}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: enc,
		buf: &audio.IntBuffer{
			Data:           make([]int, 0, bufferSize),
			Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
			SourceBitDepth: wavBitDepth,
		},
	}, nil
}

// Write encodes the samples currently held in buf.
func (w *wavOutputWriter) Write() error {
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	name         string
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(name string, totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		name:         name,
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("%s: %d%%", p.name, progress)
		p.lastProgress = progress
	}
}

// renderStats summarizes one rendered file.
type renderStats struct {
	samples int
	peak    float64
	rms     float64
	clipped int
}

// renderPatch builds the patch described by cfg and writes up to maxSamples
// samples to path. Rendering stops early when the patch ends.
func renderPatch(ctx context.Context, cfg *synth.PatchConfig, path string, maxSamples int, verbose bool) (*renderStats, error) {
	src, err := synth.NewPatch(cfg)
	if err != nil {
		return nil, err
	}

	sampleRate := int(src.SampleRate().Hertz())
	out, err := createWAVOutput(path, sampleRate, cfg.Name)
	if err != nil {
		return nil, err
	}

	block := make([]fixed.Sample, bufferSize)
	scratch := make([]float64, bufferSize)
	progress := newProgressTracker(cfg.Name, int64(maxSamples), verbose)

	var (
		total      int
		sumSquares float64
		st         renderStats
	)
	for total < maxSamples {
		if err := ctx.Err(); err != nil {
			_ = out.Close()
			return nil, err
		}

		want := min(bufferSize, maxSamples-total)
		n := render.Ints(src, out.buf, block[:want])
		if n == 0 {
			break
		}
		if err := out.Write(); err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("failed to write samples: %w", err)
		}

		bs := render.Analyze(block[:n], scratch)
		st.peak = max(st.peak, bs.Peak)
		st.clipped += bs.Clipped
		sumSquares += bs.RMS * bs.RMS * float64(n)

		total += n
		progress.reportIfNeeded(int64(total))
		if n < want {
			break
		}
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	st.samples = total
	if total > 0 {
		st.rms = math.Sqrt(sumSquares / float64(total))
	}
	return &st, nil
}
