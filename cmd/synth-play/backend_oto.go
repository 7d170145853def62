//go:build !headless

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	// Device buffer; oto picks a platform default for zero
	otoBufferSize = 50 * time.Millisecond

	// How often to check whether the player has drained
	pollInterval = 20 * time.Millisecond
)

// play streams r to the default output device until r ends and the device
// has drained, or ctx is cancelled.
func play(ctx context.Context, r io.Reader, sampleRate, channels int) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(r)
	defer func() { _ = player.Close() }()
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
			if !player.IsPlaying() {
				return nil
			}
		}
	}
}
