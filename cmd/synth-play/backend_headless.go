//go:build headless

package main

import (
	"context"
	"io"
)

// play consumes r in real time and discards it.
func play(ctx context.Context, r io.Reader, sampleRate, channels int) error {
	return drainRealtime(ctx, r, io.Discard, sampleRate*channels*bytesPerFloat32, drainTick)
}
