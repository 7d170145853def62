package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

const (
	// Real-time drain cadence
	drainTick = 10 * time.Millisecond

	// Buffer fill reporting under -v
	fillInterval = time.Second

	bytesPerFloat32 = 4
	msPerSecond     = 1000
)

// streamCapacity returns the render-ahead buffer size in samples for the
// given rate and latency.
func streamCapacity(rate, bufferMs int) int {
	if bufferMs <= 0 {
		return 0
	}
	return rate * bufferMs / msPerSecond
}

// drainRealtime copies r to w at bytesPerSecond, in chunks of one tick,
// until r ends or ctx is cancelled.
func drainRealtime(ctx context.Context, r io.Reader, w io.Writer, bytesPerSecond int, tick time.Duration) error {
	chunk := max(int(int64(bytesPerSecond)*int64(tick)/int64(time.Second)), bytesPerFloat32)
	buf := make([]byte, chunk)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// fillLevel is implemented by the render-ahead buffer.
type fillLevel interface {
	Available() int
	Capacity() int
}

// describeFill formats how full the render-ahead buffer is.
func describeFill(f fillLevel) string {
	avail, capacity := f.Available(), f.Capacity()
	return fmt.Sprintf("buffer %d/%d samples (%d%%)", avail, capacity, avail*100/max(capacity, 1))
}

// reportFill logs the buffer level every interval until stop is closed.
func reportFill(stop <-chan struct{}, f fillLevel, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			log.Print(describeFill(f))
		}
	}
}
