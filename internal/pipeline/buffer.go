// Package pipeline decouples sample production from consumption with a
// bounded FIFO, so a render goroutine can run ahead of an audio device.
package pipeline

import (
	"sync"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
)

// FIFO is a fixed-capacity queue of samples safe for one producer and one
// consumer. Capacity is rounded up to a power of two so positions wrap with
// a mask.
type FIFO struct {
	data     []fixed.Sample
	mask     uint32
	size     int
	readPos  uint32
	writePos uint32
	closed   bool
	mu       sync.Mutex

	// space is signalled after a read frees room.
	space chan struct{}
}

// NewFIFO creates a FIFO holding at least capacity samples.
func NewFIFO(capacity int) *FIFO {
	cap2 := 1
	for cap2 < capacity {
		cap2 <<= 1
	}

	return &FIFO{
		data:  make([]fixed.Sample, cap2),
		mask:  uint32(cap2 - 1),
		space: make(chan struct{}, 1),
	}
}

// Write appends as many samples as fit and returns the count written.
// Writes after Close are dropped.
func (f *FIFO) Write(samples []fixed.Sample) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0
	}
	n := min(len(samples), len(f.data)-f.size)
	for _, s := range samples[:n] {
		f.data[f.writePos&f.mask] = s
		f.writePos++
	}
	f.size += n
	return n
}

// ReadSamples moves up to len(dst) samples into dst. done reports that the
// FIFO is closed and fully drained.
func (f *FIFO) ReadSamples(dst []fixed.Sample) (n int, done bool) {
	f.mu.Lock()
	n = min(len(dst), f.size)
	for i := range n {
		dst[i] = f.data[f.readPos&f.mask]
		f.readPos++
	}
	f.size -= n
	done = f.closed && f.size == 0
	f.mu.Unlock()

	if n > 0 {
		select {
		case f.space <- struct{}{}:
		default:
		}
	}
	return n, done
}

// NextSample pops one sample. It reports false when the FIFO is empty.
func (f *FIFO) NextSample() (fixed.Sample, bool) {
	var one [1]fixed.Sample
	n, _ := f.ReadSamples(one[:])
	return one[0], n == 1
}

// Available returns the number of samples waiting to be read.
func (f *FIFO) Available() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

// Space returns the room left for writing.
func (f *FIFO) Space() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data) - f.size
}

// Capacity returns the buffer capacity.
func (f *FIFO) Capacity() int {
	return len(f.data)
}

// Close marks the end of the stream. Buffered samples remain readable.
func (f *FIFO) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
