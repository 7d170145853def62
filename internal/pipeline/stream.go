package pipeline

import (
	"context"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/render"
)

// Stream renders a source into a FIFO ahead of its consumer.
type Stream struct {
	*FIFO
	src   render.Source
	block []fixed.Sample
}

// NewStream returns a stream over src buffering up to capacity samples and
// rendering blockSize samples at a time.
func NewStream(src render.Source, capacity, blockSize int) *Stream {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	if capacity < blockSize {
		capacity = blockSize * defaultBlocksBuffered
	}
	return &Stream{
		FIFO:  NewFIFO(capacity),
		src:   src,
		block: make([]fixed.Sample, blockSize),
	}
}

// Run renders until the source ends or ctx is cancelled, then closes the
// FIFO. It returns ctx.Err() on cancellation and nil when the source ended.
func (s *Stream) Run(ctx context.Context) error {
	defer s.Close()

	for {
		n := render.Block(s.src, s.block)
		pending := s.block[:n]
		for len(pending) > 0 {
			w := s.Write(pending)
			pending = pending[w:]
			if len(pending) == 0 {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.space:
			}
		}
		if n < len(s.block) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
