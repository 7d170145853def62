package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/simdops"
)

// Format is the byte encoding produced by a Reader.
type Format int

const (
	// Float32LE encodes each sample as a little-endian IEEE 754 float32.
	Float32LE Format = iota

	// Int16LE encodes each sample as little-endian signed 16-bit PCM.
	Int16LE
)

// DefaultBlockFrames is the number of frames rendered per refill.
const DefaultBlockFrames = 512

const (
	bytesPerFloat32 = 4
	bytesPerInt16   = 2
	maxChannels     = 2
)

// ErrInvalidReader is returned by NewReader for unusable parameters.
var ErrInvalidReader = errors.New("render: invalid reader configuration")

// BlockSource is implemented by sources that deliver samples in blocks and
// can tell an underrun from the end of the stream.
type BlockSource interface {
	ReadSamples(dst []fixed.Sample) (n int, done bool)
}

// Reader adapts a mono source to an io.Reader of interleaved PCM frames.
// Mono samples are duplicated across channels. A plain Source ends the
// stream at its first missing sample; a BlockSource is padded with silence
// on underrun and ends only when it reports done.
type Reader struct {
	src      Source
	blocks   BlockSource
	channels int
	format   Format

	samples []fixed.Sample
	mono    []float32
	frames  []float32
	buf     []byte
	pending []byte
	ended   bool
}

// NewReader returns a Reader over src. src may implement BlockSource.
// blockFrames of zero selects DefaultBlockFrames.
func NewReader(src Source, channels int, format Format, blockFrames int) (*Reader, error) {
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidReader, channels)
	}
	if format != Float32LE && format != Int16LE {
		return nil, fmt.Errorf("%w: unknown format %d", ErrInvalidReader, format)
	}
	if blockFrames <= 0 {
		blockFrames = DefaultBlockFrames
	}

	width := bytesPerFloat32
	if format == Int16LE {
		width = bytesPerInt16
	}

	r := &Reader{
		src:      src,
		channels: channels,
		format:   format,
		samples:  make([]fixed.Sample, blockFrames),
		mono:     make([]float32, blockFrames),
		frames:   make([]float32, blockFrames*channels),
		buf:      make([]byte, blockFrames*channels*width),
	}
	if bs, ok := src.(BlockSource); ok {
		r.blocks = bs
	}
	return r, nil
}

// Read fills p with encoded frames. It returns io.EOF once the source has
// ended and every rendered byte has been delivered.
func (r *Reader) Read(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if len(r.pending) == 0 {
			if r.ended || !r.fill() {
				break
			}
		}
		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		p = p[n:]
		total += n
	}
	if total == 0 && r.ended {
		return 0, io.EOF
	}
	return total, nil
}

// fill renders one block into pending. It reports false when the source has
// ended.
func (r *Reader) fill() bool {
	var n int
	if r.blocks != nil {
		var done bool
		n, done = r.blocks.ReadSamples(r.samples)
		if n == 0 && done {
			r.ended = true
			return false
		}
		if !done {
			clear(r.samples[n:])
			n = len(r.samples)
		}
	} else {
		n = Block(r.src, r.samples)
		if n == 0 {
			r.ended = true
			return false
		}
	}

	var size int
	switch r.format {
	case Int16LE:
		size = r.encodeInt16(r.samples[:n])
	default:
		size = r.encodeFloat32(r.samples[:n])
	}
	r.pending = r.buf[:size]
	return true
}

func (r *Reader) encodeFloat32(samples []fixed.Sample) int {
	n := len(samples)
	mono := r.mono[:n]
	Float32(mono, samples)

	frames := mono
	if r.channels == maxChannels {
		frames = r.frames[:n*maxChannels]
		simdops.For[float32]().Interleave2(frames, mono, mono)
	}
	for i, v := range frames {
		binary.LittleEndian.PutUint32(r.buf[i*bytesPerFloat32:], math.Float32bits(v))
	}
	return len(frames) * bytesPerFloat32
}

func (r *Reader) encodeInt16(samples []fixed.Sample) int {
	off := 0
	for _, s := range samples {
		for range r.channels {
			binary.LittleEndian.PutUint16(r.buf[off:], uint16(s))
			off += bytesPerInt16
		}
	}
	return off
}
