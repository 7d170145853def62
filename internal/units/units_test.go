package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyScales(t *testing.T) {
	tests := []struct {
		name string
		in   Frequency
		mHz  MilliHertz
		hz   Hertz
		kHz  KiloHertz
	}{
		{"440Hz", Hertz(440), 440_000, 440, 0},
		{"44.1kHz as mHz", MilliHertz(44_100_000), 44_100_000, 44_100, 44},
		{"48kHz", KiloHertz(48), 48_000_000, 48_000, 48},
		{"fractional mHz truncates", MilliHertz(1_999), 1_999, 1, 0},
		{"zero", Hertz(0), 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.mHz, tt.in.MilliHertz())
			assert.Equal(t, tt.hz, tt.in.Hertz())
			assert.Equal(t, tt.kHz, tt.in.KiloHertz())
		})
	}
}

func TestPeriodConversions(t *testing.T) {
	assert.Equal(t, Milliseconds(1000), Hertz(1).Milliseconds())
	assert.Equal(t, Microseconds(1_000_000), Hertz(1).Microseconds())
	assert.Equal(t, Microseconds(2272), Hertz(440).Microseconds())
	assert.Equal(t, Milliseconds(2), Hertz(440).Milliseconds())
	assert.Equal(t, Microseconds(2272), MilliHertz(440_000).Microseconds())
	assert.Equal(t, Milliseconds(2), MilliHertz(440_000).Milliseconds())
	assert.Equal(t, Microseconds(1000), KiloHertz(1).Microseconds())
	assert.Equal(t, Milliseconds(1), KiloHertz(1).Milliseconds())

	assert.Equal(t, Hertz(100), Milliseconds(10).Hertz())
	assert.Equal(t, MilliHertz(100_000), Milliseconds(10).MilliHertz())
	assert.Equal(t, KiloHertz(1), Milliseconds(1).KiloHertz())
	assert.Equal(t, Microseconds(10_000), Milliseconds(10).Microseconds())

	assert.Equal(t, Hertz(1000), Microseconds(1000).Hertz())
	assert.Equal(t, MilliHertz(1_000_000), Microseconds(1000).MilliHertz())
	assert.Equal(t, KiloHertz(1), Microseconds(1000).KiloHertz())
	assert.Equal(t, Milliseconds(1), Microseconds(1999).Milliseconds())
}

func TestZeroReciprocal(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, Microseconds(0), Hertz(0).Microseconds())
		assert.Equal(t, Milliseconds(0), MilliHertz(0).Milliseconds())
		assert.Equal(t, Hertz(0), Milliseconds(0).Hertz())
		assert.Equal(t, MilliHertz(0), Microseconds(0).MilliHertz())
	})
}

func TestWideningSaturates(t *testing.T) {
	assert.Equal(t, MilliHertz(math.MaxUint32), KiloHertz(5_000).MilliHertz())
	assert.Equal(t, MilliHertz(4_000_000_000), KiloHertz(4_000).MilliHertz())
}

func TestFromHertzFloat(t *testing.T) {
	assert.Equal(t, MilliHertz(440_000), FromHertzFloat(440))
	assert.Equal(t, MilliHertz(261_626), FromHertzFloat(261.6256))
	assert.Equal(t, MilliHertz(0), FromHertzFloat(-5))
	assert.Equal(t, MilliHertz(0), FromHertzFloat(math.NaN()))
	assert.Equal(t, MilliHertz(math.MaxUint32), FromHertzFloat(1e12))
	assert.InDelta(t, 44100.0, HertzFloat(Hertz(44100)), 1e-9)
}

func TestHertzRoundTrip(t *testing.T) {
	for _, x := range []Hertz{0, 1, 440, 44_100, 192_000, math.MaxUint32 / 1000} {
		assert.Equal(t, x, x.MilliHertz().Hertz(), "x=%d", x)
	}
	for _, x := range []KiloHertz{0, 1, 48, 4_294} {
		assert.Equal(t, x, x.MilliHertz().KiloHertz(), "x=%d", x)
	}
}
