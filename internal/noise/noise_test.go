package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/lfsr"
	"github.com/tphakala/go-fixed-synth/internal/testutil"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

type source interface {
	NextSample() (fixed.Sample, bool)
	SampleRate() units.MilliHertz
	SetSampleRate(units.Frequency) error
}

func TestWhite_FirstSamples(t *testing.T) {
	w := NewWhite()
	s, ok := w.NextSample()
	require.True(t, ok)
	assert.Equal(t, fixed.Sample(32767-0x5D5F), s)

	s, _ = w.NextSample()
	assert.Equal(t, fixed.Sample(32767-0xAEAF), s)
}

func TestWhite_Statistics(t *testing.T) {
	w := NewWhite()
	x := testutil.Float64s(testutil.Pull(w.NextSample, 1<<17))
	testutil.AssertNoiseStatistics(t, x, 0, 0.02, 0.5)
}

func TestWhite_SetSeed(t *testing.T) {
	a, b := NewWhite(), NewWhite()
	require.NoError(t, a.SetSeed(12345))
	require.NoError(t, b.SetSeed(12345))
	for range 100 {
		sa, _ := a.NextSample()
		sb, _ := b.NextSample()
		require.Equal(t, sa, sb)
	}
	require.ErrorIs(t, a.SetSeed(0), lfsr.ErrZeroSeed)
}

func TestBitFlip_Rails(t *testing.T) {
	b := NewBitFlip()
	high := 0
	const n = 1 << 16
	for range n {
		s, ok := b.NextSample()
		require.True(t, ok)
		require.True(t, s.IsClipping(), "bit-flip noise only emits rail values")
		if s == fixed.Max {
			high++
		}
	}
	assert.InDelta(t, n/2, high, n/50)
}

func TestPink_Range(t *testing.T) {
	p := NewPink()
	limit := fixed.Sample((pinkRows + 1) * pinkHalfRange)
	testutil.AssertSamplesInRange(t, testutil.Pull(p.NextSample, 1<<16), -limit, limit)
}

func TestPink_SpectrumFalls(t *testing.T) {
	const n = 1 << 14
	p := NewPink()
	mags := testutil.Spectrum(testutil.Float64s(testutil.Pull(p.NextSample, n)))

	bandMean := func(lo, hi int) float64 {
		var sum float64
		for _, m := range mags[lo:hi] {
			sum += m
		}
		return sum / float64(hi-lo)
	}
	low := bandMean(n/256, n/64)
	high := bandMean(n/8, n/2)
	assert.Greater(t, low, 2*high, "low=%f high=%f", low, high)
}

func TestPink_SetSeedRefills(t *testing.T) {
	a, b := NewPink(), NewPink()
	for range 37 {
		a.NextSample()
	}
	require.NoError(t, a.SetSeed(lfsr.Seed32))
	require.NoError(t, b.SetSeed(lfsr.Seed32))
	for range 1000 {
		sa, _ := a.NextSample()
		sb, _ := b.NextSample()
		require.Equal(t, sa, sb)
	}
}

func TestCrackle_Density(t *testing.T) {
	c := NewCrackle()
	c.SetDensity(units.Hertz(441))
	const n = 441_000

	hits := 0
	for range n {
		s, ok := c.NextSample()
		require.True(t, ok)
		if s != 0 {
			hits++
		}
	}
	// 441 impulses per second over ten seconds at 44.1 kHz
	assert.InDelta(t, 4410, hits, 4410*0.3)
}

func TestCrackle_ThresholdFollowsRate(t *testing.T) {
	c := NewCrackle()
	c.SetDensity(units.Hertz(100))
	t44 := c.threshold
	require.NoError(t, c.SetSampleRate(units.Hertz(88_200)))
	assert.InDelta(t, float64(t44)/2, float64(c.threshold), 1)
	assert.Equal(t, units.MilliHertz(100_000), c.Density())

	c.SetDensity(units.KiloHertz(200))
	assert.Equal(t, uint32(0xFFFFFFFF), c.threshold, "density above the rate saturates")
}

func TestSampleRateContract(t *testing.T) {
	sources := map[string]source{
		"white":   NewWhite(),
		"bitflip": NewBitFlip(),
		"pink":    NewPink(),
		"crackle": NewCrackle(),
	}
	for name, s := range sources {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, units.MilliHertz(44_100_000), s.SampleRate())
			require.NoError(t, s.SetSampleRate(units.KiloHertz(48)))
			assert.Equal(t, units.MilliHertz(48_000_000), s.SampleRate())
			require.ErrorIs(t, s.SetSampleRate(units.Hertz(0)), ErrZeroSampleRate)
			assert.Equal(t, units.MilliHertz(48_000_000), s.SampleRate())

			allocs := testing.AllocsPerRun(1000, func() {
				_, _ = s.NextSample()
			})
			assert.Zero(t, allocs)
		})
	}
}
