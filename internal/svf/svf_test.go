package svf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fixed-synth/internal/fixed"
	"github.com/tphakala/go-fixed-synth/internal/osc"
	"github.com/tphakala/go-fixed-synth/internal/testutil"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

func newFilter(t *testing.T, cfg *Config) *Filter {
	t.Helper()
	f, err := New(cfg)
	require.NoError(t, err)
	return f
}

// ===== Recurrence =====

func TestFeed_UpdateOrder(t *testing.T) {
	f := newFilter(t, &Config{Cutoff: units.Hertz(10_000)})
	ft, qInv := f.Coefficients()
	require.Equal(t, uint32(464), ft)
	require.Equal(t, uint16(2048), qInv)

	f.Feed(1000)
	assert.Equal(t, fixed.Sample(0), f.LowPass())
	assert.Equal(t, fixed.Sample(1000), f.HighPass())
	assert.Equal(t, fixed.Sample(226), f.BandPass())
	assert.Equal(t, fixed.Sample(1000), f.Notch())

	f.Feed(1000)
	assert.Equal(t, fixed.Sample(51), f.LowPass())
	assert.Equal(t, fixed.Sample(723), f.HighPass())
	assert.Equal(t, fixed.Sample(389), f.BandPass())
	assert.Equal(t, fixed.Sample(774), f.Notch())
}

func TestFeed_ZeroInputStaysZero(t *testing.T) {
	f := newFilter(t, nil)
	for range 1000 {
		f.Feed(0)
	}
	assert.Zero(t, f.LowPass())
	assert.Zero(t, f.BandPass())
	assert.Zero(t, f.HighPass())
	assert.Zero(t, f.Notch())
}

func TestFeed_DecaysAfterExcitation(t *testing.T) {
	f := newFilter(t, &Config{Cutoff: units.Hertz(5_000)})
	ft, _ := f.Coefficients()

	for range 100 {
		f.Feed(10_000)
	}
	for range 10_000 {
		f.Feed(0)
	}

	// truncation leaves a dead band of about Norm/ft around zero
	bound := float64(4 * Norm / int32(ft))
	assert.InDelta(t, 0, float64(f.LowPass()), bound)
	assert.InDelta(t, 0, float64(f.BandPass()), bound)
	assert.InDelta(t, 0, float64(f.HighPass()), bound)
}

func TestOverflowPolicy(t *testing.T) {
	tests := []struct {
		name     string
		overflow Overflow
		want     fixed.Sample
	}{
		{"wrap", Wrap, fixed.Sample(60000 - 65536)},
		{"saturate", Saturate, fixed.Max},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFilter(t, &Config{Overflow: tt.overflow})
			f.ft = uint32(Norm)
			f.lp, f.bp = 30000, 30000
			f.Feed(0)
			assert.Equal(t, tt.want, f.LowPass())
		})
	}
}

func TestSetOverflow(t *testing.T) {
	f := newFilter(t, nil)
	f.ft = uint32(Norm)

	f.SetOverflow(Saturate)
	f.lp, f.bp = 30000, 30000
	f.Feed(0)
	assert.Equal(t, fixed.Max, f.LowPass())

	f.Reset()
	f.SetOverflow(Wrap)
	f.lp, f.bp = 30000, 30000
	f.Feed(0)
	assert.Equal(t, fixed.Sample(60000-65536), f.LowPass())
}

func TestNotchIsLowPlusHigh(t *testing.T) {
	f := newFilter(t, &Config{Cutoff: units.Hertz(5_000), Resonance: QMax / 2})
	for _, in := range []fixed.Sample{1000, -2000, 3000, 0, 500} {
		f.Feed(in)
		assert.Equal(t, fixed.Wrap(int32(f.LowPass())+int32(f.HighPass())), f.Notch())
	}
}

// ===== Coefficients =====

func TestFt_Scaling(t *testing.T) {
	f := newFilter(t, &Config{Cutoff: units.Hertz(10_000)})
	ft44, _ := f.Coefficients()

	require.NoError(t, f.SetSampleRate(units.Hertz(88_200)))
	ft88, _ := f.Coefficients()
	assert.Equal(t, ft44/2, ft88, "doubling the sample rate halves ft")

	f.SetCutoff(units.Hertz(20_000))
	ft88x2, _ := f.Coefficients()
	assert.Equal(t, ft44, ft88x2, "doubling the cutoff doubles ft")
}

func TestFt_Clamped(t *testing.T) {
	f := newFilter(t, &Config{Cutoff: units.KiloHertz(4_000), SampleRate: units.Hertz(1)})
	ft, _ := f.Coefficients()
	assert.Equal(t, uint32(ftMax), ft)
}

func TestResonance(t *testing.T) {
	tests := []struct {
		q    uint16
		want uint16
	}{
		{0, 2048},
		{256, 1792},
		{QMax, 0},
		{3000, 0},
	}
	f := newFilter(t, nil)
	for _, tt := range tests {
		f.SetResonance(tt.q)
		_, qInv := f.Coefficients()
		assert.Equal(t, tt.want, qInv, "resonance %d", tt.q)
		assert.LessOrEqual(t, f.Resonance(), QMax)
	}
}

func TestSampleRate(t *testing.T) {
	f := newFilter(t, nil)
	assert.Equal(t, units.MilliHertz(44_100_000), f.SampleRate())
	before, _ := f.Coefficients()

	require.ErrorIs(t, f.SetSampleRate(units.MilliHertz(0)), ErrZeroSampleRate)
	after, _ := f.Coefficients()
	assert.Equal(t, before, after)
	assert.Equal(t, units.MilliHertz(44_100_000), f.SampleRate())
}

func TestSampleRatePropagatesToInput(t *testing.T) {
	sine := osc.NewSine()
	f := newFilter(t, &Config{Input: sine})
	require.NoError(t, f.SetSampleRate(units.KiloHertz(48)))
	assert.Equal(t, units.MilliHertz(48_000_000), sine.SampleRate())
}

func TestConfigValidate(t *testing.T) {
	_, err := New(&Config{SampleRate: units.Hertz(0)})
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(&Config{Mode: Mode(9)})
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(&Config{Overflow: Overflow(5)})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

// ===== Source =====

func TestNextSample_NoInput(t *testing.T) {
	f := newFilter(t, nil)
	_, ok := f.NextSample()
	assert.False(t, ok)
}

func TestNextSample_InputExhausted(t *testing.T) {
	env := osc.NewDecay()
	env.SetFrequency(units.Hertz(441))
	env.Start()

	f := newFilter(t, &Config{Input: env})
	n := len(testutil.Pull(f.NextSample, 1000))
	assert.Equal(t, 100, n)

	lp := f.LowPass()
	_, ok := f.NextSample()
	assert.False(t, ok)
	assert.Equal(t, lp, f.LowPass(), "state unchanged without input")
}

func TestModes(t *testing.T) {
	for _, m := range []Mode{LowPass, BandPass, HighPass, Notch} {
		t.Run(m.String(), func(t *testing.T) {
			sine := osc.NewSine()
			sine.Start()
			f := newFilter(t, &Config{Input: sine, Mode: m})
			for range 10 {
				s, ok := f.NextSample()
				require.True(t, ok)
				assert.Equal(t, f.Output(), s)
			}
			var want fixed.Sample
			switch m {
			case LowPass:
				want = f.LowPass()
			case BandPass:
				want = f.BandPass()
			case HighPass:
				want = f.HighPass()
			case Notch:
				want = f.Notch()
			}
			assert.Equal(t, want, f.Output())
		})
	}
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestLowPass_AttenuatesHighTone(t *testing.T) {
	rms := func(freq units.Hertz) float64 {
		tone := osc.NewSine()
		tone.SetFrequency(freq)
		tone.Start()
		gain := &attenuator{in: tone}

		f := newFilter(t, &Config{Input: gain, Cutoff: units.Hertz(1_000)})
		testutil.Pull(f.NextSample, 4410)
		return testutil.RMS(testutil.Float64s(testutil.Pull(f.NextSample, 8820)))
	}

	low := rms(100)
	high := rms(10_000)
	assert.Greater(t, low, 10*high, "low=%f high=%f", low, high)
}

func TestNextSampleAllocs(t *testing.T) {
	sine := osc.NewSine()
	sine.Start()
	f := newFilter(t, &Config{Input: sine})
	allocs := testing.AllocsPerRun(1000, func() {
		_, _ = f.NextSample()
	})
	assert.Zero(t, allocs)
}

// attenuator quarters its input to keep the filter away from overflow.
type attenuator struct{ in Input }

func (a *attenuator) NextSample() (fixed.Sample, bool) {
	s, ok := a.in.NextSample()
	return s.Shift(2), ok
}
