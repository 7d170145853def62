package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fixed-synth/internal/osc"
	"github.com/tphakala/go-fixed-synth/internal/svf"
	"github.com/tphakala/go-fixed-synth/internal/units"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want svf.Mode
	}{
		{"lowpass", svf.LowPass},
		{"BandPass", svf.BandPass},
		{" highpass ", svf.HighPass},
		{"notch", svf.Notch},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := parseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}

	_, err := parseMode("comb")
	require.ErrorIs(t, err, errUnknownMode)
}

func TestInspectOscillator(t *testing.T) {
	rep, err := inspectOscillator(units.Hertz(2), units.Hertz(100))
	require.NoError(t, err)

	assert.Equal(t, uint64(2814749767), rep.Info.Alpha)
	assert.Equal(t, int32(20971), rep.Info.DeltaPhi)
	assert.Equal(t, osc.ActiveIncrement, rep.Info.Increment)
	assert.InDelta(t, 50.0, rep.SamplesPerCycle, 0.01)
	assert.InDelta(t, 2.0, rep.ActualHz, 0.001)
	assert.Less(t, math.Abs(rep.ErrorCents), 1.0)
}

func TestInspectOscillator_ZeroRate(t *testing.T) {
	_, err := inspectOscillator(units.Hertz(440), units.Hertz(0))
	require.Error(t, err)
}

func TestEffectiveCutoff(t *testing.T) {
	// ft = 2048 * 1000 / 8000 = 256
	assert.InDelta(t, 1000/(2*math.Pi), effectiveCutoff(256, units.Hertz(8_000)), 1e-9)
}

func TestMeasureGain(t *testing.T) {
	base := svf.Config{Cutoff: units.Hertz(1_000), SampleRate: units.Hertz(8_000)}

	tests := []struct {
		name    string
		mode    svf.Mode
		probeHz units.Hertz
		want    float64
		delta   float64
	}{
		{"lowpass passes low", svf.LowPass, 20, 1.0, 0.1},
		{"lowpass stops high", svf.LowPass, 2000, 0.0, 0.05},
		{"highpass stops low", svf.HighPass, 20, 0.0, 0.05},
		{"highpass passes high", svf.HighPass, 2000, 1.05, 0.15},
		{"bandpass at corner", svf.BandPass, 159, 1.0, 0.1},
		{"bandpass off corner", svf.BandPass, 2000, 0.1, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Mode = tt.mode
			g, err := measureGain(cfg, tt.probeHz)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, g, tt.delta)
		})
	}
}

func TestMeasureResponse(t *testing.T) {
	cfg := svf.Config{Mode: svf.BandPass, Cutoff: units.Hertz(1_000), SampleRate: units.Hertz(8_000)}
	probes := octaveProbes(lowestProbeHz, 4_000)
	assert.Equal(t, []float64{20, 40, 80, 160, 320, 640, 1280, 2560}, probes)

	points, err := measureResponse(cfg, probes)
	require.NoError(t, err)
	require.Len(t, points, len(probes))

	peak := peakResponse(points)
	assert.Equal(t, 160.0, peak.Hz)
	assert.InDelta(t, 0.0, peak.DB(), 1.0)
}

func TestResponsePointDB(t *testing.T) {
	assert.InDelta(t, -6.02, responsePoint{Gain: 0.5}.DB(), 0.01)
	assert.True(t, math.IsInf(responsePoint{}.DB(), -1))
	assert.Equal(t, responsePoint{}, peakResponse(nil))
}
