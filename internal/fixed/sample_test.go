package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b Sample) Sample
		a, b Sample
		want Sample
	}{
		{"add in range", Sample.SaturatingAdd, 1000, 2000, 3000},
		{"add clamps high", Sample.SaturatingAdd, 30000, 10000, Max},
		{"add clamps low", Sample.SaturatingAdd, -30000, -10000, Min},
		{"sub in range", Sample.SaturatingSub, 100, 300, -200},
		{"sub clamps high", Sample.SaturatingSub, 30000, -10000, Max},
		{"sub clamps low", Sample.SaturatingSub, Min, 1, Min},
		{"mul in range", Sample.SaturatingMul, 100, -100, -10000},
		{"mul clamps", Sample.SaturatingMul, 1000, 1000, Max},
		{"mul clamps negative", Sample.SaturatingMul, -1000, 1000, Min},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op(tt.a, tt.b))
		})
	}
}

func TestNormMul(t *testing.T) {
	assert.Equal(t, Sample(16383), Max.NormMul(Sample(16384)), "~1.0 * 0.5")
	assert.Equal(t, Sample(-16384), Min.NormMul(Sample(16384)), "-1.0 * 0.5")
	assert.Equal(t, Max, Min.NormMul(Min), "-1.0 * -1.0 clamps")
	assert.Equal(t, Sample(32766), Max.NormMul(Max))
	assert.Equal(t, Zero, Sample(1).NormMul(Sample(1)))
	assert.Equal(t, Zero, Sample(-1).NormMul(Sample(1)), "truncates toward zero")
}

func TestIsClipping(t *testing.T) {
	assert.True(t, Max.IsClipping())
	assert.True(t, Min.IsClipping())
	assert.False(t, Sample(32766).IsClipping())
	assert.False(t, Sample(-32767).IsClipping())
	assert.False(t, Zero.IsClipping())
}

func TestWrapAndClamp(t *testing.T) {
	assert.Equal(t, Min, Wrap(32768))
	assert.Equal(t, Sample(-32767), Wrap(32769))
	assert.Equal(t, Max, Clamp(32768))
	assert.Equal(t, Min, Clamp(-40000))
}

func TestShift(t *testing.T) {
	assert.Equal(t, Sample(8191), Max.Shift(2))
	assert.Equal(t, Sample(-8192), Min.Shift(2))
	assert.Equal(t, Sample(-1), Sample(-1).Shift(2), "arithmetic shift keeps sign")
}

func TestFloatConversions(t *testing.T) {
	assert.InDelta(t, -1.0, Min.Float64(), 1e-12)
	assert.InDelta(t, 0.99997, Max.Float64(), 1e-5)
	assert.InDelta(t, float32(0.5), Sample(16384).Float32(), 1e-6)

	assert.Equal(t, Max, FromFloat64(1.5))
	assert.Equal(t, Min, FromFloat64(-1))
	assert.Equal(t, Sample(16384), FromFloat64(0.5))
	assert.Equal(t, Zero, FromFloat64(0))
}
