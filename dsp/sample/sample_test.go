package sample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWave(t *testing.T) {
	assert.InDelta(t, 1.0, ToWave(1.0), 0)
	assert.InDelta(t, -0.5, ToWave(float32(-0.5)), 0)
	assert.InDelta(t, -1.0, ToWave(int16(math.MinInt16)), 0)
	assert.InDelta(t, 0.5, ToWave(int16(1<<14)), 0)
	assert.InDelta(t, -1.0, ToWave(int32(math.MinInt32)), 0)
	assert.InDelta(t, -1.0, ToWave(int8(math.MinInt8)), 0)
	assert.InDelta(t, 0.0, ToWave(uint8(128)), 0)
	assert.InDelta(t, -1.0, ToWave(uint8(0)), 0)
}

func TestToWaveNearFullScale(t *testing.T) {
	assert.InDelta(t, 1.0, ToWave(int16(math.MaxInt16)), 1e-4)
	assert.InDelta(t, 1.0, ToWave(int32(math.MaxInt32)), 1e-9)
	assert.InDelta(t, 1.0, ToWave(uint8(255)), 1e-2)
}

func TestConvertReusesCapacity(t *testing.T) {
	dst := make([]float64, 0, 8)
	out := Convert(dst, []int16{0, 1 << 14, -(1 << 14)})

	require.Len(t, out, 3)
	assert.Equal(t, cap(dst), cap(out))
	assert.Equal(t, []float64{0, 0.5, -0.5}, out)
}

func TestConvertEmpty(t *testing.T) {
	out := Convert([]float64{1, 2}, []float32{})
	assert.Empty(t, out)
}

func TestFromInt(t *testing.T) {
	tests := []struct {
		name     string
		v        int
		depth    int
		expected float64
	}{
		{name: "16 bit half", v: 1 << 14, depth: 16, expected: 0.5},
		{name: "24 bit negative full", v: -(1 << 23), depth: 24, expected: -1},
		{name: "8 bit unsigned centre", v: 128, depth: 8, expected: 0},
		{name: "8 bit unsigned floor", v: 0, depth: 8, expected: -1},
		{name: "zero depth", v: 10, depth: 0, expected: 0},
		{name: "too deep", v: 10, depth: 33, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FromInt(tt.v, tt.depth), 1e-12)
		})
	}
}

func TestConvertInts(t *testing.T) {
	out := ConvertInts(nil, []int{0, 1 << 15, -(1 << 15)}, 16)
	require.Len(t, out, 3)
	assert.Equal(t, []float64{0, 1, -1}, out)
}
