package swscale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

func TestGeneralScalerIdentity(t *testing.T) {
	tests := []struct {
		depth, ib int
		shift     int
	}{
		{8, 15, 7},
		{10, 15, 5},
		{14, 15, 1},
		{16, 19, 3},
		{8, 19, 11},
	}
	for _, tt := range tests {
		f, err := NewFilter(8, 8, Bicubic, nil, hOne)
		require.NoError(t, err)
		s := newHScaler(f, Bicubic, 8, 8, tt.depth, tt.ib)
		src := make([]uint16, 8)
		for i := range src {
			src[i] = uint16((1<<tt.depth - 1) - i)
		}
		dst := make([]int32, 8)
		s.scale(dst, src)
		for i := range dst {
			assert.Equal(t, int32(src[i])<<tt.shift, dst[i], "depth %d ib %d", tt.depth, tt.ib)
			assert.Less(t, dst[i], int32(1)<<tt.ib)
		}
	}
}

func TestGeneralScalerClipsHigh(t *testing.T) {
	// a sharp kernel overshoots on a step edge
	f, err := NewFilter(8, 29, Lanczos, nil, hOne)
	require.NoError(t, err)
	s := newHScaler(f, Lanczos, 8, 29, 8, 15)
	src := []uint16{0, 0, 0, 0, 255, 255, 255, 255}
	dst := make([]int32, 29)
	s.scale(dst, src)
	var lo, hi int32
	for _, v := range dst {
		lo, hi = min(lo, v), max(hi, v)
	}
	assert.LessOrEqual(t, hi, int32(1<<15-1))
	assert.Less(t, lo, int32(0), "ringing below black is kept for the vertical stage")
}

func TestFastScaler(t *testing.T) {
	f, err := NewFilter(4, 8, FastBilinear, nil, hOne)
	require.NoError(t, err)
	s := newHScaler(f, FastBilinear, 4, 8, 8, 15)
	require.IsType(t, &fastScaler{}, s)

	src := []uint16{0, 100, 200, 40}
	dst := make([]int32, 8)
	s.scale(dst, src)
	// xInc is half a sample, so odd outputs blend two neighbours evenly
	assert.Equal(t, []int32{0, 50 << 7, 100 << 7, 150 << 7, 200 << 7, 120 << 7, 40 << 7, 40 << 7}, dst)

	// other depths use the general path
	assert.IsType(t, &generalScaler{}, newHScaler(f, FastBilinear, 4, 8, 10, 15))
}

func TestRangeConverters(t *testing.T) {
	lum, chr := rangeConverters(false, false, 15)
	assert.Nil(t, lum)
	assert.Nil(t, chr)

	tests := []struct {
		name             string
		srcFull, dstFull bool
		ib               int
		in, want         [2]int32 // luma, chroma
	}{
		// limited 16..235 stretches to 0..255, at 7 fractional bits
		{"to full", false, true, 15, [2]int32{16 << 7, 128 << 7}, [2]int32{0, 128 << 7}},
		{"to full white", false, true, 15, [2]int32{235 << 7, 240 << 7}, [2]int32{255 << 7, 255 << 7}},
		{"from full", true, false, 15, [2]int32{0, 128 << 7}, [2]int32{16 << 7, 128 << 7}},
		{"from full white", true, false, 15, [2]int32{255 << 7, 255 << 7}, [2]int32{235 << 7, 240 << 7}},
		{"to full 19", false, true, 19, [2]int32{16 << 11, 128 << 11}, [2]int32{0, 128 << 11}},
		{"from full 19", true, false, 19, [2]int32{255 << 11, 128 << 11}, [2]int32{235 << 11, 128 << 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lum, chr := rangeConverters(tt.srcFull, tt.dstFull, tt.ib)
			require.NotNil(t, lum)
			require.NotNil(t, chr)
			l := []int32{tt.in[0]}
			c := []int32{tt.in[1]}
			lum(l)
			chr(c)
			step := float64(int32(1) << (tt.ib - 8))
			assert.InDelta(t, tt.want[0], l[0], step)
			assert.InDelta(t, tt.want[1], c[0], step)
		})
	}
}
