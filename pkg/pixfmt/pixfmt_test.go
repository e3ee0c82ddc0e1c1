package pixfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	d, err := Lookup("YUV420P")
	require.NoError(t, err)
	assert.Equal(t, "yuv420p", d.Name)
	assert.Equal(t, 3, d.NumPlanes())

	_, err = Lookup("nope")
	require.ErrorIs(t, err, ErrUnknownFormat)

	assert.Contains(t, Names(), "nv12")
}

func TestDescriptorGeometry(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		planes    int
		rowBytes  []int
		planeRows []int
		gray      bool
	}{
		{"gray", 5, 3, 1, []int{5}, []int{3}, true},
		{"yuv420p", 5, 3, 3, []int{5, 3, 3}, []int{3, 2, 2}, false},
		{"yuv422p10le", 6, 4, 3, []int{12, 6, 6}, []int{4, 4, 4}, false},
		{"yuv410p", 9, 9, 3, []int{9, 3, 3}, []int{9, 3, 3}, false},
		{"nv12", 7, 5, 2, []int{7, 8}, []int{5, 3}, false},
		{"p010le", 4, 4, 2, []int{8, 8}, []int{4, 2}, false},
		{"yuyv422", 4, 2, 1, []int{8}, []int{2}, false},
		{"rgb24", 3, 2, 1, []int{9}, []int{2}, false},
		{"rgba", 3, 2, 1, []int{12}, []int{2}, false},
		{"gbrp", 3, 2, 3, []int{3, 3, 3}, []int{2, 2, 2}, false},
		{"yuva420p", 4, 4, 4, []int{4, 2, 2, 4}, []int{4, 2, 2, 4}, false},
		{"grayf32le", 3, 1, 1, []int{12}, []int{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustLookup(tt.name)
			require.Equal(t, tt.planes, d.NumPlanes())
			assert.Equal(t, tt.gray, d.IsGray())
			for p := 0; p < tt.planes; p++ {
				assert.Equal(t, tt.rowBytes[p], d.RowBytes(p, tt.w), "row bytes plane %d", p)
				assert.Equal(t, tt.planeRows[p], d.PlaneHeight(p, tt.h), "rows plane %d", p)
			}
		})
	}
}

func TestGrayFormatsAreFullRange(t *testing.T) {
	for _, name := range []string{"gray", "gray10le", "gray12le", "gray16le", "gray16be", "grayf32le"} {
		assert.True(t, MustLookup(name).IsFullRange(), name)
	}
	assert.False(t, MustLookup("yuv420p").IsFullRange())
	assert.True(t, MustLookup("yuvj420p").IsFullRange())
}

func TestCeilRShift(t *testing.T) {
	assert.Equal(t, 3, CeilRShift(5, 1))
	assert.Equal(t, 2, CeilRShift(4, 1))
	assert.Equal(t, 1, CeilRShift(1, 2))
	assert.Equal(t, 7, CeilRShift(7, 0))
}

func TestReadWriteRoundTrip(t *testing.T) {
	tests := []string{
		"gray", "gray10le", "gray16be", "yuv420p", "yuv420p10le", "yuv420p16be",
		"yuva420p", "nv12", "nv21", "p010le", "yuyv422", "uyvy422",
	}
	const w = 6
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			d := MustLookup(name)
			cw := d.ChromaWidth(w)
			max := uint16(1)<<d.Depth() - 1

			in := Samples{Y: make([]uint16, w), A: make([]uint16, w)}
			for i := range in.Y {
				in.Y[i] = uint16(i*37) & max
				in.A[i] = max - uint16(i)
			}
			if d.HasChroma() {
				in.U = make([]uint16, cw)
				in.V = make([]uint16, cw)
				for i := range in.U {
					in.U[i] = uint16(i*11+3) & max
					in.V[i] = max - uint16(i*5)
				}
			}

			var rows Rows
			for p := 0; p < d.NumPlanes(); p++ {
				rows[p] = make([]byte, d.RowBytes(p, w))
			}
			NewWriter(d).Write(&rows, &in, w, cw)

			r := NewReader(d)
			y := make([]uint16, w)
			r.Luma(y, &rows, w)
			assert.Equal(t, in.Y, y)

			u, v := make([]uint16, cw), make([]uint16, cw)
			r.Chroma(u, v, &rows, cw)
			if d.HasChroma() {
				assert.Equal(t, in.U, u)
				assert.Equal(t, in.V, v)
			} else {
				neutral := uint16(1) << (d.Depth() - 1)
				assert.Equal(t, neutral, u[0])
			}

			a := make([]uint16, w)
			r.Alpha(a, &rows, w)
			if d.HasAlpha() {
				assert.Equal(t, in.A, a)
			} else {
				assert.Equal(t, max, a[0])
			}
		})
	}
}

func TestRGBConversion(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int64
		y, u, v uint16
	}{
		{"black", 0, 0, 0, 16, 128, 128},
		{"white", 255, 255, 255, 235, 128, 128},
		{"red", 255, 0, 0, 82, 90, 240},
		{"green", 0, 255, 0, 145, 54, 34},
		{"blue", 0, 0, 255, 41, 240, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := RGBToY(tt.r, tt.g, tt.b, 8)
			u, v := RGBToUV(tt.r, tt.g, tt.b, 8)
			assert.InDelta(t, tt.y, y, 1)
			assert.InDelta(t, tt.u, u, 1)
			assert.InDelta(t, tt.v, v, 1)

			r, g, b := YUVToRGB(int64(y), int64(u), int64(v), 8)
			assert.InDelta(t, tt.r, r, 3)
			assert.InDelta(t, tt.g, g, 3)
			assert.InDelta(t, tt.b, b, 3)
		})
	}
}

func TestRGBReaderWriter(t *testing.T) {
	d := MustLookup("bgra")
	const w = 4
	row := []byte{
		0, 0, 255, 10, // red
		0, 255, 0, 20, // green
		255, 0, 0, 30, // blue
		255, 255, 255, 40,
	}
	rows := Rows{row}
	r := NewReader(d)
	y := make([]uint16, w)
	u, v := make([]uint16, w), make([]uint16, w)
	a := make([]uint16, w)
	r.Luma(y, &rows, w)
	r.Chroma(u, v, &rows, w)
	r.Alpha(a, &rows, w)
	assert.Equal(t, []uint16{10, 20, 30, 40}, a)
	assert.InDelta(t, 235, y[3], 1)

	out := Rows{make([]byte, len(row))}
	NewWriter(d).Write(&out, &Samples{Y: y, U: u, V: v, A: a}, w, w)
	for i := range row {
		assert.InDelta(t, row[i], out[0][i], 3, "byte %d", i)
	}
}

func TestFloatSamples(t *testing.T) {
	d := MustLookup("grayf32le")
	in := Samples{Y: []uint16{0, 0x8000, 0xFFFF}}
	rows := Rows{make([]byte, d.RowBytes(0, 3))}
	NewWriter(d).Write(&rows, &in, 3, 0)
	y := make([]uint16, 3)
	NewReader(d).Luma(y, &rows, 3)
	assert.Equal(t, in.Y, y)
}
