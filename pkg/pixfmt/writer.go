package pixfmt

import (
	"encoding/binary"
	"math"
)

// Samples holds one destination row per component, rounded and clipped to
// the destination depth. U and V are nil on rows that carry no chroma, A is
// nil when the destination has no alpha.
type Samples struct {
	Y, U, V, A []uint16
}

// Writer stores destination samples into plane rows
type Writer interface {
	Write(dst *Rows, s *Samples, width, chromaWidth int)
}

// NewWriter selects the leaf writer for a format
func NewWriter(d *Descriptor) Writer {
	if d.IsRGB() {
		return &rgbWriter{d: d}
	}
	return &yuvWriter{d: d}
}

type yuvWriter struct {
	d *Descriptor
}

func (w *yuvWriter) Write(dst *Rows, s *Samples, width, chromaWidth int) {
	d := w.d
	c := d.Comp[0]
	writeComponent(dst[c.Plane], c, s.Y, width, d)
	if s.U != nil && d.HasChroma() {
		cu, cv := d.Comp[1], d.Comp[2]
		writeComponent(dst[cu.Plane], cu, s.U, chromaWidth, d)
		writeComponent(dst[cv.Plane], cv, s.V, chromaWidth, d)
	}
	if s.A != nil && d.HasAlpha() {
		ca := d.Comp[3]
		writeComponent(dst[ca.Plane], ca, s.A, width, d)
	}
}

// rgbWriter converts limited range BT.601 YUV to RGB. The context always
// hands it full resolution chroma since RGB formats are not subsampled.
type rgbWriter struct {
	d       *Descriptor
	r, g, b []uint16
}

func (w *rgbWriter) Write(dst *Rows, s *Samples, width, _ int) {
	if cap(w.r) < width {
		w.r = make([]uint16, width)
		w.g = make([]uint16, width)
		w.b = make([]uint16, width)
	}
	r, g, b := w.r[:width], w.g[:width], w.b[:width]
	depth := w.d.Depth()
	for i := 0; i < width; i++ {
		r[i], g[i], b[i] = YUVToRGB(int64(s.Y[i]), int64(s.U[i]), int64(s.V[i]), depth)
	}
	d := w.d
	for i, vals := range [][]uint16{r, g, b} {
		c := d.Comp[i]
		writeComponent(dst[c.Plane], c, vals, width, d)
	}
	if s.A != nil && d.HasAlpha() {
		ca := d.Comp[3]
		writeComponent(dst[ca.Plane], ca, s.A, width, d)
	}
}

func writeComponent(row []byte, c Component, src []uint16, n int, d *Descriptor) {
	ws := d.WordSize()
	be := d.IsBE()
	off := c.Offset
	for i := 0; i < n; i++ {
		v := uint32(src[i]) << c.Shift
		switch ws {
		case 1:
			row[off] = byte(v)
		case 2:
			if be {
				binary.BigEndian.PutUint16(row[off:], uint16(v))
			} else {
				binary.LittleEndian.PutUint16(row[off:], uint16(v))
			}
		case 4:
			bits := math.Float32bits(float32(src[i]) / 0xFFFF)
			if be {
				binary.BigEndian.PutUint32(row[off:], bits)
			} else {
				binary.LittleEndian.PutUint32(row[off:], bits)
			}
		}
		off += c.Step
	}
}
