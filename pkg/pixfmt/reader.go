package pixfmt

import (
	"encoding/binary"
	"math"
)

// Rows holds one row per plane, already positioned at the row being read or
// written. Unused planes are nil.
type Rows [4][]byte

// Reader unpacks source rows into component samples at the format depth.
// A Reader may keep scratch state, so each scaling context owns its own.
type Reader interface {
	// Luma unpacks width luma samples (Y for YUV, computed Y for RGB)
	Luma(dst []uint16, src *Rows, width int)
	// Chroma unpacks width U and V samples; gray formats yield neutral chroma
	Chroma(dstU, dstV []uint16, src *Rows, width int)
	// Alpha unpacks width alpha samples; formats without alpha yield opaque
	Alpha(dst []uint16, src *Rows, width int)
}

// NewReader selects the leaf reader for a format
func NewReader(d *Descriptor) Reader {
	if d.IsRGB() {
		return &rgbReader{d: d}
	}
	return &yuvReader{d: d}
}

// yuvReader covers planar, semi-planar and packed YUV plus gray
type yuvReader struct {
	d *Descriptor
}

func (r *yuvReader) Luma(dst []uint16, src *Rows, width int) {
	c := r.d.Comp[0]
	readComponent(dst, src[c.Plane], c, width, r.d)
}

func (r *yuvReader) Chroma(dstU, dstV []uint16, src *Rows, width int) {
	if r.d.IsGray() {
		neutral := uint16(1) << (r.d.Depth() - 1)
		fill(dstU[:width], neutral)
		fill(dstV[:width], neutral)
		return
	}
	cu, cv := r.d.Comp[1], r.d.Comp[2]
	readComponent(dstU, src[cu.Plane], cu, width, r.d)
	readComponent(dstV, src[cv.Plane], cv, width, r.d)
}

func (r *yuvReader) Alpha(dst []uint16, src *Rows, width int) {
	readAlpha(dst, src, width, r.d)
}

// rgbReader converts RGB to limited range BT.601 YUV on the fly
type rgbReader struct {
	d       *Descriptor
	r, g, b []uint16
}

func (r *rgbReader) load(src *Rows, width int) {
	if cap(r.r) < width {
		r.r = make([]uint16, width)
		r.g = make([]uint16, width)
		r.b = make([]uint16, width)
	}
	r.r, r.g, r.b = r.r[:width], r.g[:width], r.b[:width]
	cr, cg, cb := r.d.Comp[0], r.d.Comp[1], r.d.Comp[2]
	readComponent(r.r, src[cr.Plane], cr, width, r.d)
	readComponent(r.g, src[cg.Plane], cg, width, r.d)
	readComponent(r.b, src[cb.Plane], cb, width, r.d)
}

func (r *rgbReader) Luma(dst []uint16, src *Rows, width int) {
	r.load(src, width)
	depth := r.d.Depth()
	for i := 0; i < width; i++ {
		dst[i] = RGBToY(int64(r.r[i]), int64(r.g[i]), int64(r.b[i]), depth)
	}
}

func (r *rgbReader) Chroma(dstU, dstV []uint16, src *Rows, width int) {
	r.load(src, width)
	depth := r.d.Depth()
	for i := 0; i < width; i++ {
		dstU[i], dstV[i] = RGBToUV(int64(r.r[i]), int64(r.g[i]), int64(r.b[i]), depth)
	}
}

func (r *rgbReader) Alpha(dst []uint16, src *Rows, width int) {
	readAlpha(dst, src, width, r.d)
}

func readAlpha(dst []uint16, src *Rows, width int, d *Descriptor) {
	if !d.HasAlpha() {
		fill(dst[:width], uint16(1<<d.Depth()-1))
		return
	}
	c := d.Comp[3]
	readComponent(dst, src[c.Plane], c, width, d)
}

func readComponent(dst []uint16, row []byte, c Component, n int, d *Descriptor) {
	mask := uint32(1)<<c.Depth - 1
	ws := d.WordSize()
	be := d.IsBE()
	off := c.Offset
	for i := 0; i < n; i++ {
		var v uint32
		switch ws {
		case 1:
			v = uint32(row[off])
		case 2:
			if be {
				v = uint32(binary.BigEndian.Uint16(row[off:]))
			} else {
				v = uint32(binary.LittleEndian.Uint16(row[off:]))
			}
		case 4:
			var bits uint32
			if be {
				bits = binary.BigEndian.Uint32(row[off:])
			} else {
				bits = binary.LittleEndian.Uint32(row[off:])
			}
			v = floatToSample(math.Float32frombits(bits))
		}
		dst[i] = uint16((v >> c.Shift) & mask)
		off += c.Step
	}
}

func floatToSample(f float32) uint32 {
	switch {
	case f != f || f <= 0: // NaN included
		return 0
	case f >= 1:
		return 0xFFFF
	}
	return uint32(f*0xFFFF + 0.5)
}

func fill(dst []uint16, v uint16) {
	for i := range dst {
		dst[i] = v
	}
}
