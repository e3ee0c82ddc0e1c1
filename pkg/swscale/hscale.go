package swscale

// hScaler resamples one unpacked source row into an intermediate row of
// ib bits. Values are clipped above but may go negative on ringing kernels.
type hScaler interface {
	scale(dst []int32, src []uint16)
}

func newHScaler(f *Filter, kind FilterKind, srcW, dstW, depth, ib int) hScaler {
	if kind == FastBilinear && depth == 8 && ib == 15 {
		return &fastScaler{
			xInc: (int64(srcW)<<16 + int64(dstW>>1)) / int64(dstW),
			srcW: srcW,
		}
	}
	return &generalScaler{
		f:     f,
		shift: uint(depth + 14 - ib),
		hi:    int64(1)<<ib - 1,
	}
}

type generalScaler struct {
	f     *Filter
	shift uint
	hi    int64
}

func (s *generalScaler) scale(dst []int32, src []uint16) {
	size := s.f.Size
	for i, p := range s.f.Pos {
		taps := s.f.Coeff[i*size : i*size+size]
		in := src[p : p+size]
		var acc int64
		for j, c := range taps {
			acc += int64(in[j]) * int64(c)
		}
		acc >>= s.shift
		if acc > s.hi {
			acc = s.hi
		}
		dst[i] = int32(acc)
	}
}

// fastScaler steps through the source in 16.16 fixed point and blends the
// two neighbours with a 7 bit weight. Output is 15 bits from 8 bit input.
type fastScaler struct {
	xInc int64
	srcW int
}

func (s *fastScaler) scale(dst []int32, src []uint16) {
	last := s.srcW - 1
	var xpos int64
	for i := range dst {
		xx := min(int(xpos>>16), last)
		alpha := int32((xpos & 0xFFFF) >> 9)
		a := int32(src[xx])
		b := a
		if xx < last {
			b = int32(src[xx+1])
		}
		dst[i] = a<<7 + (b-a)*alpha
		xpos += s.xInc
	}
	// replicate the right edge
	for i := len(dst) - 1; i >= 0 && (int64(i)*s.xInc)>>16 >= int64(last); i-- {
		dst[i] = int32(src[last]) << 7
	}
}

// rangeConv rescales an intermediate row between limited and full range
type rangeConv func(row []int32)

// rangeConverters returns the luma and chroma conversions needed to go from
// the source range to the destination range, or nils when they match.
func rangeConverters(srcFull, dstFull bool, ib int) (lum, chr rangeConv) {
	switch {
	case srcFull == dstFull:
		return nil, nil
	case dstFull && ib == 15:
		return lumToJpeg, chrToJpeg
	case dstFull:
		return lumToJpeg16, chrToJpeg16
	case ib == 15:
		return lumFromJpeg, chrFromJpeg
	}
	return lumFromJpeg16, chrFromJpeg16
}

func lumToJpeg(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(min(v, 30189))*19077 - 39057361) >> 14)
	}
}

func lumFromJpeg(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(v)*14071 + 33561947) >> 14)
	}
}

func chrToJpeg(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(min(v, 30775))*4663 - 9289992) >> 12)
	}
}

func chrFromJpeg(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(v)*1799 + 4081085) >> 11)
	}
}

func lumToJpeg16(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(min(v, 30189<<4))*4769 - 39057361<<2) >> 12)
	}
}

func lumFromJpeg16(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(v)*(14071/4) + (33561947<<4)/4) >> 12)
	}
}

func chrToJpeg16(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(min(v, 30775<<4))*4663 - 9289992<<4) >> 12)
	}
}

func chrFromJpeg16(row []int32) {
	for i, v := range row {
		row[i] = int32((int64(v)*1799 + 4081085<<4) >> 11)
	}
}
