package swscale

import (
	"fmt"

	"github.com/jpfielding/swscale.go/pkg/pixfmt"
)

// slice is the caller supplied window of source rows [y, y+h)
type slice struct {
	planes []Plane
	y, h   int
	cy, ch int // chroma plane rows [cy, cy+ch)
}

// Scale consumes source rows [sliceY, sliceY+sliceH) and writes every
// destination row those rows complete. src planes hold only the slice rows,
// dst planes the whole destination image. Slices of one image must be
// contiguous and run either top to bottom or bottom to top; the first slice
// decides which. It returns the number of rows written by this call, which
// is zero while the rows buffered so far do not complete a destination row.
func (c *Context) Scale(src []Plane, sliceY, sliceH int, dst []Plane) (int, error) {
	if c.state == StateUninitialized {
		return 0, fmt.Errorf("swscale: %w", ErrNotConfigured)
	}
	srcH := c.cfg.SrcH
	if sliceY < 0 || sliceH < 0 || sliceY+sliceH > srcH {
		return 0, fmt.Errorf("swscale: slice %d+%d of %d rows: %w", sliceY, sliceH, srcH, ErrSliceBounds)
	}
	if sliceH == 0 {
		if c.state == StateStreaming {
			return 0, fmt.Errorf("swscale: %w", ErrEmptySlice)
		}
		return 0, nil
	}

	dir, restart, err := c.place(sliceY, sliceH)
	if err != nil {
		return 0, err
	}
	if err := c.checkPlanes(src, sliceY, sliceH, dst); err != nil {
		return 0, err
	}
	if restart {
		c.begin(dir)
	}
	c.state = StateStreaming

	s := slice{planes: src, y: sliceY, h: sliceH}
	cy := sliceY >> c.src.Log2ChromaH
	s.cy, s.ch = cy, pixfmt.CeilRShift(sliceY+sliceH, c.src.Log2ChromaH)-cy

	n, err := c.run(&s, dst)
	_, c.cur.next, _, _ = c.span(sliceY, sliceH)
	if c.cur.dstY == c.cfg.DstH {
		c.state = StateDone
	}
	return n, err
}

// ScaleFrame converts a whole frame with a single slice
func (c *Context) ScaleFrame(src, dst *Frame) (int, error) {
	if src.Format != c.src || src.Width != c.cfg.SrcW || src.Height != c.cfg.SrcH {
		return 0, fmt.Errorf("swscale: source %dx%d %s: %w", src.Width, src.Height, src.Format, ErrFrameMismatch)
	}
	if dst.Format != c.dst || dst.Width != c.cfg.DstW || dst.Height != c.cfg.DstH {
		return 0, fmt.Errorf("swscale: destination %dx%d %s: %w", dst.Width, dst.Height, dst.Format, ErrFrameMismatch)
	}
	return c.Scale(src.Planes, 0, src.Height, dst.Planes)
}

// place decides whether the slice continues the current image or starts a
// new one, and in which direction.
func (c *Context) place(y, h int) (dir direction, restart bool, err error) {
	srcH := c.cfg.SrcH
	if c.state == StateStreaming || c.state == StateDone {
		start := y
		if c.cur.dir == bottomUp {
			start = srcH - y - h
		}
		if start == c.cur.next {
			return c.cur.dir, false, nil
		}
	}
	// an image in progress keeps its direction; only a top slice restarts
	switch {
	case y == 0:
		return topDown, true, nil
	case c.state == StateStreaming:
		return 0, false, fmt.Errorf("swscale: slice %d+%d, expected row %d: %w", y, h, c.expected(), ErrSliceOrder)
	case y+h == srcH:
		return bottomUp, true, nil
	}
	return 0, false, fmt.Errorf("swscale: slice %d+%d: %w", y, h, ErrSliceMiddle)
}

// expected is the natural row the next slice should start (or end) at
func (c *Context) expected() int {
	if c.cur.dir == bottomUp {
		return c.cfg.SrcH - c.cur.next
	}
	return c.cur.next
}

func (c *Context) begin(dir direction) {
	c.cur = cursor{dir: dir}
	c.lumRing.reset()
	if c.chrRing != nil {
		c.chrRing.reset()
	}
}

func (c *Context) checkPlanes(src []Plane, y, h int, dst []Plane) error {
	for p := 0; p < c.src.NumPlanes(); p++ {
		if p >= len(src) {
			return fmt.Errorf("swscale: source plane %d: %w", p, ErrMissingPlane)
		}
		a, b := sliceRows(c.src, p, y, h)
		if err := src[p].check(b-a, c.src.RowBytes(p, c.cfg.SrcW)); err != nil {
			return fmt.Errorf("swscale: source plane %d: %w", p, err)
		}
	}
	for p := 0; p < c.dst.NumPlanes(); p++ {
		if p >= len(dst) {
			return fmt.Errorf("swscale: destination plane %d: %w", p, ErrMissingPlane)
		}
		n := c.dst.PlaneHeight(p, c.cfg.DstH)
		if err := dst[p].check(n, c.dst.RowBytes(p, c.cfg.DstW)); err != nil {
			return fmt.Errorf("swscale: destination plane %d: %w", p, err)
		}
	}
	return nil
}

// span maps a slice to processing order luma and chroma row ranges
func (c *Context) span(y, h int) (lum0, lum1, chr0, chr1 int) {
	s := c.src.Log2ChromaH
	cy0, cy1 := y>>s, pixfmt.CeilRShift(y+h, s)
	if c.cur.dir == topDown {
		return y, y + h, cy0, cy1
	}
	return c.cfg.SrcH - y - h, c.cfg.SrcH - y, c.chrSrcH - cy1, c.chrSrcH - cy0
}

// run buffers source rows and emits destination rows until the slice runs
// out of rows the next destination row depends on.
func (c *Context) run(s *slice, dst []Plane) (int, error) {
	dir := c.cur.dir
	lf, cf := c.vLum[dir], c.vChr[dir]
	lum0, lum1, chr0, chr1 := c.span(s.y, s.h)

	emitted := 0
	for c.cur.dstY < c.cfg.DstH {
		p := c.cur.dstY
		firstL, lastL := lf.Pos[p], lf.Pos[p]+lf.Size-1
		cp := c.chromaRow(dir, p)
		needChr := c.emitsChroma(dir, p)
		firstC, lastC := cf.Pos[cp], cf.Pos[cp]+cf.Size-1

		// rows no destination row reads are never scaled
		c.lumRing.skipTo(firstL)
		if needChr {
			c.chrRing.skipTo(firstC)
		}

		if lastL >= lum1 || (needChr && lastC >= chr1) {
			c.feedLuma(s, lum0, lum1)
			if c.hasChr {
				c.feedChroma(s, chr0, chr1)
			}
			break
		}
		c.feedLuma(s, lum0, lastL+1)
		if needChr {
			c.feedChroma(s, chr0, lastC+1)
		}
		if err := c.emit(dst, p, cp, needChr); err != nil {
			return emitted, err
		}
		c.cur.dstY++
		emitted++
	}
	return emitted, nil
}

// feedLuma scales processing rows [from, to) of the slice into the luma ring
func (c *Context) feedLuma(s *slice, from, to int) {
	r := c.lumRing
	r.skipTo(from)
	var rows pixfmt.Rows
	for q := r.last + 1; q < to; q++ {
		n := q
		if c.cur.dir == bottomUp {
			n = c.cfg.SrcH - 1 - q
		}
		for p := 0; p < c.src.NumPlanes(); p++ {
			rows[p] = nil
			if !c.src.IsChromaPlane(p) {
				rows[p] = s.planes[p].row(n-s.y, s.h)
			}
		}
		slot := r.next()
		c.reader.Luma(c.inY, &rows, c.cfg.SrcW)
		c.hLum.scale(slot[0], c.inY)
		if c.lumRange != nil {
			c.lumRange(slot[0])
		}
		if c.scaleAlpha {
			c.reader.Alpha(c.inA, &rows, c.cfg.SrcW)
			c.hLum.scale(slot[1], c.inA)
		}
	}
}

// feedChroma scales processing chroma rows [from, to) into the chroma ring
func (c *Context) feedChroma(s *slice, from, to int) {
	r := c.chrRing
	r.skipTo(from)
	var rows pixfmt.Rows
	sub := c.src.Log2ChromaH
	for q := r.last + 1; q < to; q++ {
		n := q
		if c.cur.dir == bottomUp {
			n = c.chrSrcH - 1 - q
		}
		for p := 0; p < c.src.NumPlanes(); p++ {
			switch {
			case c.src.IsChromaPlane(p):
				rows[p] = s.planes[p].row(n-s.cy, s.ch)
			case sub == 0:
				rows[p] = s.planes[p].row(n-s.y, s.h)
			default:
				rows[p] = nil
			}
		}
		slot := r.next()
		c.reader.Chroma(c.inU, c.inV, &rows, c.chrSrcW)
		c.hChr.scale(slot[0], c.inU)
		c.hChr.scale(slot[1], c.inV)
		if c.chrRange != nil {
			c.chrRange(slot[0])
			c.chrRange(slot[1])
		}
	}
}

// emit computes destination row p (processing order) and writes it. All
// ring lookups happen before the first byte of dst is touched.
func (c *Context) emit(dst []Plane, p, cp int, needChr bool) error {
	dir := c.cur.dir
	n := p
	if dir == bottomUp {
		n = c.cfg.DstH - 1 - p
	}
	lf := c.vLum[dir]

	rows, err := c.lumRing.span(lf.Pos[p], lf.Size, 0, c.rows)
	if err != nil {
		return err
	}
	c.vs.scale(c.out.Y, rows, lf.Taps(p), n, 0)
	if c.scaleAlpha {
		if rows, err = c.lumRing.span(lf.Pos[p], lf.Size, 1, rows); err != nil {
			return err
		}
		c.vs.scale(c.out.A, rows, lf.Taps(p), n, 0)
	}

	out := c.out
	cn := n >> c.dst.Log2ChromaH
	if needChr {
		cf := c.vChr[dir]
		if rows, err = c.chrRing.span(cf.Pos[cp], cf.Size, 0, rows); err != nil {
			return err
		}
		c.vs.scale(out.U, rows, cf.Taps(cp), cn, 0)
		if rows, err = c.chrRing.span(cf.Pos[cp], cf.Size, 1, rows); err != nil {
			return err
		}
		c.vs.scale(out.V, rows, cf.Taps(cp), cn, 3)
	} else {
		out.U, out.V = nil, nil
	}
	c.rows = rows

	var drows pixfmt.Rows
	for pl := 0; pl < c.dst.NumPlanes(); pl++ {
		if c.dst.IsChromaPlane(pl) {
			if needChr {
				drows[pl] = dst[pl].row(cn, c.chrDstH)
			}
			continue
		}
		drows[pl] = dst[pl].row(n, c.cfg.DstH)
	}
	c.writer.Write(&drows, &out, c.cfg.DstW, c.chrDstW)
	return nil
}
