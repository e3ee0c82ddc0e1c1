package swscale

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpfielding/swscale.go/pkg/pixfmt"
	"github.com/jpfielding/swscale.go/pkg/util"
)

// Config describes one conversion. Formats are pixfmt names such as
// "yuv420p" or "rgba". Params tune the kernel: B and C for bicubic, the
// exponent for experimental and gauss, the radius for lanczos. Missing
// entries take the kernel defaults.
type Config struct {
	SrcW      int        `json:"src_w"`
	SrcH      int        `json:"src_h"`
	SrcFormat string     `json:"src_format"`
	DstW      int        `json:"dst_w"`
	DstH      int        `json:"dst_h"`
	DstFormat string     `json:"dst_format"`
	Filter    FilterKind `json:"filter"`
	Params    []float64  `json:"params,omitempty"`
	Dither    DitherMode `json:"dither"`
}

// State is the lifecycle position of a Context
type State int

const (
	StateUninitialized State = iota
	StateConfigured
	StateStreaming
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// direction is the order slices arrive in. Rows are addressed in
// processing order: natural for topDown, flipped for bottomUp.
type direction int

const (
	topDown direction = iota
	bottomUp
)

type cursor struct {
	dir  direction
	dstY int // next destination row, processing order
	next int // first source row expected from the next slice, processing order
}

// Context converts images of one geometry and format pair. It keeps the
// filters, ring buffers and scratch rows between Scale calls and is not
// safe for concurrent use.
type Context struct {
	cfg      Config
	src, dst *pixfmt.Descriptor
	ib       int

	chrSrcW, chrSrcH int
	chrDstW, chrDstH int

	hLum, hChr         hScaler
	lumRange, chrRange rangeConv
	vLum, vChr         [2]*Filter // indexed by direction
	vs                 *vScaler

	lumRing, chrRing *lineRing

	hasChr     bool // destination stores chroma
	scaleAlpha bool // alpha is carried through the filters
	reader     pixfmt.Reader
	writer     pixfmt.Writer

	inY, inA, inU, inV []uint16
	out                pixfmt.Samples
	rows               [][]int32

	state State
	cur   cursor
	id    string
}

// New validates cfg, builds the filters and allocates every buffer the
// context will use.
func New(ctx context.Context, cfg Config) (*Context, error) {
	if cfg.SrcW <= 0 || cfg.SrcH <= 0 {
		return nil, &ConfigError{"source size", fmt.Errorf("%dx%d: %w", cfg.SrcW, cfg.SrcH, ErrInvalidDimensions)}
	}
	if cfg.DstW <= 0 || cfg.DstH <= 0 {
		return nil, &ConfigError{"destination size", fmt.Errorf("%dx%d: %w", cfg.DstW, cfg.DstH, ErrInvalidDimensions)}
	}
	src, err := pixfmt.Lookup(cfg.SrcFormat)
	if err != nil {
		return nil, &ConfigError{"source format", err}
	}
	dst, err := pixfmt.Lookup(cfg.DstFormat)
	if err != nil {
		return nil, &ConfigError{"destination format", err}
	}
	if !cfg.Filter.valid() {
		return nil, &ConfigError{"filter", fmt.Errorf("%s: %w", cfg.Filter, ErrUnknownFilter)}
	}
	if cfg.Dither < DitherAuto || cfg.Dither > DitherOrdered {
		return nil, &ConfigError{"dither", fmt.Errorf("%s: %w", cfg.Dither, ErrInvalidParam)}
	}

	kind := cfg.Filter
	if kind == FastBilinear && (cfg.SrcW < 8 || cfg.DstW < 8) {
		kind = Bilinear
	}
	chrKind := kind
	if kind == BicubLin {
		chrKind = Bilinear
	}

	c := &Context{
		cfg:     cfg,
		src:     src,
		dst:     dst,
		ib:      15,
		chrSrcW: src.ChromaWidth(cfg.SrcW),
		chrSrcH: src.ChromaHeight(cfg.SrcH),
		chrDstW: dst.ChromaWidth(cfg.DstW),
		chrDstH: dst.ChromaHeight(cfg.DstH),
		hasChr:  dst.HasChroma(),
		reader:  pixfmt.NewReader(src),
		writer:  pixfmt.NewWriter(dst),
		id:      util.HashUUID(cfg),
	}
	if max(src.Depth(), dst.Depth()) > 14 {
		c.ib = 19
	}

	hLum, err := NewFilter(cfg.SrcW, cfg.DstW, kind, cfg.Params, hOne)
	if err != nil {
		return nil, &ConfigError{"filter", err}
	}
	hChr, err := NewFilter(c.chrSrcW, c.chrDstW, chrKind, cfg.Params, hOne)
	if err != nil {
		return nil, &ConfigError{"filter", err}
	}
	vLum, err := NewFilter(cfg.SrcH, cfg.DstH, kind, cfg.Params, vOne)
	if err != nil {
		return nil, &ConfigError{"filter", err}
	}
	vChr, err := NewFilter(c.chrSrcH, c.chrDstH, chrKind, cfg.Params, vOne)
	if err != nil {
		return nil, &ConfigError{"filter", err}
	}
	for _, f := range []struct {
		name string
		f    *Filter
	}{{"horizontal luma", hLum}, {"horizontal chroma", hChr}, {"vertical luma", vLum}, {"vertical chroma", vChr}} {
		if f.f.Degenerate > 0 {
			slog.WarnContext(ctx, "swscale: zero vector in filter", slog.String("filter", f.name), slog.Int("outputs", f.f.Degenerate))
		}
	}
	c.vLum = [2]*Filter{vLum, vLum.Mirror()}
	c.vChr = [2]*Filter{vChr, vChr.Mirror()}

	c.hLum = newHScaler(hLum, kind, cfg.SrcW, cfg.DstW, src.Depth(), c.ib)
	c.hChr = newHScaler(hChr, chrKind, c.chrSrcW, c.chrDstW, src.Depth(), c.ib)
	c.lumRange, c.chrRange = rangeConverters(src.IsFullRange(), dst.IsFullRange(), c.ib)

	dither := cfg.Dither == DitherOrdered || (cfg.Dither == DitherAuto && src.Depth() > dst.Depth())
	c.vs = newVScaler(c.ib, dst.Depth(), dither)

	lumMargin, chrMargin := c.margins()
	lumChannels := 1
	if dst.HasAlpha() && src.HasAlpha() {
		c.scaleAlpha = true
		lumChannels = 2
	}
	c.lumRing = newLineRing(2*max(vLum.Size, lumMargin), lumChannels, cfg.DstW)
	if c.hasChr {
		c.chrRing = newLineRing(2*max(vChr.Size, chrMargin), 2, c.chrDstW)
	}

	c.inY = make([]uint16, cfg.SrcW)
	c.inA = make([]uint16, cfg.SrcW)
	c.inU = make([]uint16, c.chrSrcW)
	c.inV = make([]uint16, c.chrSrcW)
	c.out.Y = make([]uint16, cfg.DstW)
	c.out.U = make([]uint16, c.chrDstW)
	c.out.V = make([]uint16, c.chrDstW)
	if dst.HasAlpha() {
		c.out.A = make([]uint16, cfg.DstW)
		if !c.scaleAlpha {
			opaque := uint16(1<<dst.Depth() - 1)
			for i := range c.out.A {
				c.out.A[i] = opaque
			}
		}
	}
	c.rows = make([][]int32, 0, max(vLum.Size, vChr.Size))
	c.state = StateConfigured

	slog.DebugContext(ctx, "swscale context",
		slog.String("id", c.id),
		slog.String("src", fmt.Sprintf("%dx%d %s", cfg.SrcW, cfg.SrcH, src)),
		slog.String("dst", fmt.Sprintf("%dx%d %s", cfg.DstW, cfg.DstH, dst)),
		slog.String("filter", kind.String()),
		slog.Int("intermediateBits", c.ib),
		slog.Int("hLumSize", hLum.Size),
		slog.Int("hChrSize", hChr.Size),
		slog.Int("vLumSize", vLum.Size),
		slog.Int("vChrSize", vChr.Size),
		slog.Int("lumRing", c.lumRing.capacity()),
		slog.Bool("dither", c.vs.dither))
	return c, nil
}

// ID fingerprints the configuration; equal configs share an ID
func (c *Context) ID() string { return c.id }

// Config returns the configuration the context was built from
func (c *Context) Config() Config { return c.cfg }

// State reports where the context is in its lifecycle
func (c *Context) State() State { return c.state }

// Filters returns the luma and chroma vertical filters for top-down slices
func (c *Context) Filters() (lum, chr *Filter) { return c.vLum[topDown], c.vChr[topDown] }

// chromaRow maps a processing order destination row to its processing
// order chroma row
func (c *Context) chromaRow(dir direction, p int) int {
	if dir == topDown {
		return p >> c.dst.Log2ChromaH
	}
	n := c.cfg.DstH - 1 - p
	return c.chrDstH - 1 - n>>c.dst.Log2ChromaH
}

// emitsChroma reports whether row p is the first of its chroma row
func (c *Context) emitsChroma(dir direction, p int) bool {
	return c.hasChr && (p == 0 || c.chromaRow(dir, p-1) != c.chromaRow(dir, p))
}

// margins bounds how far past the first needed row each ring can be filled
// when a slice ends short of a row's requirements, over both directions.
func (c *Context) margins() (lum, chr int) {
	s := c.src.Log2ChromaH
	for _, dir := range []direction{topDown, bottomUp} {
		lf, cf := c.vLum[dir], c.vChr[dir]
		for p := 0; p < c.cfg.DstH; p++ {
			cp := c.chromaRow(dir, p)
			firstL, lastL := lf.Pos[p], lf.Pos[p]+lf.Size-1
			firstC, lastC := cf.Pos[cp], cf.Pos[cp]+cf.Size-1
			// chroma rows straddling a slice edge add one row on either side
			lumEnd := max(lastL+1, (lastC+2)<<s)
			chrEnd := max(lastC+1, pixfmt.CeilRShift(lastL+1, s)+1)
			lum = max(lum, lumEnd-firstL)
			chr = max(chr, chrEnd-firstC)
		}
	}
	return lum, chr
}
