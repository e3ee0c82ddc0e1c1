package swscale

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// FilterKind selects the resampling kernel. The zero value is Bicubic.
type FilterKind int

const (
	Bicubic FilterKind = iota
	Bilinear
	FastBilinear
	Experimental
	Point
	Area
	BicubLin // bicubic luma, bilinear chroma
	Gauss
	Sinc
	Lanczos
	Spline
)

var filterNames = [...]string{
	Bicubic:      "bicubic",
	Bilinear:     "bilinear",
	FastBilinear: "fast_bilinear",
	Experimental: "experimental",
	Point:        "point",
	Area:         "area",
	BicubLin:     "bicublin",
	Gauss:        "gauss",
	Sinc:         "sinc",
	Lanczos:      "lanczos",
	Spline:       "spline",
}

func (k FilterKind) String() string {
	if k < 0 || int(k) >= len(filterNames) {
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
	return filterNames[k]
}

func (k FilterKind) valid() bool { return k >= 0 && int(k) < len(filterNames) }

// ParseFilterKind maps a kernel name (as printed by String) to its kind
func ParseFilterKind(s string) (FilterKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, n := range filterNames {
		if n == s {
			return FilterKind(k), nil
		}
	}
	switch s {
	case "x":
		return Experimental, nil
	case "neighbor", "nearest":
		return Point, nil
	}
	return 0, fmt.Errorf("swscale: %q: %w", s, ErrUnknownFilter)
}

// FilterKinds lists every kernel
func FilterKinds() []FilterKind {
	kinds := make([]FilterKind, len(filterNames))
	for i := range kinds {
		kinds[i] = FilterKind(i)
	}
	return kinds
}

const (
	hOne             = 1 << 14 // horizontal fixed-point unit
	vOne             = 1 << 12 // vertical fixed-point unit
	maxReduceCutoff  = 0.002
	splineParam      = -2.196152422706632
	defaultBicubicC  = 0.6
	defaultGaussP    = 3.0
	defaultLanczosP  = 3.0
	defaultLanczosSz = 6
)

// Filter is a quantized tap table mapping dst coordinates onto src samples.
// Output i reads src[Pos[i] : Pos[i]+Size] weighted by Coeff[i*Size:].
// Coefficients of each output sum to One exactly.
type Filter struct {
	Size  int
	Pos   []int
	Coeff []int32
	One   int
	Src   int

	// Degenerate counts outputs whose weights summed to zero before
	// quantization; they were forced onto a single tap.
	Degenerate int
}

// Len is the number of output coordinates
func (f *Filter) Len() int { return len(f.Pos) }

// Taps returns the weights of output i
func (f *Filter) Taps(i int) []int32 { return f.Coeff[i*f.Size : (i+1)*f.Size] }

// Mirror returns the table for walking both axes backwards: output i of the
// mirror is output Len()-1-i of f, addressed from the far source edge.
func (f *Filter) Mirror() *Filter {
	n := len(f.Pos)
	m := &Filter{
		Size:  f.Size,
		Pos:   make([]int, n),
		Coeff: make([]int32, len(f.Coeff)),
		One:   f.One,
		Src:   f.Src,

		Degenerate: f.Degenerate,
	}
	for i := 0; i < n; i++ {
		k := n - 1 - i
		m.Pos[i] = f.Src - f.Pos[k] - f.Size
		for j := 0; j < f.Size; j++ {
			m.Coeff[i*f.Size+j] = f.Coeff[k*f.Size+f.Size-1-j]
		}
	}
	return m
}

// kernelParams are the resolved tuning values of a kind
type kernelParams struct {
	a, b float64
	set  bool // a was given explicitly
}

func resolveParams(kind FilterKind, params []float64) (kernelParams, error) {
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return kernelParams{}, fmt.Errorf("swscale: param %d of %s: %w", i, kind, ErrInvalidParam)
		}
	}
	var kp kernelParams
	get := func(i int, def float64) float64 {
		if i < len(params) {
			if i == 0 {
				kp.set = true
			}
			return params[i]
		}
		return def
	}
	switch kind {
	case Bicubic, BicubLin:
		kp.a = get(0, 0)
		kp.b = get(1, defaultBicubicC)
	case Experimental:
		kp.a = get(0, 1.0)
	case Gauss:
		kp.a = get(0, defaultGaussP)
	case Lanczos:
		kp.a = get(0, defaultLanczosP)
	}
	switch kind {
	case Experimental, Gauss, Lanczos:
		if kp.a <= 0 {
			return kp, fmt.Errorf("swscale: %s param %g: %w", kind, kp.a, ErrInvalidParam)
		}
	}
	return kp, nil
}

func sizeFactor(kind FilterKind, kp kernelParams) int {
	switch kind {
	case Experimental, Gauss:
		return 8
	case Area:
		return 1
	case Sinc, Spline:
		return 20
	case Bilinear:
		return 2
	case Lanczos:
		if kp.set {
			return int(math.Ceil(2 * kp.a))
		}
		return defaultLanczosSz
	}
	return 4 // bicubic
}

// NewFilter builds the tap table resampling src samples onto dst samples.
// one is the fixed-point unit of the quantized weights.
func NewFilter(src, dst int, kind FilterKind, params []float64, one int) (*Filter, error) {
	if src <= 0 || dst <= 0 {
		return nil, fmt.Errorf("swscale: filter %d->%d: %w", src, dst, ErrInvalidDimensions)
	}
	if !kind.valid() {
		return nil, fmt.Errorf("swscale: %s: %w", kind, ErrUnknownFilter)
	}
	kp, err := resolveParams(kind, params)
	if err != nil {
		return nil, err
	}
	if kind == BicubLin {
		kind = Bicubic
	}

	xInc := (int64(src)<<16 + int64(dst>>1)) / int64(dst)
	fone := int64(1) << (54 - min(ilog2(src/dst), 8))
	pos := make([]int, dst)
	var size int
	var taps []int64

	switch {
	case abs64(xInc-1<<16) < 10:
		size = 1
		taps = make([]int64, dst)
		for i := range pos {
			pos[i] = i
			taps[i] = fone
		}
	case kind == Point:
		size = 1
		taps = make([]int64, dst)
		x := xInc/2 - 0x8000
		for i := range pos {
			pos[i] = int((x + 1<<15) >> 16)
			taps[i] = fone
			x += xInc
		}
	case kind == FastBilinear || (kind == Area && xInc <= 1<<16):
		size = 2
		taps = make([]int64, dst*size)
		x := xInc/2 - 0x8000
		for i := range pos {
			xx := x >> 16
			pos[i] = int(xx)
			for j := 0; j < size; j++ {
				c := fone - abs64((xx+int64(j))<<16-x)*(fone>>16)
				if c < 0 {
					c = 0
				}
				taps[i*size+j] = c
			}
			x += xInc
		}
	default:
		f := sizeFactor(kind, kp)
		if xInc <= 1<<16 {
			size = 1 + f
		} else {
			size = 1 + (f*src+dst-1)/dst
		}
		size = max(min(size, src), 1)
		taps = make([]int64, dst*size)
		x := xInc - 0x10000
		for i := range pos {
			xx := (x - int64(size-2)<<16) / (1 << 17)
			pos[i] = int(xx)
			for j := 0; j < size; j++ {
				d := abs64(xx<<17-x) << 13
				if xInc > 1<<16 {
					d = d * int64(dst) / int64(src)
				}
				taps[i*size+j] = kernel(kind, kp, d, xInc, fone)
				xx++
			}
			x += 2 * xInc
		}
	}

	if n := reduce(taps, pos, size, fone); n < size {
		taps, size = repack(taps, size, n), n
	}
	fixBorders(taps, pos, size, src)
	if size > src {
		// only the two tap branches get here, with a one sample source;
		// fixBorders already folded every tap onto sample 0
		taps, size = repack(taps, size, src), src
	}

	coeff, degenerate := normalize(taps, size, int64(one))
	return &Filter{
		Size:       size,
		Pos:        pos,
		Coeff:      coeff,
		One:        one,
		Src:        src,
		Degenerate: degenerate,
	}, nil
}

// kernel evaluates one unnormalized weight. d is the distance in 2.30 fixed point.
func kernel(kind FilterKind, kp kernelParams, d, xInc, fone int64) int64 {
	fd := float64(d) / (1 << 30)
	switch kind {
	case Bicubic:
		b := int64(kp.a * (1 << 24))
		c := int64(kp.b * (1 << 24))
		var coeff int64
		if d < 1<<31 {
			dd := (d * d) >> 30
			ddd := (dd * d) >> 30
			if d < 1<<30 {
				coeff = (12*(1<<24)-9*b-6*c)*ddd +
					(-18*(1<<24)+12*b+6*c)*dd +
					(6*(1<<24)-2*b)*(1<<30)
			} else {
				coeff = (-b-6*c)*ddd +
					(6*b+30*c)*dd +
					(-12*b-48*c)*d +
					(8*b+24*c)*(1<<30)
			}
		}
		return coeff / ((1 << 54) / fone)
	case Experimental:
		c := -1.0
		if fd < 1.0 {
			c = math.Cos(fd * math.Pi)
		}
		if c < 0 {
			c = -math.Pow(-c, kp.a)
		} else {
			c = math.Pow(c, kp.a)
		}
		return int64((c*0.5 + 0.5) * float64(fone))
	case Area:
		d2 := d - 1<<29
		var coeff int64
		switch {
		case d2*xInc < -(1 << (29 + 16)):
			coeff = 1 << (30 + 16)
		case d2*xInc < 1<<(29+16):
			coeff = -d2*xInc + 1<<(29+16)
		}
		return coeff * (fone >> (30 + 16))
	case Gauss:
		return int64(math.Exp2(-kp.a*fd*fd) * float64(fone))
	case Sinc:
		if d == 0 {
			return fone
		}
		return int64(math.Sin(fd*math.Pi) / (fd * math.Pi) * float64(fone))
	case Lanczos:
		if fd > kp.a {
			return 0
		}
		if d == 0 {
			return fone
		}
		v := math.Sin(fd*math.Pi) * math.Sin(fd*math.Pi/kp.a) / (fd * fd * math.Pi * math.Pi / kp.a)
		return int64(v * float64(fone))
	case Bilinear:
		coeff := int64(1<<30) - d
		if coeff < 0 {
			coeff = 0
		}
		return coeff * (fone >> 30)
	case Spline:
		return int64(splineCoeff(1.0, 0.0, splineParam, -splineParam-1.0, fd) * float64(fone))
	}
	return 0
}

func splineCoeff(a, b, c, d, dist float64) float64 {
	if dist <= 1.0 {
		return ((d*dist+c)*dist+b)*dist + a
	}
	return splineCoeff(0.0, b+2.0*c+3.0*d, c+3.0*d, -b-3.0*c-6.0*d, dist-1.0)
}

// reduce drops near-zero taps at both ends of every output, shifting
// positions right where it trims on the left. It never lets a position
// overtake its successor. Returns the smallest size that keeps every
// significant tap.
func reduce(taps []int64, pos []int, size int, fone int64) int {
	limit := maxReduceCutoff * float64(fone)
	dst := len(pos)
	minSize := 0
	for i := dst - 1; i >= 0; i-- {
		row := taps[i*size : (i+1)*size]
		var cut int64
		for j := 0; j < size; j++ {
			cut += abs64(row[0])
			if float64(cut) > limit {
				break
			}
			if i < dst-1 && pos[i] >= pos[i+1] {
				break
			}
			copy(row, row[1:])
			row[size-1] = 0
			pos[i]++
		}

		n := size
		cut = 0
		for j := size - 1; j > 0; j-- {
			cut += abs64(row[j])
			if float64(cut) > limit {
				break
			}
			n--
		}
		minSize = max(minSize, n)
	}
	return max(minSize, 1)
}

// fixBorders folds taps that fall outside [0, src) onto the edge sample and
// moves the window inside the source.
func fixBorders(taps []int64, pos []int, size, src int) {
	for i := range pos {
		row := taps[i*size : (i+1)*size]
		if pos[i] < 0 {
			for j := 1; j < size; j++ {
				left := max(j+pos[i], 0)
				row[left] += row[j]
				row[j] = 0
			}
			pos[i] = 0
		}
		if pos[i]+size > src {
			shift := pos[i] + min(size-src, 0)
			var acc int64
			for j := size - 1; j >= 0; j-- {
				if pos[i]+j >= src {
					acc += row[j]
					row[j] = 0
				}
			}
			for j := size - 1; j >= 0; j-- {
				if j < shift {
					row[j] = 0
				} else {
					row[j] = row[j-shift]
				}
			}
			pos[i] -= shift
			row[src-1-pos[i]] += acc
		}
	}
}

// normalize quantizes every output to sum to one. Rounding error is carried
// from tap to tap and whatever is left lands on the heaviest tap. It also
// returns how many outputs had a zero sum.
func normalize(taps []int64, size int, one int64) ([]int32, int) {
	out := make([]int32, len(taps))
	degenerate := 0
	for i := 0; i < len(taps)/size; i++ {
		row := taps[i*size : (i+1)*size]
		q := out[i*size : (i+1)*size]
		var sum int64
		for _, v := range row {
			sum += v
		}
		sum = (sum + one/2) / one
		if sum == 0 {
			degenerate++
			sum = 1
		}
		var carry, total int64
		heavy := 0
		for j, v := range row {
			v += carry
			iv := roundedDiv(v, sum)
			q[j] = int32(iv)
			carry = v - iv*sum
			total += iv
			if abs64(iv) > abs64(int64(q[heavy])) {
				heavy = j
			}
		}
		q[heavy] += int32(one - total)
	}
	return out, degenerate
}

func repack(taps []int64, size, n int) []int64 {
	dst := len(taps) / size
	packed := make([]int64, dst*n)
	for i := 0; i < dst; i++ {
		copy(packed[i*n:(i+1)*n], taps[i*size:i*size+n])
	}
	return packed
}

func roundedDiv(a, b int64) int64 {
	if a >= 0 {
		return (a + b>>1) / b
	}
	return (a - b>>1) / b
}

func ilog2(v int) int {
	if v <= 0 {
		return 0
	}
	return bits.Len(uint(v)) - 1
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
