package pixfmt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownFormat is returned by Lookup for names missing from the table
var ErrUnknownFormat = errors.New("pixfmt: unknown pixel format")

// Flag describes layout properties of a pixel format
type Flag uint32

const (
	// FlagPlanar marks formats with at least one component per plane
	FlagPlanar Flag = 1 << iota
	// FlagRGB marks formats whose components are R, G, B (A)
	FlagRGB
	// FlagAlpha marks formats carrying an alpha component
	FlagAlpha
	// FlagBE marks big-endian multi-byte samples
	FlagBE
	// FlagFloat marks 32-bit IEEE float samples in [0, 1]
	FlagFloat
	// FlagFullRange marks YUV formats using the full (JPEG) sample range
	FlagFullRange
)

// Component locates one channel of a pixel inside the plane rows.
// Component order is Y, U, V, A for YUV formats and R, G, B, A for RGB.
type Component struct {
	Plane  int // plane index holding this component
	Step   int // bytes between two horizontally adjacent samples
	Offset int // bytes before the first sample in a row
	Shift  int // bits to shift right after reading the storage word
	Depth  int // significant bits per sample
}

// Descriptor is the static description of a pixel format
type Descriptor struct {
	Name         string
	NbComponents int
	Log2ChromaW  int
	Log2ChromaH  int
	Flags        Flag
	Comp         [4]Component
}

// Depth is the sample depth the scaler computes with.
// Float formats compute at 16 bits and convert on read/write.
func (d *Descriptor) Depth() int { return d.Comp[0].Depth }

func (d *Descriptor) IsRGB() bool       { return d.Flags&FlagRGB != 0 }
func (d *Descriptor) HasAlpha() bool    { return d.Flags&FlagAlpha != 0 }
func (d *Descriptor) IsBE() bool        { return d.Flags&FlagBE != 0 }
func (d *Descriptor) IsFloat() bool     { return d.Flags&FlagFloat != 0 }
func (d *Descriptor) IsPlanar() bool    { return d.Flags&FlagPlanar != 0 }
func (d *Descriptor) IsFullRange() bool { return d.Flags&FlagFullRange != 0 }

// IsGray reports formats with a single colour component
func (d *Descriptor) IsGray() bool {
	return !d.IsRGB() && d.NbComponents-btoi(d.HasAlpha()) == 1
}

// HasChroma reports whether the format stores U and V (or is RGB)
func (d *Descriptor) HasChroma() bool { return !d.IsGray() }

// NumPlanes counts the planes referenced by the components
func (d *Descriptor) NumPlanes() int {
	n := 0
	for i := 0; i < d.NbComponents; i++ {
		if p := d.Comp[i].Plane + 1; p > n {
			n = p
		}
	}
	return n
}

// WordSize is the storage size of one sample in bytes
func (d *Descriptor) WordSize() int {
	switch {
	case d.IsFloat():
		return 4
	case d.Comp[0].Depth+d.Comp[0].Shift > 8:
		return 2
	}
	return 1
}

// isChromaComp reports whether component i is subsampled
func (d *Descriptor) isChromaComp(i int) bool {
	return !d.IsRGB() && (i == 1 || i == 2)
}

// IsChromaPlane reports planes whose rows follow the chroma geometry
func (d *Descriptor) IsChromaPlane(plane int) bool {
	for i := 0; i < d.NbComponents; i++ {
		if d.Comp[i].Plane == plane && !d.isChromaComp(i) {
			return false
		}
	}
	return plane > 0 && plane < d.NumPlanes()
}

// ChromaWidth returns the chroma plane width for a luma width
func (d *Descriptor) ChromaWidth(w int) int { return CeilRShift(w, d.Log2ChromaW) }

// ChromaHeight returns the chroma plane height for a luma height
func (d *Descriptor) ChromaHeight(h int) int { return CeilRShift(h, d.Log2ChromaH) }

// PlaneHeight is the number of rows stored in plane p
func (d *Descriptor) PlaneHeight(p, h int) int {
	if d.IsChromaPlane(p) {
		return d.ChromaHeight(h)
	}
	return h
}

// RowBytes is the minimum number of bytes one row of plane p occupies
func (d *Descriptor) RowBytes(p, w int) int {
	ws := d.WordSize()
	n := 0
	for i := 0; i < d.NbComponents; i++ {
		c := d.Comp[i]
		if c.Plane != p {
			continue
		}
		cw := w
		if d.isChromaComp(i) {
			cw = d.ChromaWidth(w)
		}
		if end := c.Offset + (cw-1)*c.Step + ws; end > n {
			n = end
		}
	}
	return n
}

func (d *Descriptor) String() string { return d.Name }

// CeilRShift divides by 2^s rounding up, used for odd chroma dimensions
func CeilRShift(v, s int) int { return -((-v) >> s) }

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

var formats = map[string]*Descriptor{}

func register(d *Descriptor) {
	formats[d.Name] = d
}

// Lookup finds a descriptor by name (case-insensitive)
func Lookup(name string) (*Descriptor, error) {
	d, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return d, nil
}

// MustLookup is Lookup for names known at compile time
func MustLookup(name string) *Descriptor {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names lists the supported formats in sorted order
func Names() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
