package swscale

import (
	"fmt"

	"github.com/jpfielding/swscale.go/pkg/pixfmt"
)

// Plane is one image plane. A negative Stride stores rows bottom-up: row y
// of an n row plane starts at (n-1-y)*|Stride|.
type Plane struct {
	Data   []byte
	Stride int
}

// row returns the bytes of row y in a plane holding n rows
func (p Plane) row(y, n int) []byte {
	if p.Stride >= 0 {
		return p.Data[y*p.Stride:]
	}
	return p.Data[(n-1-y)*-p.Stride:]
}

// check verifies the plane can hold n rows of rowBytes bytes
func (p Plane) check(n, rowBytes int) error {
	if n == 0 {
		return nil
	}
	if p.Data == nil {
		return ErrMissingPlane
	}
	stride := p.Stride
	if stride < 0 {
		stride = -stride
	}
	if n > 1 && stride < rowBytes {
		return fmt.Errorf("stride %d below row size %d: %w", stride, rowBytes, ErrPlaneTooSmall)
	}
	if need := (n-1)*stride + rowBytes; len(p.Data) < need {
		return fmt.Errorf("%d bytes, need %d: %w", len(p.Data), need, ErrPlaneTooSmall)
	}
	return nil
}

// Frame is a whole image with tightly packed top-down planes
type Frame struct {
	Format *pixfmt.Descriptor
	Width  int
	Height int
	Planes []Plane
}

// NewFrame allocates zeroed planes for a w x h image
func NewFrame(d *pixfmt.Descriptor, w, h int) *Frame {
	f := &Frame{Format: d, Width: w, Height: h, Planes: make([]Plane, d.NumPlanes())}
	for p := range f.Planes {
		stride := d.RowBytes(p, w)
		f.Planes[p] = Plane{Data: make([]byte, stride*d.PlaneHeight(p, h)), Stride: stride}
	}
	return f
}

// Size is the total number of bytes held by the planes
func (f *Frame) Size() int {
	n := 0
	for _, p := range f.Planes {
		n += len(p.Data)
	}
	return n
}

// sliceRows maps luma rows [y, y+h) of plane p to that plane's row range
func sliceRows(d *pixfmt.Descriptor, p, y, h int) (int, int) {
	if d.IsChromaPlane(p) {
		return y >> d.Log2ChromaH, pixfmt.CeilRShift(y+h, d.Log2ChromaH)
	}
	return y, y + h
}

// Slice returns plane views covering luma rows [y, y+h), the layout Scale
// expects for a slice. Views share memory with the frame.
func (f *Frame) Slice(y, h int) []Plane {
	out := make([]Plane, len(f.Planes))
	for p, pl := range f.Planes {
		a, b := sliceRows(f.Format, p, y, h)
		if b <= a {
			out[p] = Plane{Data: []byte{}, Stride: pl.Stride}
			continue
		}
		n := f.Format.PlaneHeight(p, f.Height)
		stride := pl.Stride
		if stride < 0 {
			stride = -stride
		}
		rowBytes := f.Format.RowBytes(p, f.Width)
		var start int
		if pl.Stride >= 0 {
			start = a * stride
		} else {
			start = (n - b) * stride
		}
		end := start + (b-a-1)*stride + rowBytes
		out[p] = Plane{Data: pl.Data[start:end], Stride: pl.Stride}
	}
	return out
}
