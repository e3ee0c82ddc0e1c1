package cmd

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"github.com/jpfielding/swscale.go/pkg/pixfmt"
	"github.com/jpfielding/swscale.go/pkg/swscale"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var ErrNoEncoding = errors.New("pixel format has no image encoding")

// rawInput describes headerless input, which has no size or format of its own
type rawInput struct {
	format string
	w, h   int
}

// loadFrame reads path either as raw planes (when raw.format is set) or as
// an encoded image. Decoded images map onto a matching pixel format where
// one exists and are converted to rgba otherwise.
func loadFrame(path string, raw rawInput) (*swscale.Frame, error) {
	if raw.format != "" {
		return loadRaw(path, raw)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return imageFrame(img), nil
}

func loadRaw(path string, raw rawInput) (*swscale.Frame, error) {
	d, err := pixfmt.Lookup(raw.format)
	if err != nil {
		return nil, err
	}
	if raw.w <= 0 || raw.h <= 0 {
		return nil, fmt.Errorf("raw input needs --src-width and --src-height: %w", swscale.ErrInvalidDimensions)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	frame := swscale.NewFrame(d, raw.w, raw.h)
	for _, p := range frame.Planes {
		if _, err := io.ReadFull(f, p.Data); err != nil {
			return nil, fmt.Errorf("short raw %s %dx%d input: %w", d, raw.w, raw.h, err)
		}
	}
	return frame, nil
}

// imageFrame wraps the pixels of img without copying when the layout
// already matches a pixel format
func imageFrame(img image.Image) *swscale.Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Min == (image.Point{}) {
		switch m := img.(type) {
		case *image.Gray:
			return &swscale.Frame{Format: pixfmt.MustLookup("gray"), Width: w, Height: h,
				Planes: []swscale.Plane{{Data: m.Pix, Stride: m.Stride}}}
		case *image.Gray16:
			return &swscale.Frame{Format: pixfmt.MustLookup("gray16be"), Width: w, Height: h,
				Planes: []swscale.Plane{{Data: m.Pix, Stride: m.Stride}}}
		case *image.NRGBA:
			return &swscale.Frame{Format: pixfmt.MustLookup("rgba"), Width: w, Height: h,
				Planes: []swscale.Plane{{Data: m.Pix, Stride: m.Stride}}}
		case *image.YCbCr:
			if name := ycbcrFormat(m.SubsampleRatio); name != "" {
				return &swscale.Frame{Format: pixfmt.MustLookup(name), Width: w, Height: h,
					Planes: []swscale.Plane{
						{Data: m.Y, Stride: m.YStride},
						{Data: m.Cb, Stride: m.CStride},
						{Data: m.Cr, Stride: m.CStride},
					}}
			}
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &swscale.Frame{Format: pixfmt.MustLookup("rgba"), Width: w, Height: h,
		Planes: []swscale.Plane{{Data: dst.Pix, Stride: dst.Stride}}}
}

func ycbcrFormat(r image.YCbCrSubsampleRatio) string {
	switch r {
	case image.YCbCrSubsampleRatio420:
		return "yuvj420p"
	case image.YCbCrSubsampleRatio422:
		return "yuvj422p"
	case image.YCbCrSubsampleRatio444:
		return "yuvj444p"
	}
	return ""
}

// frameImage is the inverse of imageFrame for the formats encoders accept
func frameImage(f *swscale.Frame) (image.Image, error) {
	r := image.Rect(0, 0, f.Width, f.Height)
	p := f.Planes
	switch f.Format.Name {
	case "rgba":
		return &image.NRGBA{Pix: p[0].Data, Stride: p[0].Stride, Rect: r}, nil
	case "gray":
		return &image.Gray{Pix: p[0].Data, Stride: p[0].Stride, Rect: r}, nil
	case "gray16be":
		return &image.Gray16{Pix: p[0].Data, Stride: p[0].Stride, Rect: r}, nil
	case "yuvj420p", "yuvj422p", "yuvj444p":
		ratio := map[string]image.YCbCrSubsampleRatio{
			"yuvj420p": image.YCbCrSubsampleRatio420,
			"yuvj422p": image.YCbCrSubsampleRatio422,
			"yuvj444p": image.YCbCrSubsampleRatio444,
		}[f.Format.Name]
		return &image.YCbCr{Y: p[0].Data, Cb: p[1].Data, Cr: p[2].Data,
			YStride: p[0].Stride, CStride: p[1].Stride, SubsampleRatio: ratio, Rect: r}, nil
	}
	return nil, fmt.Errorf("%s: %w", f.Format, ErrNoEncoding)
}

// encoders maps output extensions to image codecs. Other extensions are
// written as raw planes.
var encoders = map[string]func(io.Writer, image.Image) error{
	".png":  png.Encode,
	".jpg":  func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, &jpeg.Options{Quality: 95}) },
	".jpeg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, &jpeg.Options{Quality: 95}) },
	".bmp":  bmp.Encode,
	".tif":  func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	".tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
}

func encoderFor(path string) func(io.Writer, image.Image) error {
	return encoders[strings.ToLower(filepath.Ext(path))]
}

// saveFrame replaces path atomically with the encoded or raw frame
func saveFrame(path string, f *swscale.Frame) error {
	o, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer o.Cleanup()
	if err := o.Chmod(0o644); err != nil {
		return err
	}

	if enc := encoderFor(path); enc != nil {
		img, err := frameImage(f)
		if err != nil {
			return err
		}
		if err := enc(o, img); err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
	} else {
		for _, p := range f.Planes {
			if _, err := o.Write(p.Data); err != nil {
				return err
			}
		}
	}
	return o.CloseAtomicallyReplace()
}
