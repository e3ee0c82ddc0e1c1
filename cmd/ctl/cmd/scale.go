package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jpfielding/swscale.go/pkg/logging"
	"github.com/jpfielding/swscale.go/pkg/pixfmt"
	"github.com/jpfielding/swscale.go/pkg/swscale"
	"github.com/jpfielding/swscale.go/pkg/util"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// scaleOpts are the flags shared by every file of one scale run
type scaleOpts struct {
	raw       rawInput
	width     int
	height    int
	dstFormat string
	filter    swscale.FilterKind
	params    []float64
	dither    swscale.DitherMode
	sliceH    int
	bottomUp  bool
	outDir    string // used with ext when a file has no explicit output
	ext       string
}

// scaleResult is what one conversion reports back
type scaleResult struct {
	In, Out  string
	SrcBytes int
	DstBytes int
	Rows     int
	MD5      string
}

// NewScaleCmd converts one or more images
func NewScaleCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale [flags] input...",
		Short: "rescale and convert images",
		Long: "rescale and convert images, feeding the source in slices of --slice-height rows. " +
			"Encoded inputs (png, jpeg, gif, bmp, tiff) are decoded; raw inputs need --src-format and its size. " +
			"Outputs ending in an image extension are encoded, anything else is written as raw planes.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts scaleOpts
			var err error
			fl := cmd.Flags()
			opts.raw.format, _ = fl.GetString("src-format")
			opts.raw.w, _ = fl.GetInt("src-width")
			opts.raw.h, _ = fl.GetInt("src-height")
			opts.width, _ = fl.GetInt("width")
			opts.height, _ = fl.GetInt("height")
			opts.dstFormat, _ = fl.GetString("dst-format")
			opts.params, _ = fl.GetFloat64Slice("param")
			opts.sliceH, _ = fl.GetInt("slice-height")
			opts.bottomUp, _ = fl.GetBool("bottom-up")
			filter, _ := fl.GetString("filter")
			if opts.filter, err = swscale.ParseFilterKind(filter); err != nil {
				return err
			}
			dither, _ := fl.GetString("dither")
			if opts.dither, err = swscale.ParseDitherMode(dither); err != nil {
				return err
			}
			out, _ := fl.GetString("out")
			opts.outDir, _ = fl.GetString("out-dir")
			opts.ext, _ = fl.GetString("ext")
			jobs, _ := fl.GetInt("jobs")

			if out != "" && len(args) > 1 {
				return fmt.Errorf("--out takes a single input, use --out-dir for %d inputs", len(args))
			}

			results := make([]scaleResult, len(args))
			eg, gctx := errgroup.WithContext(ctx)
			eg.SetLimit(max(jobs, 1))
			for i, in := range args {
				i, in := i, in
				eg.Go(func() error {
					jctx := logging.AppendCtx(gctx, slog.String("input", in))
					res, err := scaleFile(jctx, in, out, opts)
					if err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}
					results[i] = res
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(w, "%s -> %s %s -> %s %s\n",
					r.In, r.Out, humanize.Bytes(uint64(r.SrcBytes)), humanize.Bytes(uint64(r.DstBytes)), r.MD5)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.String("src-format", "", "pixel format of raw input, empty to decode an image")
	pf.Int("src-width", 0, "width of raw input")
	pf.Int("src-height", 0, "height of raw input")
	pf.IntP("width", "W", 0, "output width, 0 keeps the aspect ratio (or the source width)")
	pf.IntP("height", "H", 0, "output height, 0 keeps the aspect ratio (or the source height)")
	pf.String("dst-format", "", "output pixel format, defaults to rgba for image outputs and the source format otherwise")
	pf.StringP("filter", "f", swscale.Bicubic.String(), "kernel, one of "+kindList())
	pf.Float64Slice("param", nil, "kernel parameters")
	pf.String("dither", swscale.DitherAuto.String(), "dither mode (auto|none|ordered)")
	pf.Int("slice-height", 16, "source rows per slice, 0 for the whole image at once")
	pf.Bool("bottom-up", false, "feed slices from the bottom of the image up")
	pf.StringP("out", "o", "", "output path for a single input")
	pf.String("out-dir", ".", "output directory for derived names")
	pf.String("ext", "png", "output extension for derived names")
	pf.IntP("jobs", "j", runtime.NumCPU(), "files converted in parallel")
	return cmd
}

// outputPath derives <dir>/<stem>_<w>x<h>.<ext>
func outputPath(in, dir, ext string, w, h int) string {
	stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(dir, fmt.Sprintf("%s_%dx%d.%s", stem, w, h, strings.TrimPrefix(ext, ".")))
}

// outputSize fills in a missing dimension from the source aspect ratio
func outputSize(srcW, srcH, w, h int) (int, int) {
	switch {
	case w <= 0 && h <= 0:
		return srcW, srcH
	case w <= 0:
		return max(1, (srcW*h+srcH/2)/srcH), h
	case h <= 0:
		return w, max(1, (srcH*w+srcW/2)/srcW)
	}
	return w, h
}

func scaleFile(ctx context.Context, in, out string, opts scaleOpts) (scaleResult, error) {
	src, err := loadFrame(in, opts.raw)
	if err != nil {
		return scaleResult{}, err
	}
	w, h := outputSize(src.Width, src.Height, opts.width, opts.height)
	if out == "" {
		out = outputPath(in, opts.outDir, opts.ext, w, h)
	}
	dstFormat := opts.dstFormat
	if dstFormat == "" {
		dstFormat = src.Format.Name
		if encoderFor(out) != nil {
			dstFormat = "rgba"
		}
	}
	c, err := swscale.New(ctx, swscale.Config{
		SrcW: src.Width, SrcH: src.Height, SrcFormat: src.Format.Name,
		DstW: w, DstH: h, DstFormat: dstFormat,
		Filter: opts.filter, Params: opts.params, Dither: opts.dither,
	})
	if err != nil {
		return scaleResult{}, err
	}
	dst := swscale.NewFrame(pixfmt.MustLookup(dstFormat), w, h)
	rows, err := feed(ctx, c, src, dst, opts.sliceH, opts.bottomUp)
	if err != nil {
		return scaleResult{}, err
	}
	if rows != h {
		return scaleResult{}, fmt.Errorf("wrote %d of %d rows", rows, h)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return scaleResult{}, err
	}
	if err := saveFrame(out, dst); err != nil {
		return scaleResult{}, err
	}

	chunks := make([][]byte, len(dst.Planes))
	for i, p := range dst.Planes {
		chunks[i] = p.Data
	}
	res := scaleResult{In: in, Out: out, SrcBytes: src.Size(), DstBytes: dst.Size(), Rows: rows, MD5: util.Md5Hex(chunks...)}
	slog.InfoContext(ctx, "scaled",
		"context", c.ID(),
		"src", fmt.Sprintf("%dx%d %s", src.Width, src.Height, src.Format),
		"dst", fmt.Sprintf("%dx%d %s", w, h, dst.Format),
		"filter", opts.filter, "out", out, "md5", res.MD5)
	return res, nil
}

// feed hands the source to c in slices of sliceH rows, top down or bottom
// up, and returns the destination rows written
func feed(ctx context.Context, c *swscale.Context, src, dst *swscale.Frame, sliceH int, bottomUp bool) (int, error) {
	if sliceH <= 0 || sliceH > src.Height {
		sliceH = src.Height
	}
	total := 0
	for done := 0; done < src.Height; done += sliceH {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		h := min(sliceH, src.Height-done)
		y := done
		if bottomUp {
			y = src.Height - done - h
		}
		n, err := c.Scale(src.Slice(y, h), y, h, dst.Planes)
		if err != nil {
			return total, err
		}
		slog.DebugContext(ctx, "slice", "y", y, "h", h, "rows", n)
		total += n
	}
	return total, nil
}
