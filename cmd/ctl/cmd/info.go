package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jpfielding/swscale.go/pkg/pixfmt"
	"github.com/jpfielding/swscale.go/pkg/swscale"
	"github.com/spf13/cobra"
)

// NewFormatsCmd lists the registered pixel formats
func NewFormatsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "list pixel formats",
		Long:  "list every pixel format with its layout and the frame size at --width x --height",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, _ := cmd.Flags().GetInt("width")
			h, _ := cmd.Flags().GetInt("height")
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPLANES\tDEPTH\tCHROMA\tFLAGS\tFRAME")
			for _, name := range pixfmt.Names() {
				d := pixfmt.MustLookup(name)
				size := uint64(swscale.NewFrame(d, w, h).Size())
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
					d.Name, d.NumPlanes(), d.Depth(), chromaLabel(d), flagLabel(d), humanize.Bytes(size))
			}
			return tw.Flush()
		},
	}
	pf := cmd.PersistentFlags()
	pf.Int("width", 1920, "frame width for the size column")
	pf.Int("height", 1080, "frame height for the size column")
	return cmd
}

func chromaLabel(d *pixfmt.Descriptor) string {
	if d.IsGray() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", 1<<d.Log2ChromaW, 1<<d.Log2ChromaH)
}

func flagLabel(d *pixfmt.Descriptor) string {
	var out []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{d.IsRGB(), "rgb"},
		{d.IsPlanar(), "planar"},
		{d.HasAlpha(), "alpha"},
		{d.IsBE(), "be"},
		{d.IsFloat(), "float"},
		{d.IsFullRange(), "full"},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}
	return strings.Join(out, ",")
}

// NewFilterCmd prints the taps a kernel produces for one resize
func NewFilterCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "print resampling filter taps",
		Long:  "print the fixed point taps for each destination sample of a src to dst resize",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _ := cmd.Flags().GetInt("src")
			dst, _ := cmd.Flags().GetInt("dst")
			name, _ := cmd.Flags().GetString("filter")
			params, _ := cmd.Flags().GetFloat64Slice("param")
			vertical, _ := cmd.Flags().GetBool("vertical")

			kind, err := swscale.ParseFilterKind(name)
			if err != nil {
				return err
			}
			one := 1 << 14
			if vertical {
				one = 1 << 12
			}
			f, err := swscale.NewFilter(src, dst, kind, params, one)
			if err != nil {
				return err
			}
			slog.DebugContext(ctx, "filter", "kind", kind, "src", src, "dst", dst, "size", f.Size)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d -> %d, %d taps, one=%d\n", kind, src, dst, f.Size, f.One)
			for i := 0; i < f.Len(); i++ {
				taps := f.Taps(i)
				vals := make([]string, len(taps))
				for j, c := range taps {
					vals[j] = fmt.Sprint(c)
				}
				fmt.Fprintf(out, "%5d @%5d: %s\n", i, f.Pos[i], strings.Join(vals, " "))
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.Int("src", 8, "source samples")
	pf.Int("dst", 4, "destination samples")
	pf.StringP("filter", "f", swscale.Bicubic.String(), "kernel, one of "+kindList())
	pf.Float64Slice("param", nil, "kernel parameters")
	pf.Bool("vertical", false, "use the vertical coefficient scale")
	return cmd
}

func kindList() string {
	var names []string
	for _, k := range swscale.FilterKinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}
