package swscale

import (
	"fmt"
	"strings"
)

// DitherMode controls rounding in the vertical stage
type DitherMode int

const (
	// DitherAuto dithers when the source carries more bits than the destination
	DitherAuto DitherMode = iota
	DitherNone
	DitherOrdered
)

func (m DitherMode) String() string {
	switch m {
	case DitherAuto:
		return "auto"
	case DitherNone:
		return "none"
	case DitherOrdered:
		return "ordered"
	}
	return "unknown"
}

// ParseDitherMode maps a name printed by String back to its mode
func ParseDitherMode(s string) (DitherMode, error) {
	for _, m := range []DitherMode{DitherAuto, DitherNone, DitherOrdered} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("swscale: dither %q: %w", s, ErrInvalidParam)
}

// dither8x8 is the ordered dither matrix, in 1/128 of the output step
var dither8x8 = [8][8]uint8{
	{36, 68, 60, 92, 34, 66, 58, 90},
	{100, 4, 124, 28, 98, 2, 122, 26},
	{52, 84, 44, 76, 50, 82, 42, 74},
	{116, 20, 108, 12, 114, 18, 106, 10},
	{32, 64, 56, 88, 38, 70, 62, 94},
	{96, 0, 120, 24, 102, 6, 126, 30},
	{48, 80, 40, 72, 54, 86, 46, 78},
	{112, 16, 104, 8, 118, 22, 110, 14},
}

// vScaler combines intermediate rows into one destination row of depth bits
type vScaler struct {
	shift  uint
	hi     int64
	dither bool
}

func newVScaler(ib, depth int, dither bool) *vScaler {
	shift := uint(ib + 12 - depth)
	return &vScaler{
		shift:  shift,
		hi:     int64(1)<<depth - 1,
		dither: dither && depth < ib,
	}
}

// scale writes len(dst) samples. row selects the dither row (the natural
// destination row), offset its column phase.
func (v *vScaler) scale(dst []uint16, rows [][]int32, taps []int32, row, offset int) {
	var d *[8]uint8
	if v.dither {
		d = &dither8x8[row&7]
	}
	flat := int64(1) << (v.shift - 1)
	if len(rows) == 1 {
		src, c := rows[0], int64(taps[0])
		for x := range dst {
			acc := flat
			if d != nil {
				acc = int64(d[(x+offset)&7]) << (v.shift - 7)
			}
			dst[x] = v.clip((acc + c*int64(src[x])) >> v.shift)
		}
		return
	}
	for x := range dst {
		acc := flat
		if d != nil {
			acc = int64(d[(x+offset)&7]) << (v.shift - 7)
		}
		for j, r := range rows {
			acc += int64(taps[j]) * int64(r[x])
		}
		dst[x] = v.clip(acc >> v.shift)
	}
}

func (v *vScaler) clip(acc int64) uint16 {
	switch {
	case acc < 0:
		return 0
	case acc > v.hi:
		return uint16(v.hi)
	}
	return uint16(acc)
}
