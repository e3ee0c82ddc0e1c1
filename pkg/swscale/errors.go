package swscale

import (
	"errors"
	"fmt"

	"github.com/jpfielding/swscale.go/pkg/pixfmt"
)

// configuration errors, only ever returned by New and NewFilter
var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrUnknownFormat     = pixfmt.ErrUnknownFormat
	ErrUnknownFilter     = errors.New("unknown filter kind")
	ErrInvalidParam      = errors.New("invalid filter parameter")
)

// protocol violations detected by Scale before any row is written
var (
	ErrSliceBounds   = errors.New("slice outside source image")
	ErrSliceMiddle   = errors.New("first slice must start at the top or bottom edge")
	ErrSliceOrder    = errors.New("slice is not contiguous with the previous one")
	ErrEmptySlice    = errors.New("empty slice while streaming")
	ErrMissingPlane  = errors.New("missing plane")
	ErrPlaneTooSmall = errors.New("plane buffer too small")
	ErrFrameMismatch = errors.New("frame does not match the context")
	ErrNotConfigured = errors.New("context not configured")
)

// ErrRingUnderrun means the vertical stage asked for rows the ring no longer
// (or never) held. It indicates a bug, not bad input.
var ErrRingUnderrun = errors.New("line ring underrun")

// ConfigError is returned by New for every setup failure. The context is
// unusable; build a new one with a corrected Config.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("swscale: config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
