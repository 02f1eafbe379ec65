package splitview

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

const (
	// DefaultMin is the minimum size of a view created without WithMin.
	DefaultMin = 50
	// DefaultMax stands in for "unbounded" when a view has no WithMax.
	DefaultMax = 1 << 16
	// DefaultHandleSize is the thickness of a handle along the main axis.
	DefaultHandleSize = 1
	// DefaultWarnDelay debounces the free-space warning.
	DefaultWarnDelay = time.Second

	maxCells = 1 << 30
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for free-space warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScheduler sets the frame scheduler that drives host-size polling.
func WithScheduler(s FrameScheduler) Option {
	return func(c *Container) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithWarnDelay sets how long redistribution must stay quiet before a
// free-space warning is logged.
func WithWarnDelay(d time.Duration) Option {
	return func(c *Container) {
		if d >= 0 {
			c.warnDelay = d
		}
	}
}

// WithHandleSize sets the handle thickness used for hit testing.
func WithHandleSize(cells int) Option {
	return func(c *Container) {
		if cells > 0 {
			c.handleSize = cells
		}
	}
}

// WithDirection sets the initial direction.
func WithDirection(d Direction) Option {
	return func(c *Container) {
		if d.Valid() {
			c.direction = d
		}
	}
}

// ViewOption configures a view at creation.
type ViewOption func(*viewOptions)

type viewOptions struct {
	min  float64
	max  float64
	name string
}

// WithMin sets the minimum size in cells.
func WithMin(cells float64) ViewOption {
	return func(o *viewOptions) { o.min = cells }
}

// WithMax sets the maximum size in cells.
func WithMax(cells float64) ViewOption {
	return func(o *viewOptions) { o.max = cells }
}

// WithName labels the view for hosts and logs.
func WithName(name string) ViewOption {
	return func(o *viewOptions) { o.name = name }
}

func normalizeViewOptions(opts []ViewOption) (viewOptions, error) {
	o := viewOptions{min: DefaultMin, max: DefaultMax}
	for _, opt := range opts {
		opt(&o)
	}

	if o.min < 0 || o.min > maxCells || math.IsNaN(o.min) || math.IsInf(o.min, 0) {
		return o, core.ErrValidation(core.CodeInvalidOptions,
			fmt.Sprintf("min must be >= 0 and finite, got %v", o.min))
	}
	if math.IsNaN(o.max) || math.IsInf(o.max, 0) || o.max < o.min {
		return o, core.ErrValidation(core.CodeInvalidOptions,
			fmt.Sprintf("max must be finite and >= min (%v), got %v", o.min, o.max))
	}

	o.min = math.Trunc(o.min)
	o.max = math.Trunc(math.Min(o.max, maxCells))
	return o, nil
}
