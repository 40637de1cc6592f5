package render

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/rook-computer/analogclock/internal/style"
)

// Surface is the subset of a canvas-2D context the clock needs.
// Coordinates passed to drawing calls are in the current local frame
// established by Translate and Rotate; Save and Restore push and pop it.
type Surface interface {
	// Size returns the pixel buffer dimensions.
	Size() (width int, height int)
	// Clear resets every pixel to transparent. It ignores the transform.
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)

	FillCircle(cx, cy, r float64, fill color.Color)
	StrokeCircle(cx, cy, r float64, stroke Stroke)
	StrokeLine(x1, y1, x2, y2 float64, stroke Stroke)
}

// Stroke describes how an outline or segment is painted.
type Stroke struct {
	Color color.Color
	Width float64
	Cap   style.LineCap
}

// Sink receives each finished frame. It must not retain frame after
// Present returns.
type Sink interface {
	Start(ctx context.Context) error
	Stop() error
	// Viewport reports the size frames should be drawn at.
	Viewport() layout.Viewport
	Present(frame *image.RGBA, at time.Time) error
}

// NoopSink discards frames.
type NoopSink struct{ Size layout.Viewport }

func (n *NoopSink) Start(ctx context.Context) error                { return nil }
func (n *NoopSink) Stop() error                                    { return nil }
func (n *NoopSink) Viewport() layout.Viewport                      { return n.Size }
func (n *NoopSink) Present(frame *image.RGBA, at time.Time) error { return nil }
