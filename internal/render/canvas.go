package render

import (
	"image"
	"image/color"
	"math"

	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/rook-computer/analogclock/internal/style"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// pathAdder is the part of the rasterx path API used to build outlines.
type pathAdder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	Stop(closeLoop bool)
}

// Canvas is a Surface backed by an RGBA pixel buffer. Fills and strokes
// are rasterized with rasterx; the current transform lives in ctm.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher
	ctm     f64.Aff3
	stack   []f64.Aff3
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.SetSize(width, height)
	return c
}

// SetSize reallocates the pixel buffer. Like resizing an HTML canvas it
// also drops the transform and any saved states.
func (c *Canvas) SetSize(width, height int) {
	vp := layout.Viewport{Width: width, Height: height}.Normalize()
	c.img = image.NewRGBA(vp.Rect())
	c.ctm = identity
	c.stack = c.stack[:0]
	if vp.Empty() {
		c.scanner, c.filler, c.dasher = nil, nil, nil
		return
	}
	c.scanner = rasterx.NewScannerGV(vp.Width, vp.Height, c.img, c.img.Bounds())
	c.filler = rasterx.NewFiller(vp.Width, vp.Height, c.scanner)
	c.dasher = rasterx.NewDasher(vp.Width, vp.Height, c.scanner)
}

// Image returns the pixel buffer. It is replaced by SetSize.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear() { clear(c.img.Pix) }

func (c *Canvas) Save() { c.stack = append(c.stack, c.ctm) }

// Restore pops the last saved transform. Without a matching Save it does nothing.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.ctm = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(x, y float64) {
	c.ctm = mul(c.ctm, f64.Aff3{1, 0, x, 0, 1, y})
}

// Rotate turns the local frame clockwise on screen by angle radians.
func (c *Canvas) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	c.ctm = mul(c.ctm, f64.Aff3{cos, -sin, 0, sin, cos, 0})
}

// Transform returns the current local-to-device matrix.
func (c *Canvas) Transform() f64.Aff3 { return c.ctm }

func (c *Canvas) FillCircle(cx, cy, r float64, fill color.Color) {
	if c.filler == nil || fill == nil || !(r > 0) {
		return
	}
	c.filler.Clear()
	c.filler.SetWinding(true)
	c.circle(c.filler, cx, cy, r)
	c.filler.SetColor(fill)
	c.filler.Draw()
	c.filler.Clear()
}

func (c *Canvas) StrokeCircle(cx, cy, r float64, stroke Stroke) {
	if c.dasher == nil || stroke.Color == nil || !(r > 0) || !(stroke.Width > 0) {
		return
	}
	c.setStroke(stroke)
	c.circle(c.dasher, cx, cy, r)
	c.dasher.Draw()
	c.dasher.Clear()
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, stroke Stroke) {
	if c.dasher == nil || stroke.Color == nil || !(stroke.Width > 0) {
		return
	}
	a := c.point(x1, y1)
	b := c.point(x2, y2)
	if a == b {
		// A zero-length segment only shows up as its round cap.
		if stroke.Cap == style.CapRound {
			dx, dy := c.device(x1, y1)
			saved := c.ctm
			c.ctm = identity
			c.FillCircle(dx, dy, stroke.Width/2, stroke.Color)
			c.ctm = saved
		}
		return
	}
	c.setStroke(stroke)
	c.dasher.Start(a)
	c.dasher.Line(b)
	c.dasher.Stop(false)
	c.dasher.Draw()
	c.dasher.Clear()
}

// setStroke configures the dasher. The transform is rigid (translate and
// rotate only), so widths carry over to device space unchanged.
func (c *Canvas) setStroke(stroke Stroke) {
	c.dasher.Clear()
	c.dasher.SetWinding(true)
	c.dasher.SetStroke(
		toFixed(stroke.Width),
		toFixed(4),
		capFunc(stroke.Cap), nil,
		rasterx.RoundGap, rasterx.Round,
		nil, 0)
	c.dasher.SetColor(stroke.Color)
}

// circle adds a closed polygon approximating a circle of radius r.
func (c *Canvas) circle(p pathAdder, cx, cy, r float64) {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	if n < 24 {
		n = 24
	}
	if n > 720 {
		n = 720
	}
	p.Start(c.point(cx+r, cy))
	for i := 1; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		p.Line(c.point(cx+cos*r, cy+sin*r))
	}
	p.Stop(true)
}

func (c *Canvas) device(x, y float64) (float64, float64) {
	m := c.ctm
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

func (c *Canvas) point(x, y float64) fixed.Point26_6 {
	dx, dy := c.device(x, y)
	return fixed.Point26_6{X: toFixed(dx), Y: toFixed(dy)}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func capFunc(c style.LineCap) rasterx.CapFunc {
	switch c {
	case style.CapRound:
		return rasterx.RoundCap
	case style.CapSquare:
		return rasterx.SquareCap
	default:
		return rasterx.ButtCap
	}
}

// mul returns m×n, so n is applied to points before m.
func mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}
