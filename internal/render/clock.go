package render

import (
	"image/color"
	"math"
	"time"

	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/rook-computer/analogclock/internal/style"
)

// Angles are hand directions in radians, clockwise from 12 o'clock.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandAngles computes continuous hand angles for t in t's own location.
// The hour hand advances with the minute, the minute hand with the second
// and the second hand with the millisecond, so none of them jump.
func HandAngles(t time.Time) Angles {
	hour := float64(t.Hour() % 12)
	minute := float64(t.Minute())
	second := float64(t.Second())
	millisecond := float64(t.Nanosecond() / int(time.Millisecond))

	return Angles{
		Hour:   (hour + minute/60) * math.Pi / 6,
		Minute: (minute + second/60) * math.Pi / 30,
		Second: (second + millisecond/1000) * math.Pi / 30,
	}
}

var fallbackColor color.Color = color.NRGBA{A: 0xFF}

// paint resolves a style color, degrading to opaque black.
func paint(s string) color.Color {
	c, err := style.ParseColor(s)
	if err != nil {
		return fallbackColor
	}
	return c
}

// DrawClock draws one complete frame of cfg at time now onto s. The
// surface transform is left as it was found.
func DrawClock(s Surface, cfg style.Resolved, now time.Time) {
	width, height := s.Size()
	radius := layout.FittedRadius(width, height)

	s.Clear()
	s.Save()
	cx, cy := layout.Center(width, height)
	s.Translate(cx, cy)
	// Angle 0 now points at 12 o'clock instead of 3 o'clock.
	s.Rotate(-math.Pi / 2)

	drawFrame(s, cfg.Frame, radius)
	drawMarks(s, cfg.HourMarks, radius)
	drawMarks(s, cfg.MinuteMarks, radius)

	angles := HandAngles(now)
	drawHand(s, cfg.HourHand, angles.Hour, radius)
	drawHand(s, cfg.MinuteHand, angles.Minute, radius)
	drawHand(s, cfg.SecondHand, angles.Second, radius)

	s.Restore()
}

func drawFrame(s Surface, f style.Frame, radius float64) {
	r := radius*f.RadiusFactor - f.LineWidth/2
	s.FillCircle(0, 0, r, paint(f.FillColor))
	s.StrokeCircle(0, 0, r, Stroke{Color: paint(f.StrokeColor), Width: f.LineWidth, Cap: f.LineCap})
}

func drawMarks(s Surface, m style.Marks, radius float64) {
	if m.Count <= 0 {
		return
	}
	stroke := Stroke{Color: paint(m.StrokeColor), Width: m.LineWidth, Cap: m.LineCap}
	outer := radius*m.RadiusFactor - m.Offset - m.LineWidth
	inner := outer - m.Length
	for i := 0; i < m.Count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(m.Count)
		sin, cos := math.Sincos(angle)
		s.StrokeLine(cos*inner, sin*inner, cos*outer, sin*outer, stroke)
	}
}

// drawHand strokes from (offset, offset) to the hand tip.
func drawHand(s Surface, h style.Hand, angle, radius float64) {
	length := radius * h.LengthFactor
	sin, cos := math.Sincos(angle)
	s.StrokeLine(h.Offset, h.Offset, cos*length, sin*length,
		Stroke{Color: paint(h.StrokeColor), Width: h.LineWidth, Cap: h.LineCap})
}
