// Package style holds the visual configuration of the clock: partial
// per-element overrides, their documented defaults, and the explicit merge
// that turns one into a fully populated record ready for drawing.
package style

import (
	"fmt"
	"strings"
)

type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return fmt.Sprintf("LineCap(%d)", int(c))
	}
}

// ParseLineCap accepts the canvas cap keywords, case-insensitively.
func ParseLineCap(s string) (LineCap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butt":
		return CapButt, nil
	case "round":
		return CapRound, nil
	case "square":
		return CapSquare, nil
	default:
		return CapButt, fmt.Errorf("unknown line cap %q", s)
	}
}

// Tick counts per mark tier. They are not configurable.
const (
	HourMarkCount   = 12
	MinuteMarkCount = 60
)

// Frame describes the clock face disc.
type Frame struct {
	RadiusFactor float64
	FillColor    string
	StrokeColor  string
	LineWidth    float64
	LineCap      LineCap
}

// Marks describes one ring of tick marks.
type Marks struct {
	Count        int
	RadiusFactor float64
	Offset       float64
	Length       float64
	StrokeColor  string
	LineWidth    float64
	LineCap      LineCap
}

// Hand describes one clock hand. Offset is in pixels from the center,
// LengthFactor is a fraction of the fitted radius.
type Hand struct {
	Offset       float64
	LengthFactor float64
	StrokeColor  string
	LineWidth    float64
	LineCap      LineCap
}

// Resolved is the complete, default-filled configuration for one render.
type Resolved struct {
	Frame       Frame
	HourMarks   Marks
	MinuteMarks Marks
	HourHand    Hand
	MinuteHand  Hand
	SecondHand  Hand
}

// FramePatch is a partial Frame. A nil field means "not supplied".
type FramePatch struct {
	RadiusFactor *float64
	FillColor    *string
	StrokeColor  *string
	LineWidth    *float64
	LineCap      *LineCap
}

// MarksPatch is a partial Marks. Count has no override.
type MarksPatch struct {
	RadiusFactor *float64
	Offset       *float64
	Length       *float64
	StrokeColor  *string
	LineWidth    *float64
	LineCap      *LineCap
}

// HandPatch is a partial Hand.
type HandPatch struct {
	Offset       *float64
	LengthFactor *float64
	StrokeColor  *string
	LineWidth    *float64
	LineCap      *LineCap
}

// Options carries the six optional style groups a caller may supply.
type Options struct {
	Frame       FramePatch
	HourMarks   MarksPatch
	MinuteMarks MarksPatch
	HourHand    HandPatch
	MinuteHand  HandPatch
	SecondHand  HandPatch
}

// Float, String and Cap return pointers for building patches inline.
func Float(v float64) *float64 { return &v }
func String(v string) *string  { return &v }
func Cap(v LineCap) *LineCap   { return &v }
