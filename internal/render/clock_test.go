package render

import (
	"fmt"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/rook-computer/analogclock/internal/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

type op struct {
	name   string
	args   []float64
	stroke Stroke
	fill   color.Color
}

// recorder is a Surface that logs every call.
type recorder struct {
	width, height int
	ops           []op
	depth         int
}

func (r *recorder) Size() (int, int) { return r.width, r.height }
func (r *recorder) Clear()           { r.ops = append(r.ops, op{name: "clear"}) }
func (r *recorder) Save()            { r.depth++; r.ops = append(r.ops, op{name: "save"}) }
func (r *recorder) Restore()         { r.depth--; r.ops = append(r.ops, op{name: "restore"}) }
func (r *recorder) Translate(x, y float64) {
	r.ops = append(r.ops, op{name: "translate", args: []float64{x, y}})
}
func (r *recorder) Rotate(a float64) { r.ops = append(r.ops, op{name: "rotate", args: []float64{a}}) }
func (r *recorder) FillCircle(cx, cy, rad float64, fill color.Color) {
	r.ops = append(r.ops, op{name: "fillCircle", args: []float64{cx, cy, rad}, fill: fill})
}
func (r *recorder) StrokeCircle(cx, cy, rad float64, s Stroke) {
	r.ops = append(r.ops, op{name: "strokeCircle", args: []float64{cx, cy, rad}, stroke: s})
}
func (r *recorder) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	r.ops = append(r.ops, op{name: "line", args: []float64{x1, y1, x2, y2}, stroke: s})
}

func (r *recorder) named(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.name == name {
			out = append(out, o)
		}
	}
	return out
}

func at(h, m, s, ms int) time.Time {
	return time.Date(2024, 5, 17, h, m, s, ms*int(time.Millisecond), time.UTC)
}

func TestHandAngles_Midnight(t *testing.T) {
	a := HandAngles(at(0, 0, 0, 0))
	assert.Equal(t, Angles{}, a)

	// noon folds onto midnight
	assert.Equal(t, Angles{}, HandAngles(at(12, 0, 0, 0)))
}

func TestHandAngles_KnownTimes(t *testing.T) {
	assert.InDelta(t, math.Pi/2, HandAngles(at(3, 0, 0, 0)).Hour, eps)
	assert.InDelta(t, math.Pi/2, HandAngles(at(15, 0, 0, 0)).Hour, eps)
	assert.InDelta(t, 0.5*math.Pi/6, HandAngles(at(0, 30, 0, 0)).Hour, eps)
	assert.InDelta(t, math.Pi, HandAngles(at(0, 30, 0, 0)).Minute, eps)
	assert.InDelta(t, 15.5*math.Pi/30, HandAngles(at(0, 0, 15, 500)).Second, eps)
	assert.InDelta(t, (10+30.0/60)*math.Pi/30, HandAngles(at(0, 10, 30, 0)).Minute, eps)
}

func TestHandAngles_ContinuousWithinHour(t *testing.T) {
	for _, hour := range []int{0, 5, 11, 23} {
		prev := HandAngles(at(hour, 0, 0, 0))
		prevMinute := 0
		for m := 0; m < 60; m++ {
			for s := 0; s < 60; s += 7 {
				for _, ms := range []int{0, 250, 999} {
					if m == 0 && s == 0 && ms == 0 {
						continue
					}
					label := fmt.Sprintf("%02d:%02d:%02d.%03d", hour, m, s, ms)
					cur := HandAngles(at(hour, m, s, ms))
					require.GreaterOrEqual(t, cur.Hour, prev.Hour, label)
					require.GreaterOrEqual(t, cur.Minute, prev.Minute, label)
					if m == prevMinute {
						require.Greater(t, cur.Second, prev.Second, label)
					}
					prev, prevMinute = cur, m
				}
			}
		}
		// The top of the next hour lands exactly on the next hour angle.
		next := HandAngles(at((hour+1)%24, 0, 0, 0))
		want := float64((hour+1)%12) * math.Pi / 6
		assert.InDelta(t, want, next.Hour, eps)
	}
}

func TestHandAngles_HourStrictlyIncreasesWithMinute(t *testing.T) {
	prev := HandAngles(at(7, 0, 0, 0)).Hour
	for m := 1; m < 60; m++ {
		cur := HandAngles(at(7, m, 0, 0)).Hour
		assert.Greater(t, cur, prev)
		prev = cur
	}
}

func TestDrawClock_OrderAndTransform(t *testing.T) {
	rec := &recorder{width: 400, height: 300}

	DrawClock(rec, style.Defaults(), at(0, 0, 0, 0))

	require.GreaterOrEqual(t, len(rec.ops), 5)
	assert.Equal(t, "clear", rec.ops[0].name)
	assert.Equal(t, "save", rec.ops[1].name)
	assert.Equal(t, op{name: "translate", args: []float64{200, 150}}, rec.ops[2])
	assert.Equal(t, "rotate", rec.ops[3].name)
	assert.InDelta(t, -math.Pi/2, rec.ops[3].args[0], eps)
	assert.Equal(t, "fillCircle", rec.ops[4].name)
	assert.Equal(t, "strokeCircle", rec.ops[5].name)
	assert.Equal(t, "restore", rec.ops[len(rec.ops)-1].name)
	assert.Equal(t, 0, rec.depth)

	lines := rec.named("line")
	require.Len(t, lines, 12+60+3)
}

func TestDrawClock_FaceGeometry(t *testing.T) {
	rec := &recorder{width: 300, height: 300}
	cfg := style.Resolve(style.Options{Frame: style.FramePatch{RadiusFactor: style.Float(0.8), LineWidth: style.Float(10)}})

	DrawClock(rec, cfg, at(1, 2, 3, 4))

	fill := rec.named("fillCircle")[0]
	stroke := rec.named("strokeCircle")[0]
	// fitted radius 150, 150*0.8 - 10/2
	assert.InDelta(t, 115, fill.args[2], eps)
	assert.InDelta(t, 115, stroke.args[2], eps)
	assert.Equal(t, 10.0, stroke.stroke.Width)
	assert.Equal(t, style.CapRound, stroke.stroke.Cap)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, fill.fill)
}

func TestDrawClock_MarkGeometry(t *testing.T) {
	rec := &recorder{width: 200, height: 200}
	cfg := style.Resolve(style.Options{
		HourMarks: style.MarksPatch{Offset: style.Float(4), Length: style.Float(20), LineWidth: style.Float(2)},
	})

	DrawClock(rec, cfg, at(0, 0, 0, 0))

	lines := rec.named("line")
	hour := lines[:12]
	minute := lines[12:72]
	// R=100, outer = 100-4-2 = 94, inner = 74
	assert.InDelta(t, 74, hour[0].args[0], eps)
	assert.InDelta(t, 0, hour[0].args[1], eps)
	assert.InDelta(t, 94, hour[0].args[2], eps)
	assert.InDelta(t, 0, hour[0].args[3], eps)
	// 3 o'clock tick sits at angle pi/2 in the local frame
	assert.InDelta(t, 0, hour[3].args[2], 1e-9)
	assert.InDelta(t, 94, hour[3].args[3], 1e-9)

	// minute defaults: outer = 100-0-1 = 99, inner = 89
	assert.InDelta(t, 89, minute[0].args[0], eps)
	assert.InDelta(t, 99, minute[0].args[2], eps)
	for _, l := range minute {
		assert.Equal(t, 1.0, l.stroke.Width)
	}
}

func TestDrawClock_HandsDrawnLastAndInOrder(t *testing.T) {
	rec := &recorder{width: 200, height: 100}
	cfg := style.Resolve(style.Options{MinuteHand: style.HandPatch{Offset: style.Float(-5)}})

	DrawClock(rec, cfg, at(3, 0, 0, 0))

	lines := rec.named("line")
	hands := lines[len(lines)-3:]
	// fitted radius is 50
	hourHand, minuteHand, secondHand := hands[0], hands[1], hands[2]
	assert.Equal(t, 6.0, hourHand.stroke.Width)
	assert.Equal(t, 4.0, minuteHand.stroke.Width)
	assert.Equal(t, 2.0, secondHand.stroke.Width)

	// hour hand at pi/2, length 0.55*50
	assert.InDelta(t, 0, hourHand.args[2], 1e-9)
	assert.InDelta(t, 27.5, hourHand.args[3], 1e-9)
	// minute hand starts at (offset, offset), points at 12
	assert.Equal(t, []float64{-5, -5}, minuteHand.args[:2])
	assert.InDelta(t, 42.5, minuteHand.args[2], 1e-9)
	assert.Equal(t, color.NRGBA{R: 0xFF, A: 0xFF}, secondHand.stroke.Color)
	assert.Equal(t, "restore", rec.ops[len(rec.ops)-1].name)
}

func TestDrawClock_ZeroAreaIsDegenerate(t *testing.T) {
	rec := &recorder{}

	assert.NotPanics(t, func() { DrawClock(rec, style.Defaults(), time.Now()) })

	lines := rec.named("line")
	require.Len(t, lines, 75)
	hands := lines[72:]
	for _, h := range hands {
		assert.Equal(t, []float64{0, 0, 0, 0}, h.args)
	}
}

func TestDrawClock_BadColorFallsBackToBlack(t *testing.T) {
	rec := &recorder{width: 10, height: 10}
	cfg := style.Resolve(style.Options{SecondHand: style.HandPatch{StrokeColor: style.String("no-such-color")}})

	DrawClock(rec, cfg, time.Now())

	lines := rec.named("line")
	assert.Equal(t, fallbackColor, lines[len(lines)-1].stroke.Color)
}
