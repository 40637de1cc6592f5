package style

// Only a nil field falls back to its default. An explicit zero is kept, so
// a caller can ask for a zero-length mark or a zero radius factor.

var (
	defaultFrame = Frame{
		RadiusFactor: 1,
		FillColor:    "#fff",
		StrokeColor:  "#000",
		LineWidth:    5,
		LineCap:      CapRound,
	}
	defaultHourMarks = Marks{
		Count:        HourMarkCount,
		RadiusFactor: 1,
		Offset:       0,
		Length:       15,
		StrokeColor:  "#000",
		LineWidth:    3,
		LineCap:      CapRound,
	}
	defaultMinuteMarks = Marks{
		Count:        MinuteMarkCount,
		RadiusFactor: 1,
		Offset:       0,
		Length:       10,
		StrokeColor:  "#000",
		LineWidth:    1,
		LineCap:      CapRound,
	}
	defaultHourHand = Hand{
		Offset:       0,
		LengthFactor: 0.55,
		StrokeColor:  "#000",
		LineWidth:    6,
		LineCap:      CapRound,
	}
	defaultMinuteHand = Hand{
		Offset:       0,
		LengthFactor: 0.85,
		StrokeColor:  "#222",
		LineWidth:    4,
		LineCap:      CapRound,
	}
	defaultSecondHand = Hand{
		Offset:       0,
		LengthFactor: 0.9,
		StrokeColor:  "#f00",
		LineWidth:    2,
		LineCap:      CapRound,
	}
)

// Defaults returns the configuration used when nothing is supplied.
func Defaults() Resolved {
	return Resolve(Options{})
}

// Resolve merges opts over the documented defaults and returns a new record.
// opts is never modified. Values are not range checked.
func Resolve(opts Options) Resolved {
	return Resolved{
		Frame:       resolveFrame(opts.Frame, defaultFrame),
		HourMarks:   resolveMarks(opts.HourMarks, defaultHourMarks),
		MinuteMarks: resolveMarks(opts.MinuteMarks, defaultMinuteMarks),
		HourHand:    resolveHand(opts.HourHand, defaultHourHand),
		MinuteHand:  resolveHand(opts.MinuteHand, defaultMinuteHand),
		SecondHand:  resolveHand(opts.SecondHand, defaultSecondHand),
	}
}

func resolveFrame(p FramePatch, def Frame) Frame {
	out := def
	if p.RadiusFactor != nil {
		out.RadiusFactor = *p.RadiusFactor
	}
	if p.FillColor != nil {
		out.FillColor = *p.FillColor
	}
	if p.StrokeColor != nil {
		out.StrokeColor = *p.StrokeColor
	}
	if p.LineWidth != nil {
		out.LineWidth = *p.LineWidth
	}
	if p.LineCap != nil {
		out.LineCap = *p.LineCap
	}
	out.FillColor = NormalizeColor(out.FillColor)
	out.StrokeColor = NormalizeColor(out.StrokeColor)
	return out
}

func resolveMarks(p MarksPatch, def Marks) Marks {
	out := def
	if p.RadiusFactor != nil {
		out.RadiusFactor = *p.RadiusFactor
	}
	if p.Offset != nil {
		out.Offset = *p.Offset
	}
	if p.Length != nil {
		out.Length = *p.Length
	}
	if p.StrokeColor != nil {
		out.StrokeColor = *p.StrokeColor
	}
	if p.LineWidth != nil {
		out.LineWidth = *p.LineWidth
	}
	if p.LineCap != nil {
		out.LineCap = *p.LineCap
	}
	out.StrokeColor = NormalizeColor(out.StrokeColor)
	return out
}

func resolveHand(p HandPatch, def Hand) Hand {
	out := def
	if p.Offset != nil {
		out.Offset = *p.Offset
	}
	if p.LengthFactor != nil {
		out.LengthFactor = *p.LengthFactor
	}
	if p.StrokeColor != nil {
		out.StrokeColor = *p.StrokeColor
	}
	if p.LineWidth != nil {
		out.LineWidth = *p.LineWidth
	}
	if p.LineCap != nil {
		out.LineCap = *p.LineCap
	}
	out.StrokeColor = NormalizeColor(out.StrokeColor)
	return out
}

// Patch returns Options that set every field of r. Resolving it yields r.
func (r Resolved) Patch() Options {
	return Options{
		Frame:       r.Frame.patch(),
		HourMarks:   r.HourMarks.patch(),
		MinuteMarks: r.MinuteMarks.patch(),
		HourHand:    r.HourHand.patch(),
		MinuteHand:  r.MinuteHand.patch(),
		SecondHand:  r.SecondHand.patch(),
	}
}

func (f Frame) patch() FramePatch {
	return FramePatch{
		RadiusFactor: Float(f.RadiusFactor),
		FillColor:    String(f.FillColor),
		StrokeColor:  String(f.StrokeColor),
		LineWidth:    Float(f.LineWidth),
		LineCap:      Cap(f.LineCap),
	}
}

func (m Marks) patch() MarksPatch {
	return MarksPatch{
		RadiusFactor: Float(m.RadiusFactor),
		Offset:       Float(m.Offset),
		Length:       Float(m.Length),
		StrokeColor:  String(m.StrokeColor),
		LineWidth:    Float(m.LineWidth),
		LineCap:      Cap(m.LineCap),
	}
}

func (h Hand) patch() HandPatch {
	return HandPatch{
		Offset:       Float(h.Offset),
		LengthFactor: Float(h.LengthFactor),
		StrokeColor:  String(h.StrokeColor),
		LineWidth:    Float(h.LineWidth),
		LineCap:      Cap(h.LineCap),
	}
}
