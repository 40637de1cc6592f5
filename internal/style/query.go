package style

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query keys are "<group>.<field>" with groups f (frame), h (hour marks),
// m (minute marks), hh, mh, sh (hour, minute, second hand) and fields
// r (radius), o (offset), l (length), f (fill), s (stroke), w (width), c (cap).

type floatKey struct {
	key string
	dst func(*Options) **float64
}

type stringKey struct {
	key string
	dst func(*Options) **string
}

type capKey struct {
	key string
	dst func(*Options) **LineCap
}

var floatKeys = []floatKey{
	{"f.r", func(o *Options) **float64 { return &o.Frame.RadiusFactor }},
	{"f.w", func(o *Options) **float64 { return &o.Frame.LineWidth }},
	{"h.r", func(o *Options) **float64 { return &o.HourMarks.RadiusFactor }},
	{"h.o", func(o *Options) **float64 { return &o.HourMarks.Offset }},
	{"h.l", func(o *Options) **float64 { return &o.HourMarks.Length }},
	{"h.w", func(o *Options) **float64 { return &o.HourMarks.LineWidth }},
	{"m.r", func(o *Options) **float64 { return &o.MinuteMarks.RadiusFactor }},
	{"m.o", func(o *Options) **float64 { return &o.MinuteMarks.Offset }},
	{"m.l", func(o *Options) **float64 { return &o.MinuteMarks.Length }},
	{"m.w", func(o *Options) **float64 { return &o.MinuteMarks.LineWidth }},
	{"hh.o", func(o *Options) **float64 { return &o.HourHand.Offset }},
	{"hh.l", func(o *Options) **float64 { return &o.HourHand.LengthFactor }},
	{"hh.w", func(o *Options) **float64 { return &o.HourHand.LineWidth }},
	{"mh.o", func(o *Options) **float64 { return &o.MinuteHand.Offset }},
	{"mh.l", func(o *Options) **float64 { return &o.MinuteHand.LengthFactor }},
	{"mh.w", func(o *Options) **float64 { return &o.MinuteHand.LineWidth }},
	{"sh.o", func(o *Options) **float64 { return &o.SecondHand.Offset }},
	{"sh.l", func(o *Options) **float64 { return &o.SecondHand.LengthFactor }},
	{"sh.w", func(o *Options) **float64 { return &o.SecondHand.LineWidth }},
}

var stringKeys = []stringKey{
	{"f.f", func(o *Options) **string { return &o.Frame.FillColor }},
	{"f.s", func(o *Options) **string { return &o.Frame.StrokeColor }},
	{"h.s", func(o *Options) **string { return &o.HourMarks.StrokeColor }},
	{"m.s", func(o *Options) **string { return &o.MinuteMarks.StrokeColor }},
	{"hh.s", func(o *Options) **string { return &o.HourHand.StrokeColor }},
	{"mh.s", func(o *Options) **string { return &o.MinuteHand.StrokeColor }},
	{"sh.s", func(o *Options) **string { return &o.SecondHand.StrokeColor }},
}

var capKeys = []capKey{
	{"f.c", func(o *Options) **LineCap { return &o.Frame.LineCap }},
	{"h.c", func(o *Options) **LineCap { return &o.HourMarks.LineCap }},
	{"m.c", func(o *Options) **LineCap { return &o.MinuteMarks.LineCap }},
	{"hh.c", func(o *Options) **LineCap { return &o.HourHand.LineCap }},
	{"mh.c", func(o *Options) **LineCap { return &o.MinuteHand.LineCap }},
	{"sh.c", func(o *Options) **LineCap { return &o.SecondHand.LineCap }},
}

// ParseQuery decodes style options from URL query values. Missing or empty
// keys stay absent. A malformed value leaves its field absent and is
// reported in the returned error; the Options are usable either way.
func ParseQuery(q url.Values) (Options, error) {
	var opts Options
	var errs []error
	for _, k := range floatKeys {
		raw := strings.TrimSpace(q.Get(k.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s: invalid number %q", k.key, raw))
			continue
		}
		*k.dst(&opts) = Float(v)
	}
	for _, k := range stringKeys {
		raw := strings.TrimSpace(q.Get(k.key))
		if raw == "" {
			continue
		}
		*k.dst(&opts) = String(NormalizeColor(raw))
	}
	for _, k := range capKeys {
		raw := strings.TrimSpace(q.Get(k.key))
		if raw == "" {
			continue
		}
		c, err := ParseLineCap(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k.key, err))
			continue
		}
		*k.dst(&opts) = Cap(c)
	}
	return opts, errors.Join(errs...)
}

// ParseQueryString is ParseQuery for a raw query string such as
// "f.r=0.9&sh.s=00f". A leading '?' is ignored.
func ParseQueryString(raw string) (Options, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	opts, qerr := ParseQuery(q)
	if err != nil {
		return opts, errors.Join(fmt.Errorf("parse query: %w", err), qerr)
	}
	return opts, qerr
}

// Query encodes the supplied fields of o. Hex colors are written without
// their '#' so the result can be pasted into a URL.
func (o Options) Query() url.Values {
	q := url.Values{}
	for _, k := range floatKeys {
		if v := *k.dst(&o); v != nil {
			q.Set(k.key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	for _, k := range stringKeys {
		if v := *k.dst(&o); v != nil {
			s := *v
			if strings.HasPrefix(s, "#") && bareHex.MatchString(s[1:]) {
				s = s[1:]
			}
			q.Set(k.key, s)
		}
	}
	for _, k := range capKeys {
		if v := *k.dst(&o); v != nil {
			q.Set(k.key, v.String())
		}
	}
	return q
}
