package style

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var bareHex = regexp.MustCompile(`^([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// NormalizeColor prefixes a bare 3- or 6-digit hex token with '#'.
// Every other string, including an already prefixed one, is returned as is.
func NormalizeColor(s string) string {
	if bareHex.MatchString(s) {
		return "#" + s
	}
	return s
}

// ParseColor converts a CSS-style color string into a color.Color.
// It understands #rgb, #rgba, #rrggbb, #rrggbbaa, rgb()/rgba(), the CSS
// named colors and "transparent". Bare hex tokens are normalized first.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(NormalizeColor(strings.TrimSpace(s)))
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}
	if s[0] == '#' {
		return parseHex(s[1:])
	}
	low := strings.ToLower(s)
	if low == "transparent" {
		return color.NRGBA{}, nil
	}
	if strings.HasPrefix(low, "rgb") {
		return parseRGBFunc(low)
	}
	if c, ok := colornames.Map[low]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseHex(x string) (color.Color, error) {
	digits := make([]uint8, len(x))
	for i := 0; i < len(x); i++ {
		v, ok := hexDigit(x[i])
		if !ok {
			return nil, fmt.Errorf("invalid hex color #%s", x)
		}
		digits[i] = v
	}
	c := color.NRGBA{A: 0xFF}
	switch len(x) {
	case 3, 4:
		c.R = digits[0] * 0x11
		c.G = digits[1] * 0x11
		c.B = digits[2] * 0x11
		if len(x) == 4 {
			c.A = digits[3] * 0x11
		}
	case 6, 8:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		if len(x) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	default:
		return nil, fmt.Errorf("invalid hex color length #%s", x)
	}
	return c, nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// parseRGBFunc handles rgb(r, g, b) and rgba(r, g, b, a) with 0-255
// channels (or percentages) and an alpha in [0,1].
func parseRGBFunc(s string) (color.Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	name := strings.TrimSpace(s[:open])
	if name != "rgb" && name != "rgba" {
		return nil, fmt.Errorf("unsupported color function %q", name)
	}
	body := s[open+1 : len(s)-1]
	parts := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseChannel(parts[i])
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = v
	}
	c := color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xFF}
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		c.A = a
	}
	return c, nil
}

func parseChannel(p string) (uint8, error) {
	if strings.HasSuffix(p, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255 / 100), nil
	}
	f, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, err
	}
	return clampByte(f), nil
}

func parseAlpha(p string) (uint8, error) {
	if strings.HasSuffix(p, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255 / 100), nil
	}
	f, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, err
	}
	return clampByte(f * 255), nil
}

func clampByte(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}
