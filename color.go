package goshapes

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidColorFormat is returned when a color string is not exactly six
// hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Predefined colors.
var (
	ColorBlack = Color{}
	ColorWhite = Color{R: 0xFF, G: 0xFF, B: 0xFF}
)

// ParseColor parses a 6-digit hex color such as "66B3FF" or "#66b3ff".
// Either case is accepted; a leading "#" is stripped.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q is not 6 hex digits", ErrInvalidColorFormat, s)
	}
	var ch [3]uint8
	for i := range ch {
		h := hexVal(hex[2*i])
		l := hexVal(hex[2*i+1])
		if h < 0 || l < 0 {
			return Color{}, fmt.Errorf("%w: %q contains a non-hex digit", ErrInvalidColorFormat, s)
		}
		ch[i] = uint8(h<<4 | l)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// It is meant for package-level literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Hex returns the color as six lowercase, zero-padded hex digits.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Lighten shifts every channel toward white by percent of 255.
// percent is clamped to 0–100.
func (c Color) Lighten(percent float64) Color {
	amt := shiftAmount(percent)
	return Color{
		R: uint8(min(255, int(c.R)+amt)),
		G: uint8(min(255, int(c.G)+amt)),
		B: uint8(min(255, int(c.B)+amt)),
	}
}

// Darken shifts every channel toward black by percent of 255.
// percent is clamped to 0–100.
func (c Color) Darken(percent float64) Color {
	amt := shiftAmount(percent)
	return Color{
		R: uint8(max(0, int(c.R)-amt)),
		G: uint8(max(0, int(c.G)-amt)),
		B: uint8(max(0, int(c.B)-amt)),
	}
}

// shiftAmount converts a percentage into a channel offset,
// round(255*p/100) with halves away from zero.
func shiftAmount(percent float64) int {
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return int(math.Round(255 * percent / 100))
}

// Lighten parses hex, lightens it by percent and returns the new hex string.
func Lighten(hex string, percent float64) (string, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return "", err
	}
	return c.Lighten(percent).Hex(), nil
}

// Darken parses hex, darkens it by percent and returns the new hex string.
func Darken(hex string, percent float64) (string, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return "", err
	}
	return c.Darken(percent).Hex(), nil
}
