package goshapes

import (
	"errors"
	"math"
	"testing"
)

func TestLightenDarken(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string, float64) (string, error)
		hex     string
		percent float64
		want    string
	}{
		{"lighten black 20", Lighten, "000000", 20, "333333"},
		{"darken white 10", Darken, "ffffff", 10, "e5e5e5"},
		{"lighten white saturates", Lighten, "FFFFFF", 50, "ffffff"},
		{"darken black saturates", Darken, "000000", 50, "000000"},
		{"lighten zero is identity", Lighten, "66B3FF", 0, "66b3ff"},
		{"darken zero is identity", Darken, "#FF9999", 0, "ff9999"},
		{"lighten half rounds up", Lighten, "000000", 50, "808080"},
		{"darken channels independently", Darken, "66B3FF", 20, "3380cc"},
		{"lighten channels independently", Lighten, "66B3FF", 20, "99e6ff"},
		{"percent above 100 clamps", Lighten, "123456", 150, "ffffff"},
		{"negative percent clamps", Darken, "123456", -10, "123456"},
		{"NaN percent is zero", Lighten, "123456", math.NaN(), "123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.hex, tt.percent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLightenDarkenInvalid(t *testing.T) {
	for _, hex := range []string{"", "12345", "1234567", "GGGGGG", "#12 456", "##123456"} {
		if _, err := Lighten(hex, 10); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("Lighten(%q): expected ErrInvalidColorFormat, got %v", hex, err)
		}
		if _, err := Darken(hex, 10); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("Darken(%q): expected ErrInvalidColorFormat, got %v", hex, err)
		}
	}
}

func TestShiftStaysInRange(t *testing.T) {
	for _, c := range []Color{ColorBlack, ColorWhite, {R: 1, G: 128, B: 254}} {
		for p := 0.0; p <= 100; p += 7.5 {
			l := c.Lighten(p)
			d := c.Darken(p)
			if l.R < c.R || l.G < c.G || l.B < c.B {
				t.Errorf("Lighten(%s, %g) = %s went darker", c, p, l)
			}
			if d.R > c.R || d.G > c.G || d.B > c.B {
				t.Errorf("Darken(%s, %g) = %s went lighter", c, p, d)
			}
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1e1E1e")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != (Color{R: 0x1E, G: 0x1E, B: 0x1E}) {
		t.Errorf("got %+v", c)
	}
	if c.Hex() != "1e1e1e" {
		t.Errorf("Hex() = %q", c.Hex())
	}

	var u Color
	if err := u.UnmarshalText([]byte("FF8A5B")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, err := u.MarshalText()
	if err != nil || string(b) != "ff8a5b" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if err := u.UnmarshalText([]byte("nope")); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat, got %v", err)
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("xyz")
}
