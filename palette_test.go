package goshapes

import (
	"errors"
	"strings"
	"testing"
)

func TestPaletteResolve(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		in   string
		want string
	}{
		{"primary", "66b3ff"},
		{"ShapeIncorrect", "ff9999"},
		{"outline", "000000"},
		{"#123abc", "123abc"},
	}
	for _, tt := range tests {
		c, err := p.Resolve(tt.in)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.in, err)
			continue
		}
		if c.Hex() != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.in, c, tt.want)
		}
	}
	if _, err := p.Resolve("teal"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat for unknown name, got %v", err)
	}
}

func TestPaletteWithColors(t *testing.T) {
	p := DefaultPalette()
	q, err := p.WithColors(map[string]string{
		"primary":      "112233",
		"shapeCorrect": "primary",
	})
	if err != nil {
		t.Fatalf("WithColors: %v", err)
	}
	if q.Primary.Hex() != "112233" {
		t.Errorf("primary = %s", q.Primary)
	}
	// References resolve against the palette being modified, not the result.
	if q.ShapeCorrect != p.Primary {
		t.Errorf("shapeCorrect = %s, want %s", q.ShapeCorrect, p.Primary)
	}
	if p.Primary.Hex() != "66b3ff" {
		t.Error("WithColors modified the receiver")
	}

	if _, err := p.WithColors(map[string]string{"nope": "000000"}); err == nil {
		t.Error("expected error for unknown color name")
	}
	if _, err := p.WithColors(map[string]string{"text": "xyz"}); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat, got %v", err)
	}
}

func TestLoadPalette(t *testing.T) {
	src := `
colors:
  surface: "#FFFFFF"
  text: "000000"
outline:
  color: "333333"
  width: 2
label:
  font: Helvetica
  size: 12
  color: text
  gap: 0
`
	p, err := LoadPalette(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	if p.Surface != ColorWhite {
		t.Errorf("surface = %s", p.Surface)
	}
	if p.Outline.Width != 2 || p.Outline.Color.Hex() != "333333" {
		t.Errorf("outline = %+v", p.Outline)
	}
	if p.LabelFont.Name != "Helvetica" || p.LabelFont.Size != 12 || p.LabelFont.Color != ColorBlack {
		t.Errorf("label font = %+v", p.LabelFont)
	}
	if p.LabelGap != 0 || p.LabelHeight != 0.2 {
		t.Errorf("label gap %g height %g", p.LabelGap, p.LabelHeight)
	}
	if p.Primary != DefaultPalette().Primary {
		t.Error("unset colors should keep their defaults")
	}
}

func TestLoadPaletteEmpty(t *testing.T) {
	p, err := LoadPalette(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	if p != DefaultPalette() {
		t.Error("empty document should yield the default palette")
	}
}

func TestLoadPaletteErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field":    "colours:\n  text: '000000'\n",
		"unknown color":    "colors:\n  teal: '008080'\n",
		"bad hex":          "colors:\n  text: '00'\n",
		"negative outline": "outline:\n  width: -1\n",
		"bad label color":  "label:\n  color: nope\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadPalette(strings.NewReader(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
