package goshapes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `
title: Quiz shapes
palette:
  colors:
    shapeCorrect: "2ECC71"
slides:
  - title: Which is a cube?
    background: muted
    shapes:
      - kind: cube
        x: 1
        y: 1
        size: 1.2
        color: shapeCorrect
        label: Cube
      - kind: prism
        x: 4
        y: 1
        width: 1.5
        height: 0.8
        color: "#FF9999"
  - shapes:
      - kind: Rectangular Prism
        x: 1
        y: 1
        width: 1
        height: 1
        color: primary
`

func TestLoadScene(t *testing.T) {
	s, err := LoadScene(strings.NewReader(testScene))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Width != DefaultPageWidth || s.Height != DefaultPageHeight {
		t.Errorf("page size %gx%g", s.Width, s.Height)
	}
	if len(s.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(s.Slides))
	}
	shapes := s.Slides[0].Shapes
	if shapes[0].Kind != KindCube || shapes[1].Kind != KindRectangularPrism {
		t.Errorf("kinds = %s, %s", shapes[0].Kind, shapes[1].Kind)
	}
	if s.Slides[1].Shapes[0].Kind != KindRectangularPrism {
		t.Errorf("spaced kind parsed as %s", s.Slides[1].Shapes[0].Kind)
	}

	p, err := s.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	ds, err := s.Slides[0].Descriptors(p)
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	if ds[0].Width != 1.2 || ds[0].Color.Hex() != "2ecc71" || ds[0].Label != "Cube" {
		t.Errorf("cube descriptor %s", ds[0])
	}
	if ds[1].Width != 1.5 || ds[1].Height != 0.8 || ds[1].Color.Hex() != "ff9999" {
		t.Errorf("prism descriptor %s", ds[1])
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := map[string]string{
		"empty":         "",
		"no slides":     "title: nothing\n",
		"unknown kind":  "slides:\n  - shapes:\n      - kind: hexagon\n        color: '000000'\n",
		"unknown field": "slides: []\nfoo: 1\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadScene(strings.NewReader(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile: %v", err)
	}
	if s.Title != "Quiz shapes" {
		t.Errorf("title = %q", s.Title)
	}
	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDrawScene(t *testing.T) {
	s, err := LoadScene(strings.NewReader(testScene))
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.Palette()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(p)

	var slides []*Recorder
	var backgrounds []Color
	err = r.DrawScene(s, func(bg Color) Sink {
		rec := &Recorder{}
		slides = append(slides, rec)
		backgrounds = append(backgrounds, bg)
		return rec
	})
	if err != nil {
		t.Fatalf("DrawScene: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if backgrounds[0] != p.Muted || backgrounds[1] != p.Surface {
		t.Errorf("backgrounds = %v", backgrounds)
	}

	first := slides[0].Texts()
	if len(first) != 2 || first[0].Text != "Which is a cube?" || first[1].Text != "Cube" {
		t.Errorf("first slide texts = %+v", first)
	}
	if first[0].Bounds.W != s.Width-1 {
		t.Errorf("heading width %g", first[0].Bounds.W)
	}
	if n := len(slides[0].Shapes()); n != 6 {
		t.Errorf("expected 6 shapes on first slide, got %d", n)
	}
	if n := len(slides[1].Texts()); n != 0 {
		t.Errorf("untitled slide has %d texts", n)
	}
}

func TestDrawSceneErrors(t *testing.T) {
	r := NewRenderer(DefaultPalette())
	sink := func(Color) Sink { return &Recorder{} }

	badColor := &Scene{Width: 10, Slides: []SlideSpec{{Shapes: []ShapeSpec{{Kind: KindCube, Size: 1, Color: "mauve"}}}}}
	if err := r.DrawScene(badColor, sink); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat, got %v", err)
	}

	badBg := &Scene{Width: 10, Slides: []SlideSpec{{Background: "nope"}}}
	if err := r.DrawScene(badBg, sink); err == nil || !strings.Contains(err.Error(), "background") {
		t.Errorf("expected background error, got %v", err)
	}

	badSize := &Scene{Width: 10, Slides: []SlideSpec{{Shapes: []ShapeSpec{{Kind: KindSphere, Color: "000000"}}}}}
	if err := r.DrawScene(badSize, sink); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestDefaultScene(t *testing.T) {
	s := DefaultScene()
	if len(s.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(s.Slides))
	}
	for _, sl := range s.Slides {
		for _, sp := range sl.Shapes {
			want := sp.Kind.Title()
			if sp.Kind == KindLine {
				want = ""
			}
			if sp.Label != want {
				t.Errorf("%s label = %q, want %q", sp.Kind, sp.Label, want)
			}
		}
	}
	solids := 0
	for _, sp := range s.Slides[1].Shapes {
		if sp.Kind.Solid() {
			solids++
		}
	}
	if solids != 6 {
		t.Errorf("expected 6 solids, got %d", solids)
	}

	r := NewRenderer(DefaultPalette())
	if err := r.DrawScene(s, func(Color) Sink { return &Recorder{} }); err != nil {
		t.Errorf("default scene does not draw: %v", err)
	}
}

func TestKindText(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"cube", KindCube},
		{"Rectangular_Prism", KindRectangularPrism},
		{"box", KindRectangularPrism},
		{"rect", KindRectangle},
		{" Sphere ", KindSphere},
	}
	for _, tt := range tests {
		var k Kind
		if err := k.UnmarshalText([]byte(tt.in)); err != nil {
			t.Errorf("UnmarshalText(%q): %v", tt.in, err)
			continue
		}
		if k != tt.want {
			t.Errorf("UnmarshalText(%q) = %s, want %s", tt.in, k, tt.want)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("hexagon")); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Kind(42).MarshalText(); err == nil {
		t.Error("expected error marshalling unknown kind")
	}
	if got := KindRectangularPrism.Title(); got != "Rectangular Prism" {
		t.Errorf("Title() = %q", got)
	}
}

func TestShapeSpecSize(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		sp   ShapeSpec
		w, h float64
	}{
		{ShapeSpec{Kind: KindCube, Size: 1.5, Color: "primary"}, 1.5, 0},
		{ShapeSpec{Kind: KindCylinder, Size: 2, Color: "primary"}, 2, 2},
		{ShapeSpec{Kind: KindCone, Width: 1, Height: 3, Color: "primary"}, 1, 3},
	}
	for _, tt := range tests {
		d, err := tt.sp.Descriptor(p)
		if err != nil {
			t.Errorf("%s: %v", tt.sp.Kind, err)
			continue
		}
		if d.Width != tt.w || d.Height != tt.h {
			t.Errorf("%s: size %gx%g, want %gx%g", tt.sp.Kind, d.Width, d.Height, tt.w, tt.h)
		}
	}

	bad := map[string]ShapeSpec{
		"size with width":  {Kind: KindRectangularPrism, Size: 1, Width: 2, Color: "primary"},
		"size with height": {Kind: KindSphere, Size: 1, Height: 2, Color: "primary"},
		"size on a line":   {Kind: KindLine, Size: 1, Color: "primary"},
	}
	for name, sp := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := sp.Descriptor(p); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}
