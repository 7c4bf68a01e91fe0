package goshapes

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Default page size in inches (16:9).
const (
	DefaultPageWidth  = 10
	DefaultPageHeight = 5.625
)

// Scene is a list of slides of figures, usually loaded from YAML.
type Scene struct {
	Title  string        `yaml:"title,omitempty"`
	Width  float64       `yaml:"width,omitempty"`
	Height float64       `yaml:"height,omitempty"`
	Colors PaletteConfig `yaml:"palette,omitempty"`
	Slides []SlideSpec   `yaml:"slides"`
}

// SlideSpec is one slide of a scene.
type SlideSpec struct {
	Title      string      `yaml:"title,omitempty"`
	Background string      `yaml:"background,omitempty"`
	Shapes     []ShapeSpec `yaml:"shapes"`
}

// ShapeSpec is the YAML form of a Descriptor. Colors may be palette names
// or hex literals.
type ShapeSpec struct {
	Kind   Kind    `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Size   float64 `yaml:"size,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Color  string  `yaml:"color"`
	Label  string  `yaml:"label,omitempty"`
}

// LoadScene decodes a scene from YAML and fills in the default page size.
func LoadScene(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode scene: empty document")
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if s.Width <= 0 {
		s.Width = DefaultPageWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultPageHeight
	}
	if len(s.Slides) == 0 {
		return nil, errors.New("scene has no slides")
	}
	return &s, nil
}

// LoadSceneFile reads a scene from a YAML file.
func LoadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := LoadScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Palette returns the default palette with the scene's overrides applied.
func (s *Scene) Palette() (Palette, error) {
	return s.Colors.Apply(DefaultPalette())
}

// Descriptor converts the YAML shape into a Descriptor, resolving its color
// against p. Size is shorthand for equal width and height; it cannot be
// combined with either, and lines do not take it.
func (sp ShapeSpec) Descriptor(p Palette) (Descriptor, error) {
	c, err := p.Resolve(sp.Color)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s color: %w", sp.Kind, err)
	}
	w, h := sp.Width, sp.Height
	if sp.Size != 0 {
		switch {
		case sp.Kind == KindLine:
			return Descriptor{}, fmt.Errorf("%w: %s takes width and height, not size", ErrInvalidGeometry, sp.Kind)
		case w != 0 || h != 0:
			return Descriptor{}, fmt.Errorf("%w: %s has both size and width/height", ErrInvalidGeometry, sp.Kind)
		case sp.Kind.singleSize():
			w, h = sp.Size, 0
		default:
			w, h = sp.Size, sp.Size
		}
	}
	return Descriptor{
		Kind:   sp.Kind,
		Origin: Point{X: sp.X, Y: sp.Y},
		Width:  w,
		Height: h,
		Color:  c,
		Label:  sp.Label,
	}, nil
}

// Descriptors converts every shape on the slide.
func (sl SlideSpec) Descriptors(p Palette) ([]Descriptor, error) {
	ds := make([]Descriptor, 0, len(sl.Shapes))
	for i, sp := range sl.Shapes {
		d, err := sp.Descriptor(p)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i+1, err)
		}
		ds = append(ds, d)
	}
	return ds, nil
}

// DrawScene draws every slide of s. newSlide is called once per slide with
// the resolved background and must return the sink for that slide.
func (r *Renderer) DrawScene(s *Scene, newSlide func(bg Color) Sink) error {
	for i, sl := range s.Slides {
		bg := r.palette.Surface
		if sl.Background != "" {
			c, err := r.palette.Resolve(sl.Background)
			if err != nil {
				return fmt.Errorf("slide %d background: %w", i+1, err)
			}
			bg = c
		}
		ds, err := sl.Descriptors(r.palette)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
		sink := newSlide(bg)
		if sl.Title != "" {
			sink.AddText(r.Heading(sl.Title, Point{X: 0.5, Y: 0.3}, s.Width-1))
		}
		if err := r.Draw(sink, ds...); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// DefaultScene returns the built-in gallery: the flat figures on the
// first slide and the six solids on the second, each labelled with its
// kind's title.
func DefaultScene() *Scene {
	s := &Scene{
		Title:  "Shape gallery",
		Width:  DefaultPageWidth,
		Height: DefaultPageHeight,
		Slides: []SlideSpec{
			{
				Title: "Flat shapes",
				Shapes: []ShapeSpec{
					{Kind: KindRectangle, X: 1, Y: 1.2, Width: 2, Height: 1, Color: "FF0000"},
					{Kind: KindCircle, X: 4, Y: 1.2, Size: 1.5, Color: "00FF00"},
					{Kind: KindTriangle, X: 7, Y: 1.2, Size: 1.5, Color: "0000FF"},
					{Kind: KindEllipse, X: 1, Y: 3.4, Width: 2, Height: 1.2, Color: "secondary"},
					{Kind: KindLine, X: 4, Y: 3.4, Width: 1.5, Height: 1.2, Color: "text"},
				},
			},
			{
				Title: "Solid shapes",
				Shapes: []ShapeSpec{
					{Kind: KindCube, X: 1.2, Y: 1.2, Size: 1, Color: "shapeCorrect"},
					{Kind: KindRectangularPrism, X: 4.2, Y: 1.2, Width: 1.3, Height: 0.8, Color: "shapeCorrect"},
					{Kind: KindCylinder, X: 7.3, Y: 1.2, Width: 1, Height: 1.1, Color: "shapeCorrect"},
					{Kind: KindCone, X: 1.2, Y: 3.3, Width: 1.1, Height: 1, Color: "shapeIncorrect"},
					{Kind: KindSphere, X: 4.4, Y: 3.3, Size: 1.2, Color: "shapeIncorrect"},
					{Kind: KindPyramid, X: 7.3, Y: 3.2, Width: 1.1, Height: 1, Color: "shapeIncorrect"},
				},
			},
		},
	}
	for i := range s.Slides {
		for j := range s.Slides[i].Shapes {
			sp := &s.Slides[i].Shapes[j]
			if sp.Kind != KindLine {
				sp.Label = sp.Kind.Title()
			}
		}
	}
	return s
}
