package goshapes

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Palette holds the colors and label styling a Renderer draws with. It is
// a plain value: a Renderer keeps its own copy, and WithColors returns a
// modified copy rather than changing the receiver.
type Palette struct {
	Surface        Color
	Text           Color
	Primary        Color
	Secondary      Color
	Muted          Color
	Correct        Color
	CorrectBg      Color
	Incorrect      Color
	Border         Color
	ShapeCorrect   Color
	ShapeIncorrect Color

	Outline Outline

	LabelFont   Font
	LabelHeight float64 // in drawing units
	LabelGap    float64 // in drawing units
}

// DefaultPalette returns the dark quiz palette: light text on a near-black
// surface, blue and pink shape colors, 1pt black outlines and 10pt labels.
func DefaultPalette() Palette {
	text := MustParseColor("E0E0E0")
	return Palette{
		Surface:        MustParseColor("1E1E1E"),
		Text:           text,
		Primary:        MustParseColor("66B3FF"),
		Secondary:      MustParseColor("FF8A5B"),
		Muted:          MustParseColor("2A2A2A"),
		Correct:        MustParseColor("2ECC71"),
		CorrectBg:      MustParseColor("1A4D2E"),
		Incorrect:      MustParseColor("FF9999"),
		Border:         MustParseColor("555555"),
		ShapeCorrect:   MustParseColor("66B3FF"),
		ShapeIncorrect: MustParseColor("FF9999"),
		Outline:        Outline{Color: ColorBlack, Width: 1},
		LabelFont:      Font{Name: "Arial", Size: 10, Color: text},
		LabelHeight:    0.2,
		LabelGap:       0.05,
	}
}

// slot returns a pointer to the named color, or nil.
func (p *Palette) slot(name string) *Color {
	switch strings.ToLower(name) {
	case "surface":
		return &p.Surface
	case "text":
		return &p.Text
	case "primary":
		return &p.Primary
	case "secondary":
		return &p.Secondary
	case "muted":
		return &p.Muted
	case "correct":
		return &p.Correct
	case "correctbg":
		return &p.CorrectBg
	case "incorrect":
		return &p.Incorrect
	case "border":
		return &p.Border
	case "shapecorrect":
		return &p.ShapeCorrect
	case "shapeincorrect":
		return &p.ShapeIncorrect
	case "outline":
		return &p.Outline.Color
	}
	return nil
}

// Color looks up a palette color by name, ignoring case.
func (p Palette) Color(name string) (Color, bool) {
	if c := p.slot(name); c != nil {
		return *c, true
	}
	return Color{}, false
}

// Resolve accepts either a palette color name or a hex literal.
func (p Palette) Resolve(s string) (Color, error) {
	if c, ok := p.Color(s); ok {
		return c, nil
	}
	return ParseColor(s)
}

// WithColors returns a copy of p with the named colors replaced. Values
// may be hex literals or names of other colors in p.
func (p Palette) WithColors(colors map[string]string) (Palette, error) {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	out := p
	for _, name := range names {
		dst := out.slot(name)
		if dst == nil {
			return p, fmt.Errorf("unknown palette color %q", name)
		}
		c, err := p.Resolve(colors[name])
		if err != nil {
			return p, fmt.Errorf("palette color %s: %w", name, err)
		}
		*dst = c
	}
	return out, nil
}

// PaletteConfig is the YAML form of palette overrides. Unset fields keep
// their default values.
type PaletteConfig struct {
	Colors  map[string]string `yaml:"colors,omitempty"`
	Outline *struct {
		Color string   `yaml:"color,omitempty"`
		Width *float64 `yaml:"width,omitempty"`
	} `yaml:"outline,omitempty"`
	Label *struct {
		Font   string   `yaml:"font,omitempty"`
		Size   float64  `yaml:"size,omitempty"`
		Color  string   `yaml:"color,omitempty"`
		Height float64  `yaml:"height,omitempty"`
		Gap    *float64 `yaml:"gap,omitempty"`
	} `yaml:"label,omitempty"`
}

// Apply returns base with the overrides in cfg applied.
func (cfg PaletteConfig) Apply(base Palette) (Palette, error) {
	p, err := base.WithColors(cfg.Colors)
	if err != nil {
		return base, err
	}
	if o := cfg.Outline; o != nil {
		if o.Color != "" {
			if p.Outline.Color, err = p.Resolve(o.Color); err != nil {
				return base, fmt.Errorf("outline color: %w", err)
			}
		}
		if o.Width != nil {
			if *o.Width < 0 {
				return base, fmt.Errorf("outline width must not be negative, got %g", *o.Width)
			}
			p.Outline.Width = *o.Width
		}
	}
	if l := cfg.Label; l != nil {
		if l.Font != "" {
			p.LabelFont.Name = l.Font
		}
		if l.Size > 0 {
			p.LabelFont.Size = l.Size
		}
		if l.Color != "" {
			if p.LabelFont.Color, err = p.Resolve(l.Color); err != nil {
				return base, fmt.Errorf("label color: %w", err)
			}
		}
		if l.Height > 0 {
			p.LabelHeight = l.Height
		}
		if l.Gap != nil {
			p.LabelGap = *l.Gap
		}
	}
	return p, nil
}

// LoadPalette reads YAML palette overrides from r and applies them to
// DefaultPalette.
func LoadPalette(r io.Reader) (Palette, error) {
	var cfg PaletteConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Palette{}, fmt.Errorf("decode palette: %w", err)
	}
	return cfg.Apply(DefaultPalette())
}
