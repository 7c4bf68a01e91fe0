package goshapes

import "fmt"

// Depth and shading constants shared by the solids.
const (
	boxDepthFactor     = 0.4  // cube and prism depth as a fraction of width
	ellipseDepthFactor = 0.3  // cylinder and cone rim height as a fraction of width
	pyramidBaseFactor  = 0.5  // pyramid base height as a fraction of width
	highlightInset     = 0.15 // sphere highlight offset as a fraction of size
	highlightSize      = 0.3  // sphere highlight diameter as a fraction of size

	topShade       = 20 // lighten percent for top faces
	sideShade      = 20 // darken percent for side faces and pyramid bases
	rimShade       = 10 // darken percent for cylinder and cone bases
	highlightShade = 30 // lighten percent for the sphere highlight
	highlightAlpha = 50 // transparency percent for the sphere highlight

	headingSize = 24 // heading font size in points
)

// Renderer expands descriptors into draw commands using a fixed palette.
type Renderer struct {
	palette Palette
}

// NewRenderer returns a Renderer drawing with a copy of p.
func NewRenderer(p Palette) *Renderer {
	return &Renderer{palette: p}
}

// Palette returns the palette the renderer draws with.
func (r *Renderer) Palette() Palette { return r.palette }

// Render validates d and returns its commands ordered back to front,
// followed by the label text when d has one.
func (r *Renderer) Render(d Descriptor) ([]Command, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var faces []ShapeCommand
	switch d.Kind {
	case KindCube, KindRectangularPrism:
		faces = r.box(d)
	case KindCylinder:
		faces = r.cylinder(d)
	case KindCone:
		faces = r.cone(d)
	case KindSphere:
		faces = r.sphere(d)
	case KindPyramid:
		faces = r.pyramid(d)
	case KindRectangle:
		faces = []ShapeCommand{r.face(PrimitiveRect, d.Origin.X, d.Origin.Y, d.Width, d.Height, d.Color)}
	case KindEllipse:
		faces = []ShapeCommand{r.face(PrimitiveEllipse, d.Origin.X, d.Origin.Y, d.Width, d.Height, d.Color)}
	case KindCircle:
		faces = []ShapeCommand{r.face(PrimitiveEllipse, d.Origin.X, d.Origin.Y, d.Width, d.Width, d.Color)}
	case KindTriangle:
		faces = []ShapeCommand{r.face(PrimitiveTriangle, d.Origin.X, d.Origin.Y, d.Width, d.Width, d.Color)}
	case KindLine:
		faces = []ShapeCommand{{
			Primitive: PrimitiveLine,
			Bounds:    Rect{X: d.Origin.X, Y: d.Origin.Y, W: d.Width, H: d.Height},
			Outline:   Outline{Color: d.Color, Width: r.palette.Outline.Width},
		}}
	default:
		return nil, fmt.Errorf("%w: unsupported kind %s", ErrInvalidGeometry, d.Kind)
	}

	cmds := make([]Command, 0, len(faces)+1)
	bounds := faces[0].Bounds
	for _, f := range faces {
		cmds = append(cmds, f)
		bounds = bounds.Union(f.Bounds)
	}
	if d.Label != "" {
		cmds = append(cmds, r.label(d.Label, bounds))
	}
	return cmds, nil
}

// Draw renders each descriptor and replays it into sink. When sink is a
// Grouper, each descriptor's commands are wrapped in one group.
func (r *Renderer) Draw(sink Sink, ds ...Descriptor) error {
	for _, d := range ds {
		cmds, err := r.Render(d)
		if err != nil {
			return err
		}
		g, grouped := sink.(Grouper)
		if grouped && len(cmds) > 1 {
			name := d.Kind.String()
			if d.Label != "" {
				name = d.Label
			}
			g.BeginGroup(name)
		}
		Replay(sink, cmds)
		if grouped && len(cmds) > 1 {
			g.EndGroup()
		}
	}
	return nil
}

// Heading returns a bold, left-aligned title in the primary color.
func (r *Renderer) Heading(text string, at Point, width float64) TextCommand {
	return TextCommand{
		Text:   text,
		Bounds: Rect{X: at.X, Y: at.Y, W: width, H: 0.5},
		Font: Font{
			Name:  r.palette.LabelFont.Name,
			Size:  headingSize,
			Bold:  true,
			Color: r.palette.Primary,
		},
		Align: HorizontalLeft,
	}
}

// face returns an outlined, solid-filled primitive.
func (r *Renderer) face(p Primitive, x, y, w, h float64, c Color) ShapeCommand {
	return ShapeCommand{
		Primitive: p,
		Bounds:    Rect{X: x, Y: y, W: w, H: h},
		Fill:      SolidFill(c),
		Outline:   r.palette.Outline,
	}
}

// box draws a cube or prism as front, top and right faces.
func (r *Renderer) box(d Descriptor) []ShapeCommand {
	x, y := d.Origin.X, d.Origin.Y
	w, h := d.Size()
	depth := w * boxDepthFactor
	return []ShapeCommand{
		r.face(PrimitiveRect, x, y+depth, w, h, d.Color),
		r.face(PrimitiveRect, x+depth, y, w, depth, d.Color.Lighten(topShade)),
		r.face(PrimitiveRect, x+w, y+depth, depth, h, d.Color.Darken(sideShade)),
	}
}

func (r *Renderer) cylinder(d Descriptor) []ShapeCommand {
	x, y, w, h := d.Origin.X, d.Origin.Y, d.Width, d.Height
	rim := w * ellipseDepthFactor
	bodyY := y + rim/2

	body := r.face(PrimitiveRect, x, bodyY, w, h, d.Color)
	body.Outline.Width = 0

	edge := func(ex float64) ShapeCommand {
		return ShapeCommand{
			Primitive: PrimitiveLine,
			Bounds:    Rect{X: ex, Y: bodyY, W: 0, H: h},
			Outline:   r.palette.Outline,
		}
	}
	return []ShapeCommand{
		r.face(PrimitiveEllipse, x, y, w, rim, d.Color.Lighten(topShade)),
		body,
		r.face(PrimitiveEllipse, x, y+h, w, rim, d.Color.Darken(rimShade)),
		edge(x),
		edge(x + w),
	}
}

func (r *Renderer) cone(d Descriptor) []ShapeCommand {
	x, y, w, h := d.Origin.X, d.Origin.Y, d.Width, d.Height
	body := r.face(PrimitiveTriangle, x, y, w, h, d.Color)
	body.FlipV = true
	return []ShapeCommand{
		r.face(PrimitiveEllipse, x, y+h, w, w*ellipseDepthFactor, d.Color.Darken(rimShade)),
		body,
	}
}

func (r *Renderer) sphere(d Descriptor) []ShapeCommand {
	x, y, s := d.Origin.X, d.Origin.Y, d.Width
	hl := r.face(PrimitiveEllipse, x+s*highlightInset, y+s*highlightInset, s*highlightSize, s*highlightSize,
		d.Color.Lighten(highlightShade))
	hl.Fill.Transparency = highlightAlpha
	hl.Outline.Width = 0
	return []ShapeCommand{
		r.face(PrimitiveEllipse, x, y, s, s, d.Color),
		hl,
	}
}

func (r *Renderer) pyramid(d Descriptor) []ShapeCommand {
	x, y, w, h := d.Origin.X, d.Origin.Y, d.Width, d.Height
	front := r.face(PrimitiveTriangle, x, y, w, h, d.Color)
	front.FlipV = true
	return []ShapeCommand{
		r.face(PrimitiveRect, x, y+h, w, w*pyramidBaseFactor, d.Color.Darken(sideShade)),
		front,
	}
}

// label places text centered under bounds.
func (r *Renderer) label(text string, bounds Rect) TextCommand {
	return TextCommand{
		Text: text,
		Bounds: Rect{
			X: bounds.MinX(),
			Y: bounds.MaxY() + r.palette.LabelGap,
			W: bounds.MaxX() - bounds.MinX(),
			H: r.palette.LabelHeight,
		},
		Font:  r.palette.LabelFont,
		Align: HorizontalCenter,
	}
}
