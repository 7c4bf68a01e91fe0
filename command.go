package goshapes

import "math"

// Point is a position in drawing units (inches).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis-aligned box in drawing units. W and H may be negative
// only for line primitives, where they are the signed extents.
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return math.Max(r.X, r.X+r.W) }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return math.Max(r.Y, r.Y+r.H) }

// MinX returns the left edge.
func (r Rect) MinX() float64 { return math.Min(r.X, r.X+r.W) }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return math.Min(r.Y, r.Y+r.H) }

// Union returns the smallest box covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.MinX(), o.MinX())
	y0 := math.Min(r.MinY(), o.MinY())
	x1 := math.Max(r.MaxX(), o.MaxX())
	y1 := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Primitive is the flat shape a ShapeCommand draws.
type Primitive int

const (
	PrimitiveRect Primitive = iota
	PrimitiveEllipse
	PrimitiveTriangle
	PrimitiveLine
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveRect:
		return "rect"
	case PrimitiveEllipse:
		return "ellipse"
	case PrimitiveTriangle:
		return "triangle"
	case PrimitiveLine:
		return "line"
	}
	return "unknown"
}

// FillType represents the type of fill.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
)

// Fill is the interior paint of a shape.
type Fill struct {
	Type         FillType
	Color        Color
	Transparency int // 0 (opaque) to 100 (invisible)
}

// SolidFill returns an opaque solid fill.
func SolidFill(c Color) Fill { return Fill{Type: FillSolid, Color: c} }

// Alpha returns the fill opacity in 0–255.
func (f Fill) Alpha() uint8 {
	t := min(max(f.Transparency, 0), 100)
	return uint8((100 - t) * 255 / 100)
}

// Outline is the stroke of a shape. A zero Width means no stroke.
type Outline struct {
	Color Color
	Width float64 // in points
}

// Visible reports whether the outline is drawn at all.
func (o Outline) Visible() bool { return o.Width > 0 }

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft   HorizontalAlignment = "l"
	HorizontalCenter HorizontalAlignment = "ctr"
	HorizontalRight  HorizontalAlignment = "r"
)

// Font represents text font properties.
type Font struct {
	Name  string
	Size  float64 // in points
	Bold  bool
	Color Color
}

// Command is one ordered draw instruction. It is implemented only by
// ShapeCommand and TextCommand.
type Command interface {
	// Extent is the area the command covers.
	Extent() Rect
	command()
}

// ShapeCommand draws one flat primitive.
type ShapeCommand struct {
	Primitive Primitive
	Bounds    Rect
	Fill      Fill
	Outline   Outline
	FlipV     bool
}

func (s ShapeCommand) Extent() Rect { return s.Bounds }
func (ShapeCommand) command()       {}

// Vertices returns the corners of a rect or triangle in drawing order.
// A triangle's apex is top center, or bottom center when FlipV is set.
// Ellipses and lines have no vertices.
func (s ShapeCommand) Vertices() []Point {
	b := s.Bounds
	switch s.Primitive {
	case PrimitiveRect:
		return []Point{
			{X: b.X, Y: b.Y},
			{X: b.X + b.W, Y: b.Y},
			{X: b.X + b.W, Y: b.Y + b.H},
			{X: b.X, Y: b.Y + b.H},
		}
	case PrimitiveTriangle:
		apex, base := b.Y, b.Y+b.H
		if s.FlipV {
			apex, base = base, apex
		}
		return []Point{
			{X: b.X + b.W/2, Y: apex},
			{X: b.X + b.W, Y: base},
			{X: b.X, Y: base},
		}
	}
	return nil
}

// TextCommand places a single line of text inside Bounds.
type TextCommand struct {
	Text   string
	Bounds Rect
	Font   Font
	Align  HorizontalAlignment
}

func (t TextCommand) Extent() Rect { return t.Bounds }
func (TextCommand) command()       {}

// Sink receives draw commands. Implementations report failures when the
// finished document is written, not per call.
type Sink interface {
	AddShape(s ShapeCommand)
	AddText(t TextCommand)
}

// Grouper is implemented by sinks that can bundle the commands of one
// descriptor into a single selectable unit.
type Grouper interface {
	BeginGroup(name string)
	EndGroup()
}

// Replay sends cmds to sink in order.
func Replay(sink Sink, cmds []Command) {
	for _, c := range cmds {
		switch c := c.(type) {
		case ShapeCommand:
			sink.AddShape(c)
		case TextCommand:
			sink.AddText(c)
		}
	}
}

// Recorder is a Sink that keeps every command it receives.
type Recorder struct {
	Commands []Command
	Groups   []string
}

func (r *Recorder) AddShape(s ShapeCommand) { r.Commands = append(r.Commands, s) }
func (r *Recorder) AddText(t TextCommand)   { r.Commands = append(r.Commands, t) }

// BeginGroup records the group name.
func (r *Recorder) BeginGroup(name string) { r.Groups = append(r.Groups, name) }

// EndGroup is a no-op.
func (r *Recorder) EndGroup() {}

// Shapes returns the recorded shape commands.
func (r *Recorder) Shapes() []ShapeCommand {
	var out []ShapeCommand
	for _, c := range r.Commands {
		if s, ok := c.(ShapeCommand); ok {
			out = append(out, s)
		}
	}
	return out
}

// Texts returns the recorded text commands.
func (r *Recorder) Texts() []TextCommand {
	var out []TextCommand
	for _, c := range r.Commands {
		if t, ok := c.(TextCommand); ok {
			out = append(out, t)
		}
	}
	return out
}
