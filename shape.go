package goshapes

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies the figure a Descriptor describes.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindCircle
	KindTriangle
	KindLine
	KindCube
	KindRectangularPrism
	KindCylinder
	KindCone
	KindSphere
	KindPyramid
)

var kindNames = map[Kind]string{
	KindRectangle:        "rectangle",
	KindEllipse:          "ellipse",
	KindCircle:           "circle",
	KindTriangle:         "triangle",
	KindLine:             "line",
	KindCube:             "cube",
	KindRectangularPrism: "rectangular-prism",
	KindCylinder:         "cylinder",
	KindCone:             "cone",
	KindSphere:           "sphere",
	KindPyramid:          "pyramid",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Title returns the kind as display text, e.g. "Rectangular Prism".
func (k Kind) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(k.String(), "-", " "))
}

// Solid reports whether k is one of the pseudo-3D kinds.
func (k Kind) Solid() bool { return k >= KindCube && k <= KindPyramid }

// singleSize reports whether k is sized by Width alone.
func (k Kind) singleSize() bool {
	switch k {
	case KindCube, KindSphere, KindCircle, KindTriangle:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	n, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown shape kind %d", int(k))
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Spaces and
// underscores are accepted in place of hyphens; "prism" and "box" are
// aliases for rectangular-prism, "rect" for rectangle.
func (k *Kind) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	switch s {
	case "rect":
		s = "rectangle"
	case "prism", "box":
		s = "rectangular-prism"
	}
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown shape kind %q", string(text))
}

// Descriptor describes one figure to draw. Kinds sized by a single value
// (cube, sphere, circle, triangle) read it from Width and ignore Height.
// For a line, Width and Height are the signed extents and Color is the
// stroke color.
type Descriptor struct {
	Kind   Kind
	Origin Point
	Width  float64
	Height float64
	Color  Color
	Label  string
}

// WithLabel returns a copy of d carrying label.
func (d Descriptor) WithLabel(label string) Descriptor {
	d.Label = label
	return d
}

// Size returns the width and height the descriptor occupies before any
// depth offset.
func (d Descriptor) Size() (w, h float64) {
	if d.Kind.singleSize() {
		return d.Width, d.Width
	}
	return d.Width, d.Height
}

func (d Descriptor) String() string {
	w, h := d.Size()
	s := fmt.Sprintf("%s at (%g,%g) %gx%g #%s", d.Kind, d.Origin.X, d.Origin.Y, w, h, d.Color)
	if d.Label != "" {
		s += fmt.Sprintf(" %q", d.Label)
	}
	return s
}

// Cube describes a cube with edge size.
func Cube(at Point, size float64, c Color) Descriptor {
	return Descriptor{Kind: KindCube, Origin: at, Width: size, Color: c}
}

// RectangularPrism describes a box whose front face is width x height.
func RectangularPrism(at Point, width, height float64, c Color) Descriptor {
	return Descriptor{Kind: KindRectangularPrism, Origin: at, Width: width, Height: height, Color: c}
}

// Cylinder describes an upright cylinder.
func Cylinder(at Point, width, height float64, c Color) Descriptor {
	return Descriptor{Kind: KindCylinder, Origin: at, Width: width, Height: height, Color: c}
}

// Cone describes a cone standing on an elliptical base.
func Cone(at Point, width, height float64, c Color) Descriptor {
	return Descriptor{Kind: KindCone, Origin: at, Width: width, Height: height, Color: c}
}

// Sphere describes a sphere of diameter size.
func Sphere(at Point, size float64, c Color) Descriptor {
	return Descriptor{Kind: KindSphere, Origin: at, Width: size, Color: c}
}

// Pyramid describes a pyramid on a rectangular base.
func Pyramid(at Point, width, height float64, c Color) Descriptor {
	return Descriptor{Kind: KindPyramid, Origin: at, Width: width, Height: height, Color: c}
}

// Rectangle describes a flat rectangle.
func Rectangle(at Point, width, height float64, c Color) Descriptor {
	return Descriptor{Kind: KindRectangle, Origin: at, Width: width, Height: height, Color: c}
}

// Ellipse describes a flat ellipse inscribed in width x height.
func Ellipse(at Point, width, height float64, c Color) Descriptor {
	return Descriptor{Kind: KindEllipse, Origin: at, Width: width, Height: height, Color: c}
}

// Circle describes a flat circle of diameter size.
func Circle(at Point, size float64, c Color) Descriptor {
	return Descriptor{Kind: KindCircle, Origin: at, Width: size, Color: c}
}

// Triangle describes a flat isosceles triangle in a size x size box.
func Triangle(at Point, size float64, c Color) Descriptor {
	return Descriptor{Kind: KindTriangle, Origin: at, Width: size, Color: c}
}

// Line describes a straight stroke from at to at+(dx,dy).
func Line(at Point, dx, dy float64, c Color) Descriptor {
	return Descriptor{Kind: KindLine, Origin: at, Width: dx, Height: dy, Color: c}
}
