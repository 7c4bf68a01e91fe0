// Package raster is a goshapes sink that paints draw commands into an
// image and saves it as PNG or JPEG.
//
// Shapes are filled with an anti-aliasing vector rasterizer at a
// supersampled resolution and scaled down when the image is taken.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	goshapes "github.com/VantageDataChat/GoShapes"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// FormatFromPath picks the format from a file extension; anything other
// than .jpg or .jpeg is PNG.
func FormatFromPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	}
	return FormatPNG
}

// ellipseSegments is the number of edges used to approximate an ellipse.
const ellipseSegments = 64

// Options configures a Canvas.
type Options struct {
	// Width is the output image width in pixels. Height follows the page
	// aspect ratio. Default: 960.
	Width int
	// Supersample is the factor shapes are painted at before scaling down.
	// 1 disables it. Default: 2.
	Supersample int
	// Format is the encoding used by Encode and Save.
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// FontCache resolves label fonts. One cache may be shared by canvases
	// drawing on different goroutines. If nil, a cache of the embedded
	// fonts is used.
	FontCache *FontCache
}

// DefaultOptions returns default rendering options.
func DefaultOptions() *Options {
	return &Options{
		Width:       960,
		Supersample: 2,
		Format:      FormatPNG,
		JPEGQuality: 90,
	}
}

// Canvas is one page painted in memory. It implements goshapes.Sink.
type Canvas struct {
	opts   Options
	img    *image.RGBA
	width  int
	height int
	scale  float64 // pixels per inch on img
	ras    *vector.Rasterizer
	fonts  *FontCache
	faces  map[faceKey]font.Face
	err    error
}

// faceKey identifies a face by family, pixel size and weight.
type faceKey struct {
	name string
	size float64
	bold bool
}

// New creates a white canvas for a page of widthIn x heightIn inches.
func New(widthIn, heightIn float64, opts *Options) *Canvas {
	o := *DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Width <= 0 {
		o.Width = 960
	}
	if o.Supersample <= 0 {
		o.Supersample = 1
	}
	if o.FontCache == nil {
		o.FontCache = NewFontCache(false)
	}

	width := o.Width
	height := 1
	if widthIn > 0 && heightIn > 0 {
		height = max(int(math.Round(float64(width)*heightIn/widthIn)), 1)
	}
	ss := o.Supersample
	img := image.NewRGBA(image.Rect(0, 0, width*ss, height*ss))
	c := &Canvas{
		opts:   o,
		img:    img,
		width:  width,
		height: height,
		scale:  float64(width*ss) / widthIn,
		ras:    vector.NewRasterizer(width*ss, height*ss),
		fonts:  o.FontCache,
		faces:  make(map[faceKey]font.Face),
	}
	c.SetBackground(goshapes.ColorWhite)
	return c
}

// Size returns the output image size in pixels.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Err returns the first error met while painting, such as a font that
// could not be loaded.
func (c *Canvas) Err() error { return c.err }

// SetBackground paints the whole canvas with bg, erasing anything drawn.
func (c *Canvas) SetBackground(bg goshapes.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(rgba(bg, 255)), image.Point{}, draw.Src)
}

func rgba(c goshapes.Color, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// px converts a point in inches to canvas pixels.
func (c *Canvas) px(x, y float64) (float32, float32) {
	return float32(x * c.scale), float32(y * c.scale)
}

// AddShape implements goshapes.Sink.
func (c *Canvas) AddShape(s goshapes.ShapeCommand) {
	if s.Primitive == goshapes.PrimitiveLine {
		b := s.Bounds
		c.strokePath([]goshapes.Point{{X: b.X, Y: b.Y}, {X: b.X + b.W, Y: b.Y + b.H}}, false, s.Outline)
		return
	}

	pts := outlinePoints(s)
	if s.Fill.Type == goshapes.FillSolid {
		c.fillPolygon(pts, rgba(s.Fill.Color, s.Fill.Alpha()))
	}
	if s.Outline.Visible() {
		c.strokePath(pts, true, s.Outline)
	}
}

// outlinePoints returns the polygon for a closed primitive in inches.
func outlinePoints(s goshapes.ShapeCommand) []goshapes.Point {
	if s.Primitive != goshapes.PrimitiveEllipse {
		return s.Vertices()
	}
	b := s.Bounds
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	rx, ry := b.W/2, b.H/2
	pts := make([]goshapes.Point, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = goshapes.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return pts
}

func (c *Canvas) fillPolygon(pts []goshapes.Point, col color.NRGBA) {
	c.ras.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	for i, p := range pts {
		x, y := c.px(p.X, p.Y)
		if i == 0 {
			c.ras.MoveTo(x, y)
			continue
		}
		c.ras.LineTo(x, y)
	}
	c.ras.ClosePath()
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// strokePath draws each segment as a quad of the outline width, at least
// one output pixel wide.
func (c *Canvas) strokePath(pts []goshapes.Point, closed bool, o goshapes.Outline) {
	if !o.Visible() || len(pts) < 2 {
		return
	}
	half := math.Max(o.Width/goshapes.PointsPerInch*c.scale, float64(c.opts.Supersample)) / 2
	col := rgba(o.Color, 255)

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		x0, y0 := c.px(pts[i].X, pts[i].Y)
		p1 := pts[(i+1)%len(pts)]
		x1, y1 := c.px(p1.X, p1.Y)

		dx, dy := float64(x1-x0), float64(y1-y0)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// Extend each end by half the width so joints overlap.
		ex, ey := float32(dx/l*half), float32(dy/l*half)
		nx, ny := -ey, ex

		c.ras.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
		c.ras.MoveTo(x0-ex+nx, y0-ey+ny)
		c.ras.LineTo(x1+ex+nx, y1+ey+ny)
		c.ras.LineTo(x1+ex-nx, y1+ey-ny)
		c.ras.LineTo(x0-ex-nx, y0-ey-ny)
		c.ras.ClosePath()
		c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	}
}

// AddText implements goshapes.Sink. The text is drawn on one line,
// vertically centered in its bounds.
func (c *Canvas) AddText(t goshapes.TextCommand) {
	if t.Text == "" {
		return
	}
	sizePx := t.Font.Size / goshapes.PointsPerInch * c.scale
	face, err := c.face(t.Font.Name, sizePx, t.Font.Bold)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return
	}

	x, y := c.px(t.Bounds.X, t.Bounds.Y)
	w, h := c.px(t.Bounds.W, t.Bounds.H)
	m := face.Metrics()
	textW := float32(font.MeasureString(face, t.Text)) / 64
	ascent := float32(m.Ascent) / 64
	descent := float32(m.Descent) / 64

	drawX := x
	switch t.Align {
	case goshapes.HorizontalCenter:
		drawX = x + (w-textW)/2
	case goshapes.HorizontalRight:
		drawX = x + w - textW
	}
	baseline := y + (h-(ascent+descent))/2 + ascent

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(rgba(t.Font.Color, 255)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(drawX * 64), Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(t.Text)
}

// face returns the canvas's own face for a font, creating it on first use.
func (c *Canvas) face(name string, sizePx float64, bold bool) (font.Face, error) {
	key := faceKey{name: strings.ToLower(name), size: sizePx, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := c.fonts.NewFace(name, sizePx, bold)
	if err != nil {
		return nil, err
	}
	c.faces[key] = f
	return f, nil
}

// Image returns the painted page at the output size.
func (c *Canvas) Image() image.Image {
	if c.opts.Supersample <= 1 {
		return c.img
	}
	return transform.Resize(c.img, c.width, c.height, transform.Linear)
}

// Encode writes the page in the configured format.
func (c *Canvas) Encode(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	img := c.Image()
	switch c.opts.Format {
	case FormatJPEG:
		quality := c.opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// Save encodes the page to path, creating parent directories as needed.
func (c *Canvas) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
