// Package pdf is a goshapes sink that writes one PDF page per slide using
// vector drawing operators.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	goshapes "github.com/VantageDataChat/GoShapes"
)

var errNoPage = errors.New("pdf: draw before AddPage")

// Document is a PDF under construction. It implements goshapes.Sink and
// draws on the page most recently added.
type Document struct {
	pdf    *fpdf.Fpdf
	width  float64
	height float64
	pages  int
	tr     func(string) string
	err    error
}

// New creates an empty document whose pages are widthIn x heightIn inches.
func New(widthIn, heightIn float64) *Document {
	p := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: widthIn, Ht: heightIn},
	})
	p.SetMargins(0, 0, 0)
	p.SetCellMargin(0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("GoShapes v"+goshapes.Version, true)
	return &Document{
		pdf:    p,
		width:  widthIn,
		height: heightIn,
		tr:     p.UnicodeTranslatorFromDescriptor(""),
	}
}

// SetTitle sets the document title metadata.
func (d *Document) SetTitle(title string) {
	d.pdf.SetTitle(title, true)
}

// AddPage starts a new page painted with bg.
func (d *Document) AddPage(bg goshapes.Color) {
	d.pdf.AddPage()
	d.pages++
	d.pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	d.pdf.Rect(0, 0, d.width, d.height, "F")
}

// PageCount returns the number of pages added.
func (d *Document) PageCount() int { return d.pages }

// AddShape implements goshapes.Sink.
func (d *Document) AddShape(s goshapes.ShapeCommand) {
	if !d.ready() {
		return
	}
	p := d.pdf
	o := s.Outline
	if o.Visible() {
		p.SetDrawColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
		p.SetLineWidth(o.Width / goshapes.PointsPerInch)
	}

	if s.Primitive == goshapes.PrimitiveLine {
		if o.Visible() {
			b := s.Bounds
			p.Line(b.X, b.Y, b.X+b.W, b.Y+b.H)
		}
		return
	}

	style := ""
	if s.Fill.Type == goshapes.FillSolid {
		style = "F"
		c := s.Fill.Color
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
	}
	if o.Visible() {
		style += "D"
	}
	if style == "" {
		return
	}

	if s.Fill.Transparency > 0 {
		p.SetAlpha(float64(s.Fill.Alpha())/255, "Normal")
		defer p.SetAlpha(1, "Normal")
	}

	b := s.Bounds
	switch s.Primitive {
	case goshapes.PrimitiveEllipse:
		p.Ellipse(b.X+b.W/2, b.Y+b.H/2, b.W/2, b.H/2, 0, style)
	case goshapes.PrimitiveRect:
		p.Rect(b.X, b.Y, b.W, b.H, style)
	default:
		vs := s.Vertices()
		pts := make([]fpdf.PointType, len(vs))
		for i, v := range vs {
			pts[i] = fpdf.PointType{X: v.X, Y: v.Y}
		}
		p.Polygon(pts, style)
	}
}

// AddText implements goshapes.Sink. Fonts map onto the PDF core fonts.
func (d *Document) AddText(t goshapes.TextCommand) {
	if !d.ready() {
		return
	}
	p := d.pdf
	style := ""
	if t.Font.Bold {
		style = "B"
	}
	p.SetFont(coreFont(t.Font.Name), style, t.Font.Size)
	c := t.Font.Color
	p.SetTextColor(int(c.R), int(c.G), int(c.B))
	p.SetXY(t.Bounds.X, t.Bounds.Y)
	p.CellFormat(t.Bounds.W, t.Bounds.H, d.tr(t.Text), "", 0, cellAlign(t.Align), false, 0, "")
}

func (d *Document) ready() bool {
	if d.pages == 0 {
		if d.err == nil {
			d.err = errNoPage
		}
		return false
	}
	return true
}

// coreFont picks the standard PDF font closest to name.
func coreFont(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "times") || strings.Contains(n, "serif") && !strings.Contains(n, "sans"):
		return "Times"
	case strings.Contains(n, "courier") || strings.Contains(n, "mono"):
		return "Courier"
	}
	return "Helvetica"
}

func cellAlign(a goshapes.HorizontalAlignment) string {
	switch a {
	case goshapes.HorizontalCenter:
		return "CM"
	case goshapes.HorizontalRight:
		return "RM"
	}
	return "LM"
}

// Err returns the first error met while drawing.
func (d *Document) Err() error {
	if d.err != nil {
		return d.err
	}
	return d.pdf.Error()
}

// Write writes the finished document to w.
func (d *Document) Write(w io.Writer) error {
	if err := d.Err(); err != nil {
		return err
	}
	if d.pages == 0 {
		return errors.New("pdf: document has no pages")
	}
	return d.pdf.Output(w)
}

// Save writes the document to path, creating parent directories as needed.
func (d *Document) Save(path string) error {
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
	if err := d.Write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
