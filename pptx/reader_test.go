package pptx

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	goshapes "github.com/VantageDataChat/GoShapes"
)

func TestReadSummary(t *testing.T) {
	d := drawnDeck(t,
		goshapes.Cube(goshapes.Pt(1, 1), 1, goshapes.MustParseColor("3366CC")).WithLabel("Cube & Co"),
		goshapes.Sphere(goshapes.Pt(4, 1), 1, goshapes.MustParseColor("CC3333")),
		goshapes.Line(goshapes.Pt(1, 4), 2, -1, goshapes.ColorBlack),
	)
	d.Properties().Title = "Read back"
	d.CreateSlide()

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sum, err := ReadSummary(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}

	if sum.Title != "Read back" {
		t.Errorf("title = %q", sum.Title)
	}
	if sum.Width != 10 || sum.Height != 5.625 {
		t.Errorf("page size %gx%g", sum.Width, sum.Height)
	}
	if len(sum.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(sum.Slides))
	}

	first := sum.Slides[0]
	if first.Part != "ppt/slides/slide1.xml" {
		t.Errorf("part = %q", first.Part)
	}
	if first.Background != "ffffff" {
		t.Errorf("background = %q", first.Background)
	}
	if got := strings.Join(first.Groups, ","); got != "Cube & Co,sphere" {
		t.Errorf("groups = %q", got)
	}
	if first.Geometry["rect"] != 3 || first.Geometry["ellipse"] != 2 || first.Geometry["line"] != 1 {
		t.Errorf("geometry = %v", first.Geometry)
	}
	// Cube faces, sphere body and the line carry 1pt outlines; the
	// highlight has none.
	if len(first.Outlines) != 1 || first.Outlines[1] != 5 {
		t.Errorf("outlines = %v", first.Outlines)
	}
	if first.Shapes() != 6 {
		t.Errorf("shapes = %d", first.Shapes())
	}
	if len(first.Texts) != 1 || first.Texts[0] != "Cube & Co" {
		t.Errorf("texts = %q", first.Texts)
	}

	second := sum.Slides[1]
	if second.Background != "" || second.Shapes() != 0 || len(second.Groups) != 0 {
		t.Errorf("second slide should be empty: %+v", second)
	}

	out := sum.String()
	if !strings.Contains(out, "2 slides") || !strings.Contains(out, "slide 1: 6 shapes, 2 groups, 1 texts, background #ffffff") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	d := drawnDeck(t, goshapes.Pyramid(goshapes.Pt(1, 1), 1, 1, goshapes.MustParseColor("AA8800")))
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sum, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(sum.Slides) != 1 || sum.Slides[0].Geometry["triangle"] != 1 {
		t.Errorf("unexpected summary %+v", sum.Slides)
	}

	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.pptx")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadSummaryRejectsGarbage(t *testing.T) {
	data := []byte("not a zip")
	if _, err := ReadSummary(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for non-zip input")
	}
	if _, err := ReadSummary(bytes.NewReader(nil), 0); err == nil {
		t.Error("expected error for empty input")
	}
}
