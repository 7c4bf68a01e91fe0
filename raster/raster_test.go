package raster

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	goshapes "github.com/VantageDataChat/GoShapes"
	"golang.org/x/image/font/gofont/gobold"
)

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func assertPixel(t *testing.T, img image.Image, x, y int, want goshapes.Color) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	got := goshapes.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	if !near(got.R, want.R, 2) || !near(got.G, want.G, 2) || !near(got.B, want.B, 2) {
		t.Errorf("pixel (%d,%d) = #%s, want #%s", x, y, got, want)
	}
}

func drawn(t *testing.T, ds ...goshapes.Descriptor) *Canvas {
	t.Helper()
	c := New(goshapes.DefaultPageWidth, goshapes.DefaultPageHeight, nil)
	r := goshapes.NewRenderer(goshapes.DefaultPalette())
	if err := r.Draw(c, ds...); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return c
}

func TestCanvasSize(t *testing.T) {
	c := New(10, 5.625, nil)
	w, h := c.Size()
	if w != 960 || h != 540 {
		t.Errorf("expected 960x540, got %dx%d", w, h)
	}
	b := c.Image().Bounds()
	if b.Dx() != 960 || b.Dy() != 540 {
		t.Errorf("image is %dx%d", b.Dx(), b.Dy())
	}

	c = New(10, 7.5, &Options{Width: 400, Supersample: 1})
	if w, h := c.Size(); w != 400 || h != 300 {
		t.Errorf("expected 400x300, got %dx%d", w, h)
	}
}

func TestCanvasCubeFaces(t *testing.T) {
	// 96 px per inch at the default width.
	c := drawn(t, goshapes.Cube(goshapes.Pt(1, 1), 1, goshapes.MustParseColor("3366CC")))
	img := c.Image()

	assertPixel(t, img, 10, 10, goshapes.ColorWhite)
	assertPixel(t, img, 144, 182, goshapes.MustParseColor("3366CC")) // front
	assertPixel(t, img, 182, 115, goshapes.MustParseColor("6699FF")) // top
	assertPixel(t, img, 211, 182, goshapes.MustParseColor("003399")) // side
}

func TestCanvasFlippedTriangle(t *testing.T) {
	// A flipped triangle has its apex at the bottom, so the top corners
	// of its box are filled and the bottom corners are not.
	c := New(10, 5.625, &Options{Width: 960, Supersample: 1})
	c.AddShape(goshapes.ShapeCommand{
		Primitive: goshapes.PrimitiveTriangle,
		Bounds:    goshapes.Rect{X: 1, Y: 1, W: 2, H: 2},
		Fill:      goshapes.SolidFill(goshapes.ColorBlack),
		FlipV:     true,
	})
	img := c.Image()
	assertPixel(t, img, 100, 100, goshapes.ColorBlack)
	assertPixel(t, img, 100, 284, goshapes.ColorWhite)
	assertPixel(t, img, 192, 280, goshapes.ColorBlack)
}

func TestCanvasTransparentHighlight(t *testing.T) {
	base := goshapes.MustParseColor("CC3333")
	c := drawn(t, goshapes.Sphere(goshapes.Pt(4, 1), 1, base))
	img := c.Image()

	// Sphere body away from the highlight.
	assertPixel(t, img, 432, 172, base)

	// Highlight center blends the lightened color over the body.
	r, g, _, _ := img.At(413, 125).RGBA()
	r8, g8 := uint8(r>>8), uint8(g>>8)
	if r8 <= base.R+10 || g8 <= base.G+10 || g8 >= 128-10 {
		t.Errorf("highlight pixel = (%d,%d), expected a blend", r8, g8)
	}
}

func TestCanvasBackgroundAndLine(t *testing.T) {
	c := New(10, 5.625, &Options{Width: 960, Supersample: 1})
	bg := goshapes.MustParseColor("F0F0F0")
	c.SetBackground(bg)
	c.AddShape(goshapes.ShapeCommand{
		Primitive: goshapes.PrimitiveLine,
		Bounds:    goshapes.Rect{X: 1, Y: 2, W: 3, H: 0},
		Outline:   goshapes.Outline{Color: goshapes.ColorBlack, Width: 3},
	})
	img := c.Image()
	assertPixel(t, img, 5, 5, bg)
	assertPixel(t, img, 192, 192, goshapes.ColorBlack)
	assertPixel(t, img, 192, 200, bg)
}

func TestCanvasText(t *testing.T) {
	c := New(10, 5.625, &Options{Width: 960, Supersample: 1})
	c.AddText(goshapes.TextCommand{
		Text:   "Cube",
		Bounds: goshapes.Rect{X: 1, Y: 1, W: 2, H: 0.5},
		Font:   goshapes.Font{Name: "Go", Size: 24, Bold: true, Color: goshapes.ColorBlack},
		Align:  goshapes.HorizontalCenter,
	})
	if err := c.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	// Some ink lands inside the box and none outside it.
	img := c.Image()
	inked := false
	for y := 96; y < 144; y++ {
		for x := 96; x < 288; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				inked = true
			}
		}
	}
	if !inked {
		t.Error("no text drawn inside bounds")
	}
	assertPixel(t, img, 50, 120, goshapes.ColorWhite)
}

func TestCanvasEncode(t *testing.T) {
	c := drawn(t, goshapes.Cylinder(goshapes.Pt(1, 1), 1, 1, goshapes.MustParseColor("4472C4")).WithLabel("Cylinder"))

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 960 {
		t.Errorf("decoded width %d", img.Bounds().Dx())
	}

	path := filepath.Join(t.TempDir(), "img", "slide.jpg")
	c.opts.Format = FormatFromPath(path)
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Errorf("saved file is not a JPEG: %v", err)
	}
}

func TestFontCache(t *testing.T) {
	fc := NewFontCache(false)
	c := New(10, 5.625, &Options{Width: 200, Supersample: 1, FontCache: fc})
	a, err := c.face("Arial", 12, false)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	b, err := c.face("arial", 12, false)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	if a != b {
		t.Error("expected cached face for case-insensitive name")
	}

	other := New(10, 5.625, &Options{Width: 200, Supersample: 1, FontCache: fc})
	o, err := other.face("Arial", 12, false)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	if o == a {
		t.Error("canvases sharing a cache must not share faces")
	}

	if err := fc.LoadFontData("broken", []byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestFontCacheLoadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, gobold.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	fc := NewFontCache(false)
	if err := fc.LoadFont("Custom Sans", path); err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if got := fc.findFont("custom sans", false); got == fc.regular || got == fc.bold {
		t.Error("loaded font not registered under its name")
	}
	if _, err := fc.NewFace("Custom Sans", 16, false); err != nil {
		t.Errorf("NewFace: %v", err)
	}
	if err := fc.LoadFont("missing", filepath.Join(t.TempDir(), "none.ttf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSharedFontCacheConcurrentCanvases(t *testing.T) {
	fc := NewFontCache(false)
	r := goshapes.NewRenderer(goshapes.DefaultPalette())
	cube := goshapes.Cube(goshapes.Pt(1, 1), 1, goshapes.MustParseColor("3366CC")).WithLabel("Cube label text")

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := New(10, 5.625, &Options{Width: 320, Supersample: 1, FontCache: fc})
			for j := 0; j < 20; j++ {
				if err := r.Draw(c, cube); err != nil {
					errs[i] = err
					return
				}
			}
			errs[i] = c.Encode(io.Discard)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d: %v", i, err)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]ImageFormat{
		"a.png":  FormatPNG,
		"a.JPG":  FormatJPEG,
		"a.jpeg": FormatJPEG,
		"a":      FormatPNG,
	}
	for path, want := range cases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}
