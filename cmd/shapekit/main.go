// Command shapekit renders a scene of shapes to PowerPoint, images and PDF.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	goshapes "github.com/VantageDataChat/GoShapes"
	"github.com/VantageDataChat/GoShapes/pdf"
	"github.com/VantageDataChat/GoShapes/pptx"
	"github.com/VantageDataChat/GoShapes/raster"
)

var (
	scenePath   = flag.String("scene", "", "YAML scene file (default: built-in gallery)")
	palettePath = flag.String("palette", "", "YAML palette overrides, replacing the scene's palette")
	outDir      = flag.String("out", "./output", "directory to write results")
	formats     = flag.String("formats", "pptx,png,pdf", "comma-separated outputs: pptx, png, jpg, pdf")
	width       = flag.Int("width", 960, "raster image width in pixels")
	inspect     = flag.String("inspect", "", "summarize an existing .pptx and exit")
	version     = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("shapekit", goshapes.Version)
		return
	}

	if *inspect != "" {
		sum, err := pptx.Inspect(*inspect)
		if err != nil {
			log.Fatalf("inspect %s: %v", *inspect, err)
		}
		fmt.Print(sum)
		return
	}

	scene := goshapes.DefaultScene()
	if *scenePath != "" {
		s, err := goshapes.LoadSceneFile(*scenePath)
		if err != nil {
			log.Fatalf("load scene: %v", err)
		}
		scene = s
	}

	palette, err := scene.Palette()
	if err != nil {
		log.Fatalf("scene palette: %v", err)
	}
	if *palettePath != "" {
		if palette, err = loadPalette(*palettePath); err != nil {
			log.Fatalf("load palette: %v", err)
		}
	}
	r := goshapes.NewRenderer(palette)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *outDir, err)
	}

	for _, f := range strings.Split(*formats, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		var err error
		switch f {
		case "":
			continue
		case "pptx":
			err = writeDeck(r, scene, filepath.Join(*outDir, "shapes.pptx"))
		case "png", "jpg", "jpeg":
			err = writeImages(r, scene, *outDir, f)
		case "pdf":
			err = writePDF(r, scene, filepath.Join(*outDir, "shapes.pdf"))
		default:
			log.Fatalf("unknown format %q", f)
		}
		if err != nil {
			log.Fatalf("%s: %v", f, err)
		}
	}
}

func loadPalette(path string) (goshapes.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return goshapes.Palette{}, err
	}
	defer f.Close()
	return goshapes.LoadPalette(f)
}

func writeDeck(r *goshapes.Renderer, s *goshapes.Scene, path string) error {
	deck := pptx.New()
	deck.SetLayout(s.Width, s.Height)
	deck.Properties().Title = s.Title

	err := r.DrawScene(s, func(bg goshapes.Color) goshapes.Sink {
		slide := deck.CreateSlide()
		slide.SetBackground(bg)
		return slide
	})
	if err != nil {
		return err
	}
	if err := deck.Save(path); err != nil {
		return err
	}
	log.Printf("wrote %s (%d slides)", path, deck.SlideCount())
	return nil
}

func writeImages(r *goshapes.Renderer, s *goshapes.Scene, dir, ext string) error {
	opts := raster.DefaultOptions()
	opts.Width = *width
	opts.FontCache = raster.NewFontCache(true)
	if ext != "png" {
		opts.Format = raster.FormatJPEG
	}

	var canvases []*raster.Canvas
	err := r.DrawScene(s, func(bg goshapes.Color) goshapes.Sink {
		c := raster.New(s.Width, s.Height, opts)
		c.SetBackground(bg)
		canvases = append(canvases, c)
		return c
	})
	if err != nil {
		return err
	}
	for i, c := range canvases {
		path := filepath.Join(dir, fmt.Sprintf("slide%02d.%s", i+1, ext))
		if err := c.Save(path); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

func writePDF(r *goshapes.Renderer, s *goshapes.Scene, path string) error {
	doc := pdf.New(s.Width, s.Height)
	doc.SetTitle(s.Title)
	err := r.DrawScene(s, func(bg goshapes.Color) goshapes.Sink {
		doc.AddPage(bg)
		return doc
	})
	if err != nil {
		return err
	}
	if err := doc.Save(path); err != nil {
		return err
	}
	log.Printf("wrote %s (%d pages)", path, doc.PageCount())
	return nil
}
