package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Save writes the deck to a file, creating parent directories as needed.
// A partially written file is removed on failure.
func (d *Deck) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := d.Write(f)
	closeErr := f.Close()

	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	return closeErr
}

// Write writes the deck as a .pptx package to w.
func (d *Deck) Write(w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}
	pw := &packageWriter{deck: d}
	return pw.write(w)
}

// packageWriter writes one deck into a zip package.
type packageWriter struct {
	deck *Deck
}

func (w *packageWriter) write(writer io.Writer) error {
	zw := zip.NewWriter(writer)

	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.deck.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, i+1); err != nil {
			return err
		}
	}

	return zw.Close()
}
