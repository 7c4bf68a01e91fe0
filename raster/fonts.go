package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontCache resolves label fonts by family name. Fonts are looked up in
// the configured directories; anything not found falls back to the
// embedded Go fonts, so every lookup yields a font.
//
// A FontCache is safe for concurrent use and may be shared across
// canvases. It holds parsed fonts only; the faces built from them are
// not safe to share, so each Canvas keeps its own.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	fonts   map[string]*opentype.Font // lowercase family or file name -> font
	regular *opentype.Font
	bold    *opentype.Font
	scanned bool
}

// NewFontCache creates a FontCache that searches dirs. With system set,
// the OS font directories are searched as well.
func NewFontCache(system bool, dirs ...string) *FontCache {
	if system {
		dirs = append(systemFontDirs(), dirs...)
	}
	fc := &FontCache{
		dirs:  dirs,
		fonts: make(map[string]*opentype.Font),
	}
	// The embedded fonts are known-good; a parse failure here is a build defect.
	var err error
	if fc.regular, err = opentype.Parse(goregular.TTF); err != nil {
		panic(err)
	}
	if fc.bold, err = opentype.Parse(gobold.TTF); err != nil {
		panic(err)
	}
	return fc
}

// NewFace returns a new face for the named family at sizePx pixels. The
// face must not be used by more than one goroutine at a time.
func (fc *FontCache) NewFace(name string, sizePx float64, bold bool) (font.Face, error) {
	fc.ensureScanned()
	face, err := opentype.NewFace(fc.findFont(name, bold), &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("face %s %gpx: %w", name, sizePx, err)
	}
	return face, nil
}

// findFont looks up a parsed font by name, trying bold variants first.
func (fc *FontCache) findFont(name string, bold bool) *opentype.Font {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	lower := strings.ToLower(name)
	if bold {
		// Windows ships "arialbd", Linux packages "Arial Bold".
		for _, suffix := range []string{" bold", "bd", "-bold", "b"} {
			if f, ok := fc.fonts[lower+suffix]; ok {
				return f
			}
		}
	}
	if f, ok := fc.fonts[lower]; ok && !bold {
		return f
	}
	if bold {
		return fc.bold
	}
	return fc.regular
}

// LoadFont loads a TrueType/OpenType font file and registers it under name.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes. Faces
// already created keep the font they were built from.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	fc.mu.Lock()
	fc.fonts[strings.ToLower(name)] = f
	fc.registerByFamilyName(f)
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		isTTC := strings.HasSuffix(lower, ".ttc") || strings.HasSuffix(lower, ".otc")
		isSingle := strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
		if !isTTC && !isSingle {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		baseName := strings.TrimSuffix(lower, filepath.Ext(lower))
		if isTTC {
			fc.loadCollection(data, baseName)
		} else {
			fc.loadSingleFont(data, baseName)
		}
	}
}

func (fc *FontCache) loadSingleFont(data []byte, baseName string) {
	f, err := opentype.Parse(data)
	if err != nil {
		return
	}
	fc.fonts[baseName] = f
	fc.registerByFamilyName(f)
}

func (fc *FontCache) loadCollection(data []byte, baseName string) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return
	}
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		if i == 0 {
			fc.fonts[baseName] = f
		}
		fc.registerByFamilyName(f)
	}
}

// registerByFamilyName registers f under its family and full names, so
// "Arial" and "Arial Bold" both resolve.
func (fc *FontCache) registerByFamilyName(f *opentype.Font) {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		if _, taken := fc.fonts[strings.ToLower(name)]; !taken {
			fc.fonts[strings.ToLower(name)] = f
		}
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		fc.fonts[strings.ToLower(name)] = f
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
