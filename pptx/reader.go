package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	goshapes "github.com/VantageDataChat/GoShapes"
)

// Summary describes a deck read back from a PPTX package.
type Summary struct {
	Title  string
	Width  float64 // inches
	Height float64 // inches
	Slides []SlideSummary
}

// SlideSummary lists what one slide contains.
type SlideSummary struct {
	Part       string
	Background string          // hex color, empty when the slide has none
	Groups     []string        // group names in document order
	Geometry   map[string]int  // preset geometry name -> count, text boxes excluded
	Outlines   map[float64]int // outline width in points -> count
	Texts      []string        // text body contents in document order
}

// Shapes returns the total number of preset-geometry shapes on the slide.
func (s SlideSummary) Shapes() int {
	n := 0
	for _, c := range s.Geometry {
		n += c
	}
	return n
}

// maxZipEntrySize is the maximum size of a single part read from a package.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the maximum size of a package.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of parts allowed in a package.
const maxZipEntries = 10000

// Inspect reads a PPTX file from disk and summarizes it.
func Inspect(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return ReadSummary(f, info.Size())
}

// ReadSummary summarizes a PPTX package read from r.
func ReadSummary(r io.ReaderAt, size int64) (*Summary, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > maxZipTotalSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}
	parts := zipIndex(zr)

	sum := &Summary{}
	// Missing core properties are acceptable.
	sum.Title, _ = readCoreTitle(parts)

	slideRels, err := readPresentation(parts, sum)
	if err != nil {
		return nil, err
	}
	presRels, err := readRelationships(parts, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(presRels))
	for _, rel := range presRels {
		targets[rel.ID] = rel.Target
	}

	for _, id := range slideRels {
		target, ok := targets[id]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", id)
		}
		part := path.Join("ppt", target)
		s, err := readSlide(parts, part)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", part, err)
		}
		sum.Slides = append(sum.Slides, s)
	}
	return sum, nil
}

// zipIndex builds a map from part name to *zip.File.
func zipIndex(zr *zip.Reader) map[string]*zip.File {
	m := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		m[f.Name] = f
	}
	return m
}

func readFileFromZip(parts map[string]*zip.File, name string) ([]byte, error) {
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxZipEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if len(data) > maxZipEntrySize {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	return data, nil
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

func readRelationships(parts map[string]*zip.File, name string) ([]xmlRelForRead, error) {
	data, err := readFileFromZip(parts, name)
	if err != nil {
		return nil, err
	}
	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", name, err)
	}
	return rels.Relationships, nil
}

func readCoreTitle(parts map[string]*zip.File) (string, error) {
	data, err := readFileFromZip(parts, "docProps/core.xml")
	if err != nil {
		return "", err
	}
	var core struct {
		Title string `xml:"http://purl.org/dc/elements/1.1/ title"`
	}
	if err := xml.Unmarshal(data, &core); err != nil {
		return "", fmt.Errorf("failed to parse core properties: %w", err)
	}
	return core.Title, nil
}

// readPresentation fills the page size and returns the slide relationship
// IDs in presentation order.
func readPresentation(parts map[string]*zip.File, sum *Summary) ([]string, error) {
	data, err := readFileFromZip(parts, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var pres struct {
		SldSz struct {
			Cx int64 `xml:"cx,attr"`
			Cy int64 `xml:"cy,attr"`
		} `xml:"sldSz"`
		SldIDs []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := xml.Unmarshal(data, &pres); err != nil {
		return nil, fmt.Errorf("failed to parse presentation: %w", err)
	}
	sum.Width = goshapes.EMUToInch(pres.SldSz.Cx)
	sum.Height = goshapes.EMUToInch(pres.SldSz.Cy)

	ids := make([]string, 0, len(pres.SldIDs))
	for _, s := range pres.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func readSlide(parts map[string]*zip.File, part string) (SlideSummary, error) {
	s := SlideSummary{Part: part, Geometry: make(map[string]int), Outlines: make(map[float64]int)}
	data, err := readFileFromZip(parts, part)
	if err != nil {
		return s, err
	}

	var (
		inBg, inText, namePending, textBox bool
		body                               *strings.Builder
	)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s, fmt.Errorf("failed to parse slide XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "bg":
				inBg = true
			case "srgbClr":
				if inBg {
					s.Background = strings.ToLower(attr(t, "val"))
				}
			case "sp", "cxnSp":
				textBox = false
			case "cNvSpPr":
				textBox = attr(t, "txBox") == "1"
			case "grpSp":
				namePending = true
			case "cNvPr":
				if namePending {
					s.Groups = append(s.Groups, attr(t, "name"))
					namePending = false
				}
			case "prstGeom":
				if !textBox {
					s.Geometry[attr(t, "prst")]++
				}
			case "ln":
				if w := attr(t, "w"); w != "" {
					emu, err := strconv.ParseInt(w, 10, 64)
					if err != nil {
						return s, fmt.Errorf("invalid outline width %q: %w", w, err)
					}
					s.Outlines[goshapes.EMUToPoint(emu)]++
				}
			case "txBody":
				body = &strings.Builder{}
			case "t":
				inText = body != nil
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "bg":
				inBg = false
			case "t":
				inText = false
			case "txBody":
				if body != nil && body.Len() > 0 {
					s.Texts = append(s.Texts, body.String())
				}
				body = nil
			}
		case xml.CharData:
			if inText {
				body.Write(t)
			}
		}
	}
	return s, nil
}

// String formats the summary one slide per line.
func (sum *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q %sx%s in, %d slides\n", sum.Title,
		strconv.FormatFloat(sum.Width, 'f', -1, 64),
		strconv.FormatFloat(sum.Height, 'f', -1, 64), len(sum.Slides))
	for i, s := range sum.Slides {
		fmt.Fprintf(&b, "  slide %d: %d shapes, %d groups, %d texts", i+1, s.Shapes(), len(s.Groups), len(s.Texts))
		if s.Background != "" {
			fmt.Fprintf(&b, ", background #%s", s.Background)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
