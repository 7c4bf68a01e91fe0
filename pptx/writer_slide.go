package pptx

import (
	"archive/zip"
	"fmt"
	"math"
	"strings"

	goshapes "github.com/VantageDataChat/GoShapes"
)

// xfrm is a shape transform in EMU.
type xfrm struct {
	x, y, cx, cy int64
	flipH, flipV bool
}

// toXfrm converts a box in inches to EMU. Negative extents, which only
// lines carry, are normalized into a positive box with the matching flip.
func toXfrm(r goshapes.Rect, flipV bool) xfrm {
	t := xfrm{
		x:     goshapes.InchToEMU(r.MinX()),
		y:     goshapes.InchToEMU(r.MinY()),
		cx:    goshapes.InchToEMU(math.Abs(r.W)),
		cy:    goshapes.InchToEMU(math.Abs(r.H)),
		flipH: r.W < 0,
		flipV: flipV,
	}
	if r.H < 0 {
		t.flipV = !t.flipV
	}
	return t
}

func (t xfrm) attrs() string {
	var sb strings.Builder
	if t.flipH {
		sb.WriteString(` flipH="1"`)
	}
	if t.flipV {
		sb.WriteString(` flipV="1"`)
	}
	return sb.String()
}

func prstGeom(p goshapes.Primitive) string {
	switch p {
	case goshapes.PrimitiveEllipse:
		return "ellipse"
	case goshapes.PrimitiveTriangle:
		return "triangle"
	case goshapes.PrimitiveLine:
		return "line"
	}
	return "rect"
}

func (w *packageWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape

	for _, it := range slide.items {
		if it.group != nil {
			shapesXML.WriteString(w.writeGroupShapeXML(it.group, &shapeID))
			continue
		}
		shapesXML.WriteString(w.writeCommandXML(it.cmd, &shapeID))
	}

	// Background XML
	bgXML := ""
	if slide.background != nil {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += writeFillXML(goshapes.SolidFill(*slide.background))
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *packageWriter) writeCommandXML(c goshapes.Command, shapeID *int) string {
	switch c := c.(type) {
	case goshapes.ShapeCommand:
		if c.Primitive == goshapes.PrimitiveLine {
			return w.writeLineShapeXML(c, shapeID)
		}
		return w.writeAutoShapeXML(c, shapeID)
	case goshapes.TextCommand:
		return w.writeTextBoxXML(c, shapeID)
	}
	return ""
}

// --- Auto Shape XML ---

func (w *packageWriter) writeAutoShapeXML(s goshapes.ShapeCommand, shapeID *int) string {
	id := *shapeID
	*shapeID++

	t := toXfrm(s.Bounds, s.FlipV)
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
      </p:sp>
`, id, fmt.Sprintf("Shape %d", id),
		t.attrs(),
		t.x, t.y, t.cx, t.cy,
		prstGeom(s.Primitive),
		writeFillXML(s.Fill), writeOutlineXML(s.Outline))
}

// --- Line Shape XML ---

func (w *packageWriter) writeLineShapeXML(s goshapes.ShapeCommand, shapeID *int) string {
	id := *shapeID
	*shapeID++

	t := toXfrm(s.Bounds, s.FlipV)
	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="line">
            <a:avLst/>
          </a:prstGeom>
%s        </p:spPr>
      </p:cxnSp>
`, id, fmt.Sprintf("Line %d", id),
		t.attrs(),
		t.x, t.y, t.cx, t.cy,
		writeOutlineXML(s.Outline))
}

// --- Text Box XML ---

func (w *packageWriter) writeTextBoxXML(tc goshapes.TextCommand, shapeID *int) string {
	id := *shapeID
	*shapeID++

	t := toXfrm(tc.Bounds, false)
	algn := tc.Align
	if algn == "" {
		algn = goshapes.HorizontalLeft
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
          <a:noFill/>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square" lIns="0" tIns="0" rIns="0" bIns="0" anchor="ctr"/>
          <a:lstStyle/>
          <a:p>
            <a:pPr algn="%s"/>
%s          </a:p>
        </p:txBody>
      </p:sp>
`, id, fmt.Sprintf("TextBox %d", id),
		t.x, t.y, t.cx, t.cy,
		algn, writeTextRunXML(tc.Text, tc.Font))
}

func writeTextRunXML(text string, font goshapes.Font) string {
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, int(math.Round(font.Size*100)))
	if font.Bold {
		attrs += ` b="1"`
	}

	latin := ""
	if font.Name != "" {
		latin = fmt.Sprintf(`
                <a:latin typeface="%s"/>`, xmlEscape(font.Name))
	}

	return fmt.Sprintf(`            <a:r>
              <a:rPr%s>
                <a:solidFill><a:srgbClr val="%s"/></a:solidFill>%s
              </a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, attrs, colorRGB(font.Color), latin, xmlEscape(text))
}

// --- Group Shape XML ---

func (w *packageWriter) writeGroupShapeXML(g *group, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := g.name
	if name == "" {
		name = fmt.Sprintf("Group %d", id)
	}

	var childXML strings.Builder
	for _, c := range g.cmds {
		childXML.WriteString(w.writeCommandXML(c, shapeID))
	}

	// Children are placed in slide coordinates, so the child frame equals
	// the group frame.
	t := toXfrm(g.bounds(), false)
	return fmt.Sprintf(`      <p:grpSp>
        <p:nvGrpSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGrpSpPr/>
          <p:nvPr/>
        </p:nvGrpSpPr>
        <p:grpSpPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
            <a:chOff x="%d" y="%d"/>
            <a:chExt cx="%d" cy="%d"/>
          </a:xfrm>
        </p:grpSpPr>
%s      </p:grpSp>
`, id, xmlEscape(name),
		t.x, t.y, t.cx, t.cy,
		t.x, t.y, t.cx, t.cy,
		childXML.String())
}

// --- Fill and Outline ---

func writeFillXML(f goshapes.Fill) string {
	switch f.Type {
	case goshapes.FillSolid:
		if f.Transparency > 0 {
			alpha := (100 - min(f.Transparency, 100)) * 1000
			return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"><a:alpha val=\"%d\"/></a:srgbClr></a:solidFill>\n",
				colorRGB(f.Color), alpha)
		}
		return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>\n", colorRGB(f.Color))
	default:
		return "          <a:noFill/>\n"
	}
}

func writeOutlineXML(o goshapes.Outline) string {
	if !o.Visible() {
		return "          <a:ln><a:noFill/></a:ln>\n"
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill></a:ln>\n",
		goshapes.PointToEMU(o.Width), colorRGB(o.Color))
}
