// Package pptx is a goshapes sink that writes PowerPoint presentation files
// (.pptx) following the Office Open XML (OOXML) standard.
//
// Each Slide implements goshapes.Sink and goshapes.Grouper, so a renderer
// can draw straight into it; every multi-face figure lands in its own
// group shape.
package pptx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	goshapes "github.com/VantageDataChat/GoShapes"
)

// Layout is the slide size in EMU.
type Layout struct {
	CX int64
	CY int64
}

// Layout16x9 is the 10 x 5.625 inch widescreen layout.
var Layout16x9 = Layout{CX: goshapes.InchToEMU(10), CY: goshapes.InchToEMU(5.625)}

// DocumentProperties holds the standard document properties written to
// docProps/core.xml.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Company        string
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "GoShapes",
		LastModifiedBy: "GoShapes",
		Created:        now,
		Modified:       now,
	}
}

// Deck is an in-memory presentation made of shape slides.
type Deck struct {
	properties *DocumentProperties
	layout     Layout
	slides     []*Slide
}

// New creates an empty 16:9 deck.
func New() *Deck {
	return &Deck{
		properties: NewDocumentProperties(),
		layout:     Layout16x9,
	}
}

// Properties returns the document properties for editing.
func (d *Deck) Properties() *DocumentProperties { return d.properties }

// SetLayout sets the slide size in drawing units (inches).
func (d *Deck) SetLayout(widthIn, heightIn float64) {
	d.layout = Layout{CX: goshapes.InchToEMU(widthIn), CY: goshapes.InchToEMU(heightIn)}
}

// CreateSlide appends a new blank slide and returns it.
func (d *Deck) CreateSlide() *Slide {
	s := &Slide{}
	d.slides = append(d.slides, s)
	return s
}

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int { return len(d.slides) }

// Validate checks the deck for structural issues and returns an error
// describing all problems found, or nil.
func (d *Deck) Validate() error {
	var errs []string

	if d.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	if d.layout.CX <= 0 {
		errs = append(errs, "layout width (CX) must be positive")
	}
	if d.layout.CY <= 0 {
		errs = append(errs, "layout height (CY) must be positive")
	}
	if len(d.slides) == 0 {
		errs = append(errs, "presentation must have at least one slide")
	}
	for i, s := range d.slides {
		if s == nil {
			errs = append(errs, fmt.Sprintf("slide %d: is nil", i+1))
			continue
		}
		if s.open != nil {
			errs = append(errs, fmt.Sprintf("slide %d: group %q was never ended", i+1, s.open.name))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// item is one top-level entry of a slide's shape tree: either a single
// command or a group.
type item struct {
	cmd   goshapes.Command
	group *group
}

// group bundles the commands of one figure.
type group struct {
	name string
	cmds []goshapes.Command
}

// bounds returns the union extent of the group's commands.
func (g *group) bounds() goshapes.Rect {
	b := g.cmds[0].Extent()
	for _, c := range g.cmds[1:] {
		b = b.Union(c.Extent())
	}
	return b
}

// Slide is one slide of a Deck.
type Slide struct {
	background *goshapes.Color
	items      []item
	open       *group
}

// SetBackground sets a solid background color.
func (s *Slide) SetBackground(c goshapes.Color) {
	s.background = &c
}

// AddShape implements goshapes.Sink.
func (s *Slide) AddShape(cmd goshapes.ShapeCommand) { s.add(cmd) }

// AddText implements goshapes.Sink.
func (s *Slide) AddText(cmd goshapes.TextCommand) { s.add(cmd) }

func (s *Slide) add(c goshapes.Command) {
	if s.open != nil {
		s.open.cmds = append(s.open.cmds, c)
		return
	}
	s.items = append(s.items, item{cmd: c})
}

// BeginGroup implements goshapes.Grouper. Commands added until EndGroup
// become children of one group shape. Groups do not nest; a second
// BeginGroup ends the first.
func (s *Slide) BeginGroup(name string) {
	if s.open != nil {
		s.EndGroup()
	}
	s.open = &group{name: name}
}

// EndGroup implements goshapes.Grouper. An empty group is dropped.
func (s *Slide) EndGroup() {
	g := s.open
	s.open = nil
	if g == nil || len(g.cmds) == 0 {
		return
	}
	s.items = append(s.items, item{group: g})
}

// ShapeCount returns the number of top-level entries (groups count once).
func (s *Slide) ShapeCount() int { return len(s.items) }

var errOutOfRange = errors.New("index out of range")

// RemoveShape removes a top-level entry by index.
func (s *Slide) RemoveShape(index int) error {
	if index < 0 || index >= len(s.items) {
		return errOutOfRange
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}
