package goshapes

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidGeometry is returned when a descriptor has sizes that cannot
// be drawn.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Validate checks the descriptor for geometry problems and returns an
// error wrapping ErrInvalidGeometry describing all of them, or nil.
func (d Descriptor) Validate() error {
	var errs []string

	if _, ok := kindNames[d.Kind]; !ok {
		errs = append(errs, fmt.Sprintf("unknown kind %d", int(d.Kind)))
	}
	if !finite(d.Origin.X) || !finite(d.Origin.Y) {
		errs = append(errs, "origin is not finite")
	}

	switch {
	case d.Kind == KindLine:
		if !finite(d.Width) || !finite(d.Height) {
			errs = append(errs, "line extent is not finite")
		} else if d.Width == 0 && d.Height == 0 {
			errs = append(errs, "line has zero length")
		}
	case d.Kind.singleSize():
		if !finite(d.Width) || d.Width <= 0 {
			errs = append(errs, fmt.Sprintf("size must be positive, got %g", d.Width))
		}
	default:
		if !finite(d.Width) || d.Width <= 0 {
			errs = append(errs, fmt.Sprintf("width must be positive, got %g", d.Width))
		}
		if !finite(d.Height) || d.Height <= 0 {
			errs = append(errs, fmt.Sprintf("height must be positive, got %g", d.Height))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s:\n  %s", ErrInvalidGeometry, d.Kind, strings.Join(errs, "\n  "))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
