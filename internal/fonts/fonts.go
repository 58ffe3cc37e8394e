// Package fonts supplies font faces and glyph metrics to the poster renderer.
//
// The renderer never reads font bytes itself. It asks a Provider for a face
// at a given Style and measures strings against that face. Faces are not safe
// for concurrent use, so every Resolve returns a fresh face backed by font
// data that is acquired once and shared read-only.
package fonts

import (
	"context"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Family names a typeface weight known to the provider.
type Family string

const (
	Bold    Family = "bold"
	Regular Family = "regular"
)

// Style is a family at a pixel size (72 DPI, so points equal pixels).
type Style struct {
	Family Family
	Size   float64
}

func (s Style) String() string {
	return fmt.Sprintf("%s@%gpx", s.Family, s.Size)
}

// Provider resolves a Style to a face. Implementations may block on first use
// of a family while its data is loaded.
type Provider interface {
	Resolve(ctx context.Context, style Style) (font.Face, error)
}

// Metrics is the tight pixel bounding box of a rendered string.
// MinX and MinY are the box's offsets from the drawing origin (the baseline
// start); MinY is negative for glyphs that rise above the baseline.
type Metrics struct {
	Width   int
	Height  int
	MinX    int
	MinY    int
	Advance int
}

// Measure returns the ink bounds of text drawn with face.
func Measure(face font.Face, text string) Metrics {
	bounds, advance := font.BoundString(face, text)
	if bounds.Empty() {
		return Metrics{Advance: advance.Ceil()}
	}
	return Metrics{
		Width:   (bounds.Max.X - bounds.Min.X).Ceil(),
		Height:  (bounds.Max.Y - bounds.Min.Y).Ceil(),
		MinX:    bounds.Min.X.Floor(),
		MinY:    bounds.Min.Y.Floor(),
		Advance: advance.Ceil(),
	}
}

// Fallback is the built-in fixed-width face used when no font can be loaded.
func Fallback() font.Face {
	return basicfont.Face7x13
}
