package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/wordsolverx/postermaker/internal/fonts"
)

const (
	// StackGap is added below every box so callers can stack the next
	// element on the returned Y without extra arithmetic.
	StackGap = 20

	shadowOffset = 6
)

var shadowColor = color.NRGBA{A: 90}

// TextBox describes how a single line of text is boxed.
// A Fill with zero alpha draws the glyphs only.
type TextBox struct {
	Text   color.NRGBA
	Fill   color.NRGBA
	PadX   int
	PadY   int
	Radius float64
}

// MeasureBox returns the size of the box DrawBoxedText would draw.
func MeasureBox(face font.Face, text string, box TextBox) (width, height int) {
	m := fonts.Measure(face, text)
	return m.Width + 2*box.PadX, m.Height + 2*box.PadY
}

// DrawBoxedText draws text with the center of its padded bounding box at
// (cx, cy) and returns the box bottom plus StackGap.
func DrawBoxedText(canvas *image.RGBA, face font.Face, text string, cx, cy int, box TextBox) int {
	m := fonts.Measure(face, text)
	boxW := m.Width + 2*box.PadX
	boxH := m.Height + 2*box.PadY
	left := cx - boxW/2
	top := cy - boxH/2

	if box.Fill.A > 0 {
		dc := gg.NewContextForRGBA(canvas)
		dc.DrawRoundedRectangle(float64(left+shadowOffset), float64(top+shadowOffset), float64(boxW), float64(boxH), box.Radius)
		dc.SetColor(shadowColor)
		dc.Fill()
		dc.DrawRoundedRectangle(float64(left), float64(top), float64(boxW), float64(boxH), box.Radius)
		dc.SetColor(box.Fill)
		dc.Fill()
	}

	if text != "" {
		// The drawing origin sits on the baseline; shift it so the ink box
		// lands exactly inside the padding.
		originX := left + box.PadX - m.MinX
		originY := top + box.PadY - m.MinY
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(box.Text),
			Face: face,
			Dot:  fixed.P(originX, originY),
		}
		d.DrawString(text)
	}

	return top + boxH + StackGap
}
