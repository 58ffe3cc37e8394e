package render

import (
	"image"
	"image/color"
)

// Pattern describes the low-opacity decoration laid over the background
// gradient: a sparse dot lattice and two corner accents.
type Pattern struct {
	Spacing     int
	DotRadius   int
	CornerSize  int
	Tint        color.NRGBA
	DotAlpha    uint8
	CornerAlpha uint8
}

// DefaultPattern is the decoration used by both poster formats.
var DefaultPattern = Pattern{
	Spacing:     50,
	DotRadius:   5,
	CornerSize:  150,
	Tint:        color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	DotAlpha:    20,
	CornerAlpha: 30,
}

// DrawPattern blends the pattern into canvas in place. Dots sit on every
// lattice point (i, j) with (i+j) divisible by twice the spacing; the corner
// accents are right triangles in the top-left and bottom-right corners.
func DrawPattern(canvas *image.RGBA, p Pattern, workers int) {
	bounds := canvas.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dot := WithAlpha(p.Tint, p.DotAlpha)
	corner := WithAlpha(p.Tint, p.CornerAlpha)
	r2 := p.DotRadius * p.DotRadius

	forEachRowRange(height, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				inCorner := p.CornerSize > 0 && (x+y < p.CornerSize || (width-1-x)+(height-1-y) < p.CornerSize)
				inDot := p.Spacing > 0 && onDot(x, y, width, height, p.Spacing, r2)
				if !inCorner && !inDot {
					continue
				}
				px := bounds.Min.X + x
				py := bounds.Min.Y + y
				c := pixAt(canvas, px, py)
				if inCorner {
					c = Over(c, corner)
				}
				if inDot {
					c = Over(c, dot)
				}
				setPix(canvas.Pix[canvas.PixOffset(px, py):], c)
			}
		}
	})
}

func onDot(x, y, width, height, spacing, r2 int) bool {
	gx := (x + spacing/2) / spacing * spacing
	gy := (y + spacing/2) / spacing * spacing
	if gx >= width || gy >= height || (gx+gy)%(2*spacing) != 0 {
		return false
	}
	dx, dy := x-gx, y-gy
	return dx*dx+dy*dy <= r2
}
