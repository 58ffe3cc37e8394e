package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidDimensions is returned when a canvas would have no pixels.
var ErrInvalidDimensions = errors.New("canvas dimensions must be positive")

// Direction selects the axis along which a gradient interpolates.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
	Diagonal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Diagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps a direction name back to its value.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	case "diagonal":
		return Diagonal, nil
	}
	return Vertical, fmt.Errorf("unknown gradient direction %q", name)
}

// Gradient returns a new opaque width x height canvas filled with a linear
// interpolation from start to end. Rows are filled by up to workers
// goroutines; the result does not depend on the worker count.
func Gradient(width, height int, start, end color.NRGBA, dir Direction, workers int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gradient %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))

	forEachRowRange(height, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+width*4]
			if dir == Vertical {
				c := interpolate(start, end, float64(y)/float64(height))
				for x := 0; x < width; x++ {
					setPix(row[x*4:], c)
				}
				continue
			}
			for x := 0; x < width; x++ {
				var t float64
				if dir == Horizontal {
					t = float64(x) / float64(width)
				} else {
					t = float64(x+y) / float64(width+height)
				}
				setPix(row[x*4:], interpolate(start, end, t))
			}
		}
	})
	return canvas, nil
}

func interpolate(start, end color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{R: lerp(start.R, end.R, t), G: lerp(start.G, end.G, t), B: lerp(start.B, end.B, t), A: 0xFF}
}

func setPix(p []byte, c color.NRGBA) {
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 0xFF
}

func pixAt(canvas *image.RGBA, x, y int) color.NRGBA {
	i := canvas.PixOffset(x, y)
	p := canvas.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}
