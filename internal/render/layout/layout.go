// Package layout holds the small geometry helpers the poster templates use
// to place elements: rectangle splitting, tile grids and a top-down cursor.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	leftWidthPx = clampInt(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// Center returns the center point of rect, rounding towards Min.
func Center(rect image.Rectangle) image.Point {
	rect = Normalize(rect)
	return image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
}

// CenteredRect returns a width x height rectangle centered on c.
func CenteredRect(c image.Point, width, height int) image.Rectangle {
	minX := c.X - width/2
	minY := c.Y - height/2
	return image.Rect(minX, minY, minX+width, minY+height)
}

// Tiles lays out cols x rows square tiles of size tile separated by gap,
// centered on c, in row-major order.
func Tiles(c image.Point, cols, rows, tile, gap int) []image.Rectangle {
	if cols <= 0 || rows <= 0 || tile <= 0 {
		return nil
	}
	if gap < 0 {
		gap = 0
	}
	width := cols*tile + (cols-1)*gap
	height := rows*tile + (rows-1)*gap
	origin := CenteredRect(c, width, height).Min

	out := make([]image.Rectangle, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := origin.X + col*(tile+gap)
			y := origin.Y + row*(tile+gap)
			out = append(out, image.Rect(x, y, x+tile, y+tile))
		}
	}
	return out
}

// Union returns the smallest rectangle containing every rect.
func Union(rects []image.Rectangle) image.Rectangle {
	var out image.Rectangle
	for _, r := range rects {
		out = out.Union(r)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
