package layout

import "image"

// Cursor is the top-down insertion point of a vertical stack. Draw steps
// take a Cursor by value and return the advanced one, so the stack order
// is visible in the code that builds it.
type Cursor struct {
	X int
	Y int
}

// At returns a cursor at (x, y).
func At(x, y int) Cursor { return Cursor{X: x, Y: y} }

// Advance returns the cursor moved down by dy.
func (c Cursor) Advance(dy int) Cursor {
	c.Y += dy
	return c
}

// MoveTo returns the cursor at row y, keeping X.
func (c Cursor) MoveTo(y int) Cursor {
	c.Y = y
	return c
}

// Placement names an element and the rectangle it occupies.
type Placement struct {
	Name string
	Rect image.Rectangle
}

// Record collects the placements of one composed canvas.
type Record struct {
	Placements []Placement
}

// Add appends a placement. A nil Record ignores the call.
func (r *Record) Add(name string, rect image.Rectangle) {
	if r == nil {
		return
	}
	r.Placements = append(r.Placements, Placement{Name: name, Rect: rect})
}

// Find returns the first placement with the given name.
func (r *Record) Find(name string) (Placement, bool) {
	if r == nil {
		return Placement{}, false
	}
	for _, p := range r.Placements {
		if p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Overlaps reports the first pair of placements whose rectangles intersect.
func (r *Record) Overlaps() (a, b Placement, ok bool) {
	if r == nil {
		return Placement{}, Placement{}, false
	}
	for i := range r.Placements {
		for j := i + 1; j < len(r.Placements); j++ {
			if r.Placements[i].Rect.Overlaps(r.Placements[j].Rect) {
				return r.Placements[i], r.Placements[j], true
			}
		}
	}
	return Placement{}, Placement{}, false
}
