package render

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

var (
	testStart = color.NRGBA{R: 0x6a, G: 0xaa, B: 0x64, A: 0xFF}
	testEnd   = color.NRGBA{R: 0x53, G: 0x8d, B: 0x4e, A: 0xFF}
)

func TestGradientInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := Gradient(dims[0], dims[1], testStart, testEnd, Vertical, 1)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Gradient(%d,%d) err = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestGradientEndpoints(t *testing.T) {
	canvas, err := Gradient(100, 200, testStart, testEnd, Vertical, 4)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	if got := pixAt(canvas, 50, 0); got != testStart {
		t.Errorf("top row = %v, want %v", got, testStart)
	}
	bottom := pixAt(canvas, 50, 199)
	if !closeTo(bottom, testEnd, 1) {
		t.Errorf("bottom row = %v, want ~%v", bottom, testEnd)
	}
}

func TestGradientMonotonic(t *testing.T) {
	black := color.NRGBA{A: 0xFF}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 0xFF}
	for _, dir := range []Direction{Vertical, Horizontal, Diagonal} {
		canvas, err := Gradient(64, 48, black, white, dir, 3)
		if err != nil {
			t.Fatalf("Gradient(%s): %v", dir, err)
		}
		prev := -1
		for i := 0; i < 48; i++ {
			var c color.NRGBA
			switch dir {
			case Vertical:
				c = pixAt(canvas, 10, i)
			case Horizontal:
				c = pixAt(canvas, i, 10)
			case Diagonal:
				c = pixAt(canvas, i, i)
			}
			if int(c.R) < prev {
				t.Fatalf("%s: channel decreased at step %d (%d < %d)", dir, i, c.R, prev)
			}
			prev = int(c.R)
		}
	}
}

func TestGradientMidpoint(t *testing.T) {
	a := color.NRGBA{R: 10, G: 200, B: 40, A: 0xFF}
	b := color.NRGBA{R: 250, G: 0, B: 90, A: 0xFF}
	canvas, err := Gradient(100, 100, a, b, Horizontal, 2)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	mid := pixAt(canvas, 50, 0)
	want := color.NRGBA{R: 130, G: 100, B: 65, A: 0xFF}
	if !closeTo(mid, want, 1) {
		t.Errorf("midpoint = %v, want ~%v", mid, want)
	}
}

func TestGradientWorkerCountIndependent(t *testing.T) {
	one, err := Gradient(120, 90, testStart, testEnd, Diagonal, 1)
	if err != nil {
		t.Fatal(err)
	}
	many, err := Gradient(120, 90, testStart, testEnd, Diagonal, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(one.Pix, many.Pix) {
		t.Error("gradient output differs between 1 and 7 workers")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{Vertical, Horizontal, Diagonal} {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("radial"); err == nil {
		t.Error("expected error for radial")
	}
}

func closeTo(a, b color.NRGBA, tolerance int) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(a.R, b.R) <= tolerance && diff(a.G, b.G) <= tolerance && diff(a.B, b.B) <= tolerance
}
