package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/wordsolverx/postermaker/internal/fonts"
)

func TestVariantFor(t *testing.T) {
	tests := map[string]IconVariant{
		"wordle":    IconSolve,
		"Quordle":   IconQuad,
		"COLORDLE":  IconSpectrum,
		"semantle":  IconSimilarity,
		" phoodle ": IconFood,
		"crossword": IconNone,
		"":          IconNone,
	}
	for topic, want := range tests {
		if got := VariantFor(topic); got != want {
			t.Errorf("VariantFor(%q) = %s, want %s", topic, got, want)
		}
	}
}

func TestIconTileSizeClamps(t *testing.T) {
	tests := []struct {
		topic     string
		requested int
		want      int
	}{
		{"wordle", 40, 80},
		{"wordle", 85, 85},
		{"wordle", 200, 90},
		{"semantle", 84, 84},
		{"quordle", 60, 120},
		{"quordle", 300, 300},
		{"unknown", 100, 0},
	}
	for _, tt := range tests {
		if got := IconTileSize(tt.topic, tt.requested); got != tt.want {
			t.Errorf("IconTileSize(%q, %d) = %d, want %d", tt.topic, tt.requested, got, tt.want)
		}
	}
}

func TestDrawIconBounds(t *testing.T) {
	faces := IconFaces{Letter: testFace(t, fonts.Bold, 48), Label: testFace(t, fonts.Bold, 32)}
	tests := []struct {
		topic     string
		requested int
		w, h      int
	}{
		{"wordle", 96, 5*90 + 4*14, 90},
		{"colordle", 50, 5*80 + 4*14, 80},
		{"semantle", 84, 5*84 + 4*14, 84},
		{"phoodle", 90, 5*90 + 4*14, 90},
		{"quordle", 96, 2*120 + 14, 2*120 + 14},
	}
	for _, tt := range tests {
		canvas := solidCanvas(1000, 600, navy)
		rect := DrawIcon(canvas, 500, 300, tt.topic, tt.requested, 14, faces)
		if rect.Dx() != tt.w || rect.Dy() != tt.h {
			t.Errorf("%s: icon %v is %dx%d, want %dx%d", tt.topic, rect, rect.Dx(), rect.Dy(), tt.w, tt.h)
		}
		center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		if center.X < 499 || center.X > 501 || center.Y < 299 || center.Y > 301 {
			t.Errorf("%s: icon centered at %v, want (500,300)", tt.topic, center)
		}
		for y := 0; y < 600; y++ {
			for x := 0; x < 1000; x++ {
				if pixAt(canvas, x, y) != navy && !image.Pt(x, y).In(rect.Inset(-1)) {
					t.Fatalf("%s: pixel (%d,%d) drawn outside %v", tt.topic, x, y, rect)
				}
			}
		}
	}
}

func TestDrawIconUnknownTopic(t *testing.T) {
	canvas := solidCanvas(200, 200, navy)
	rect := DrawIcon(canvas, 100, 100, "crossword", 80, 10, IconFaces{})
	if !rect.Empty() {
		t.Errorf("unknown topic returned %v, want empty", rect)
	}
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if pixAt(canvas, x, y) != navy {
				t.Fatalf("unknown topic drew at (%d,%d)", x, y)
			}
		}
	}
}

func TestDrawIconTileColors(t *testing.T) {
	canvas := solidCanvas(1000, 400, navy)
	rect := DrawIcon(canvas, 500, 200, "wordle", 90, 14, IconFaces{})
	// Sample near each tile's top-left, inside the rounded corner but away
	// from the centered letter.
	for i, want := range solveTiles {
		x := rect.Min.X + i*(90+14) + 20
		y := rect.Min.Y + 8
		if got := pixAt(canvas, x, y); got != want {
			t.Errorf("tile %d color = %v, want %v", i, got, want)
		}
	}
}

func TestSimilarityIntensifies(t *testing.T) {
	canvas := solidCanvas(1000, 400, navy)
	rect := DrawIcon(canvas, 500, 200, "semantle", 90, 14, IconFaces{})
	prev := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF}
	for i := 0; i < 5; i++ {
		c := pixAt(canvas, rect.Min.X+i*(90+14)+12, rect.Min.Y+12)
		if int(c.R)+int(c.G) >= int(prev.R)+int(prev.G) {
			t.Errorf("tile %d (%v) is not deeper than tile %d (%v)", i, c, i-1, prev)
		}
		prev = c
	}
}

func TestSpectrumOutline(t *testing.T) {
	canvas := solidCanvas(1000, 400, navy)
	rect := DrawIcon(canvas, 500, 200, "colordle", 80, 14, IconFaces{})
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	// Middle of the first tile's top edge is outline, its center is fill.
	if got := pixAt(canvas, rect.Min.X+40, rect.Min.Y+1); got != white {
		t.Errorf("outline pixel = %v, want white", got)
	}
	if got := pixAt(canvas, rect.Min.X+40, rect.Min.Y+40); got != rainbow[0] {
		t.Errorf("fill pixel = %v, want %v", got, rainbow[0])
	}
}

func TestIconStyles(t *testing.T) {
	letter, label := IconStyles("wordle", 200)
	if letter.Size != 90*0.55 || letter.Family != fonts.Bold {
		t.Errorf("letter style = %v", letter)
	}
	if label.Size >= letter.Size {
		t.Errorf("label %v should be smaller than letter %v", label, letter)
	}
}
