package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/render/layout"
)

// IconVariant is one of the topic glyph groups drawn above the title.
type IconVariant int

const (
	IconNone IconVariant = iota
	IconSolve
	IconQuad
	IconSpectrum
	IconSimilarity
	IconFood
)

func (v IconVariant) String() string {
	switch v {
	case IconSolve:
		return "solve"
	case IconQuad:
		return "quad"
	case IconSpectrum:
		return "spectrum"
	case IconSimilarity:
		return "similarity"
	case IconFood:
		return "food"
	}
	return "none"
}

// TileBand is the inclusive tile-size range of a variant. Max 0 means no
// upper bound.
type TileBand struct {
	Min int
	Max int
}

// Clamp pins size into the band.
func (b TileBand) Clamp(size int) int {
	if size < b.Min {
		return b.Min
	}
	if b.Max > 0 && size > b.Max {
		return b.Max
	}
	return size
}

var (
	rowBand  = TileBand{Min: 80, Max: 90}
	gridBand = TileBand{Min: 120}

	tileLetter      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	spectrumOutline = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	solveTiles = []color.NRGBA{MustHex("#6aaa64"), MustHex("#c9b458"), MustHex("#787c7e"), MustHex("#6aaa64"), MustHex("#6aaa64")}
	quadTiles  = []color.NRGBA{MustHex("#6aaa64"), MustHex("#c9b458"), MustHex("#787c7e"), MustHex("#6aaa64")}
	rainbow    = []color.NRGBA{MustHex("#e74c3c"), MustHex("#f39c12"), MustHex("#f1c40f"), MustHex("#2ecc71"), MustHex("#3498db")}
	foodTiles  = []color.NRGBA{MustHex("#e67e22"), MustHex("#f39c12"), MustHex("#27ae60"), MustHex("#e74c3c"), MustHex("#f1c40f")}

	similarityLow  = MustHex("#aed6f1")
	similarityHigh = MustHex("#1b4f72")
)

// VariantFor maps a topic key to its icon. Unknown keys map to IconNone.
func VariantFor(topic string) IconVariant {
	switch strings.ToLower(strings.TrimSpace(topic)) {
	case "wordle":
		return IconSolve
	case "quordle":
		return IconQuad
	case "colordle":
		return IconSpectrum
	case "semantle":
		return IconSimilarity
	case "phoodle":
		return IconFood
	}
	return IconNone
}

// Band returns the tile-size band for v.
func (v IconVariant) Band() TileBand {
	if v == IconQuad {
		return gridBand
	}
	return rowBand
}

// FiveTile reports whether v is drawn as a single row of five tiles.
func (v IconVariant) FiveTile() bool {
	return v != IconNone && v != IconQuad
}

// IconTileSize returns the tile size DrawIcon will actually use.
func IconTileSize(topic string, requested int) int {
	v := VariantFor(topic)
	if v == IconNone {
		return 0
	}
	return v.Band().Clamp(requested)
}

// IconFaces are the faces used for tile letters and the similarity label.
// Nil faces fall back to the built-in face.
type IconFaces struct {
	Letter font.Face
	Label  font.Face
}

// IconStyles returns the font styles DrawIcon expects in IconFaces for a
// topic at the requested tile size.
func IconStyles(topic string, requested int) (letter, label fonts.Style) {
	tile := float64(IconTileSize(topic, requested))
	if tile == 0 {
		tile = float64(rowBand.Min)
	}
	return fonts.Style{Family: fonts.Bold, Size: tile * 0.55},
		fonts.Style{Family: fonts.Bold, Size: tile * 0.36}
}

// DrawIcon draws the icon for topic centered on (cx, cy) and returns the
// area it covers. Unknown topics draw nothing and return an empty rectangle.
func DrawIcon(canvas *image.RGBA, cx, cy int, topic string, tile, gap int, faces IconFaces) image.Rectangle {
	v := VariantFor(topic)
	if v == IconNone {
		return image.Rectangle{}
	}
	tile = v.Band().Clamp(tile)
	if faces.Letter == nil {
		faces.Letter = fonts.Fallback()
	}
	if faces.Label == nil {
		faces.Label = fonts.Fallback()
	}

	cols, rows := 5, 1
	if v == IconQuad {
		cols, rows = 2, 2
	}
	tiles := layout.Tiles(image.Pt(cx, cy), cols, rows, tile, gap)
	radius := float64(tile) * 0.15
	dc := gg.NewContextForRGBA(canvas)

	for i, r := range tiles {
		fill, letter := tileStyle(v, i, len(tiles))
		fillTile(dc, r, radius, fill)
		if v == IconSpectrum {
			outlineTile(dc, r, radius, 4)
		}
		if letter == "" {
			continue
		}
		face := faces.Letter
		if v == IconSimilarity {
			face = faces.Label
		}
		c := layout.Center(r)
		DrawBoxedText(canvas, face, letter, c.X, c.Y, TextBox{Text: tileLetter})
	}
	return layout.Union(tiles)
}

// tileStyle returns the fill and the letter of tile i.
func tileStyle(v IconVariant, i, n int) (color.NRGBA, string) {
	switch v {
	case IconSolve:
		return solveTiles[i], string("SOLVE"[i])
	case IconQuad:
		return quadTiles[i], string("QUAD"[i])
	case IconSpectrum:
		return rainbow[i], ""
	case IconSimilarity:
		fill := Blend(similarityLow, similarityHigh, float64(i)/float64(n-1))
		if i == n-1 {
			return fill, "100"
		}
		return fill, ""
	case IconFood:
		return foodTiles[i], string("CHEFS"[i])
	}
	return color.NRGBA{}, ""
}

func fillTile(dc *gg.Context, r image.Rectangle, radius float64, fill color.NRGBA) {
	dc.DrawRoundedRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), radius)
	dc.SetColor(fill)
	dc.Fill()
}

// outlineTile strokes inside r so the outline never leaves the tile.
func outlineTile(dc *gg.Context, r image.Rectangle, radius, width float64) {
	half := width / 2
	dc.DrawRoundedRectangle(float64(r.Min.X)+half, float64(r.Min.Y)+half, float64(r.Dx())-width, float64(r.Dy())-width, radius)
	dc.SetColor(spectrumOutline)
	dc.SetLineWidth(width)
	dc.Stroke()
}
