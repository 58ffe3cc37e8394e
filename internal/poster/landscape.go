package poster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/render/layout"
)

// Landscape card, 1200x628: icon on the left half, text on the right.
const (
	landscapeWidth     = 1200
	landscapeHeight    = 628
	landscapeIconTile  = 96
	landscapeRowShrink = 12
	landscapeIconGap   = 12
	landscapeStackTop  = 40
	landscapeBrandY    = 572
	landscapeBrandGap  = 24
	landscapeCTAGap    = 16
	landscapeBadgeSize = 110
	dividerInset       = 60
	dividerWidth       = 2
)

var dividerColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 60}

var landscapeTemplate = template{
	direction: render.Diagonal,
	qrBadge:   image.Rect(24, 494, 24+landscapeBadgeSize, 494+landscapeBadgeSize),
	styles:    landscapeStyles,
	draw:      drawLandscape,
}

// landscapeIconRequest asks for smaller tiles for the five-tile rows so they
// fit the half width; the variant's band still applies.
func landscapeIconRequest(topic string) int {
	if render.VariantFor(topic).FiveTile() {
		return landscapeIconTile - landscapeRowShrink
	}
	return landscapeIconTile
}

func landscapeStyles(topic string) styleSet {
	letter, label := render.IconStyles(topic, landscapeIconRequest(topic))
	return styleSet{
		title:      fonts.Style{Family: fonts.Bold, Size: 50},
		caption:    fonts.Style{Family: fonts.Regular, Size: 30},
		date:       fonts.Style{Family: fonts.Bold, Size: 40},
		cta:        fonts.Style{Family: fonts.Regular, Size: 24},
		brand:      fonts.Style{Family: fonts.Bold, Size: 24},
		iconLetter: letter,
		iconLabel:  label,
	}
}

func drawLandscape(canvas *image.RGBA, s scene, rec *layout.Record) {
	iconHalf, textHalf := layout.SplitVertical(image.Rect(0, 0, landscapeWidth, landscapeHeight), landscapeWidth/2)

	dc := gg.NewContextForRGBA(canvas)
	dc.SetColor(dividerColor)
	dc.SetLineWidth(dividerWidth)
	dc.DrawLine(float64(textHalf.Min.X), dividerInset, float64(textHalf.Min.X), float64(landscapeHeight-dividerInset))
	dc.Stroke()

	ic := layout.Center(iconHalf)
	icon := render.DrawIcon(canvas, ic.X, ic.Y, s.topic, landscapeIconRequest(s.topic), landscapeIconGap, s.faces.icon)
	if !icon.Empty() {
		rec.Add("icon", icon)
	}

	items := []stackItem{
		{
			name: "title", text: s.title(), face: s.faces.title,
			box: render.TextBox{Text: s.theme.Accent, Fill: white, PadX: 36, PadY: 20, Radius: 18},
		},
		{
			name: "caption", text: captionText, face: s.faces.caption,
			box: render.TextBox{Text: captionColor, PadY: 2},
		},
		{
			name: "date", text: s.date, face: s.faces.date,
			box: render.TextBox{Text: white, Fill: s.theme.Accent, PadX: 30, PadY: 16, Radius: 16},
		},
		{
			name: "cta", text: ctaText, face: s.faces.cta, gapBefore: landscapeCTAGap,
			box: render.TextBox{Text: white, Fill: ctaFill, PadX: 26, PadY: 12, Radius: 20},
		},
	}

	brandBox := render.TextBox{PadX: 30, PadY: 12}
	_, brandH := render.MeasureBox(s.faces.brand, BrandText, brandBox)
	areaBottom := landscapeBrandY - brandH/2 - landscapeBrandGap

	center := layout.Center(textHalf)
	top := landscapeStackTop + (areaBottom-landscapeStackTop-stackHeight(items))/2
	if top < landscapeStackTop {
		top = landscapeStackTop
	}
	drawStack(canvas, layout.At(center.X, top), items, rec)

	drawBrand(canvas, image.Pt(center.X, landscapeBrandY), s.faces.brand, brandBox.PadX, brandBox.PadY, rec)
}
