package poster

import (
	"image"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/render/layout"
)

// Portrait pin, 1000x1500.
const (
	portraitCenterX   = 500
	portraitIconY     = 330
	portraitIconTile  = 96
	portraitIconGap   = 14
	portraitTitleGap  = 70
	portraitCTAGap    = 30
	portraitBrandY    = 1400
	portraitBadgeSize = 132
)

var portraitTemplate = template{
	direction: render.Vertical,
	qrBadge:   image.Rect(40, 1328, 40+portraitBadgeSize, 1328+portraitBadgeSize),
	styles:    portraitStyles,
	draw:      drawPortrait,
}

func portraitStyles(topic string) styleSet {
	letter, label := render.IconStyles(topic, portraitIconTile)
	return styleSet{
		title:      fonts.Style{Family: fonts.Bold, Size: 80},
		caption:    fonts.Style{Family: fonts.Regular, Size: 44},
		date:       fonts.Style{Family: fonts.Bold, Size: 56},
		cta:        fonts.Style{Family: fonts.Regular, Size: 34},
		brand:      fonts.Style{Family: fonts.Bold, Size: 34},
		iconLetter: letter,
		iconLabel:  label,
	}
}

func drawPortrait(canvas *image.RGBA, s scene, rec *layout.Record) {
	icon := render.DrawIcon(canvas, portraitCenterX, portraitIconY, s.topic, portraitIconTile, portraitIconGap, s.faces.icon)
	iconBottom := portraitIconY
	if !icon.Empty() {
		rec.Add("icon", icon)
		iconBottom = icon.Max.Y
	}

	cur := layout.At(portraitCenterX, iconBottom+portraitTitleGap)
	drawStack(canvas, cur, []stackItem{
		{
			name: "title", text: s.title(), face: s.faces.title,
			box: render.TextBox{Text: s.theme.Accent, Fill: white, PadX: 50, PadY: 28, Radius: 24},
		},
		{
			name: "caption", text: captionText, face: s.faces.caption,
			box: render.TextBox{Text: captionColor, PadY: 4},
		},
		{
			name: "date", text: s.date, face: s.faces.date,
			box: render.TextBox{Text: white, Fill: s.theme.Accent, PadX: 44, PadY: 22, Radius: 20},
		},
		{
			name: "cta", text: ctaText, face: s.faces.cta, gapBefore: portraitCTAGap,
			box: render.TextBox{Text: white, Fill: ctaFill, PadX: 36, PadY: 18, Radius: 28},
		},
	}, rec)

	drawBrand(canvas, image.Pt(portraitCenterX, portraitBrandY), s.faces.brand, 40, 16, rec)
}
