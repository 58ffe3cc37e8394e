package poster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/render/layout"
	"github.com/wordsolverx/postermaker/internal/theme"
)

// BrandText is the site name printed in the brand pill.
const BrandText = "wordsolverx.com"

const (
	captionText = "for"
	ctaText     = "Tap for today's hints & answer"
)

var (
	white        = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	captionColor = color.NRGBA{R: 230, G: 230, B: 230, A: 0xFF}
	ctaFill      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 50}
	brandFill    = color.NRGBA{A: 70}
)

// styleSet lists every style one template draws with.
type styleSet struct {
	title, caption, date, cta, brand fonts.Style
	iconLetter, iconLabel            fonts.Style
}

type faceSet struct {
	title, caption, date, cta, brand font.Face
	icon                             render.IconFaces
}

// scene is the per-render input of a template.
type scene struct {
	topic string
	theme theme.Theme
	date  string
	faces faceSet
}

func (s scene) title() string { return s.theme.Name + " Answer" }

type template struct {
	direction render.Direction
	qrBadge   image.Rectangle
	styles    func(topic string) styleSet
	draw      func(canvas *image.RGBA, s scene, rec *layout.Record)
}

func templateFor(k Kind) template {
	if k == Landscape {
		return landscapeTemplate
	}
	return portraitTemplate
}

// resolveFaces asks the provider for every face up front, so a slow provider
// fails the render before any pixel is drawn. Timeouts are fatal; any other
// provider failure degrades to the fallback face.
func (e *Engine) resolveFaces(ctx context.Context, styles styleSet) (faceSet, error) {
	timeout := e.FontTimeout
	if timeout <= 0 {
		timeout = DefaultFontTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var firstErr error
	get := func(style fonts.Style) font.Face {
		if firstErr != nil {
			return nil
		}
		face, err := e.Fonts.Resolve(rctx, style)
		if err == nil {
			return face
		}
		switch {
		case ctx.Err() != nil:
			firstErr = fmt.Errorf("resolve %s: %w", style, ctx.Err())
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			firstErr = fmt.Errorf("%w: resolve %s after %s: %w", ErrFontTimeout, style, timeout, err)
		default:
			e.logger().Warn("font unavailable, using fallback", "component", "poster", "style", style.String(), "err", err)
			return fonts.Fallback()
		}
		return nil
	}

	set := faceSet{
		title:   get(styles.title),
		caption: get(styles.caption),
		date:    get(styles.date),
		cta:     get(styles.cta),
		brand:   get(styles.brand),
		icon: render.IconFaces{
			Letter: get(styles.iconLetter),
			Label:  get(styles.iconLabel),
		},
	}
	if firstErr != nil {
		return faceSet{}, firstErr
	}
	return set, nil
}

// stackItem is one box of a vertical text stack.
type stackItem struct {
	name string
	text string
	face font.Face
	box  render.TextBox
	// gapBefore adds space above the item on top of render.StackGap.
	gapBefore int
}

// stackHeight is the distance from the top of the first box to the bottom
// of the last one.
func stackHeight(items []stackItem) int {
	total := 0
	for i, it := range items {
		_, h := render.MeasureBox(it.face, it.text, it.box)
		total += h + it.gapBefore
		if i > 0 {
			total += render.StackGap
		}
	}
	return total
}

// drawStack draws items top-down starting with the first box's top at cur.Y
// and returns the cursor below the last box.
func drawStack(canvas *image.RGBA, cur layout.Cursor, items []stackItem, rec *layout.Record) layout.Cursor {
	for _, it := range items {
		cur = drawStacked(canvas, cur.Advance(it.gapBefore), it, rec)
	}
	return cur
}

func drawStacked(canvas *image.RGBA, cur layout.Cursor, it stackItem, rec *layout.Record) layout.Cursor {
	w, h := render.MeasureBox(it.face, it.text, it.box)
	// With cy = top + h/2, DrawBoxedText puts the box top back on cur.Y.
	bottom := render.DrawBoxedText(canvas, it.face, it.text, cur.X, cur.Y+h/2, it.box)
	rec.Add(it.name, layout.CenteredRect(image.Pt(cur.X, cur.Y+h/2), w, h))
	return cur.MoveTo(bottom)
}

// drawBrand draws the brand pill centered on c, independent of any stack.
func drawBrand(canvas *image.RGBA, c image.Point, face font.Face, padX, padY int, rec *layout.Record) {
	box := render.TextBox{Text: white, Fill: brandFill, PadX: padX, PadY: padY}
	w, h := render.MeasureBox(face, BrandText, box)
	box.Radius = float64(h) / 2
	render.DrawBoxedText(canvas, face, BrandText, c.X, c.Y, box)
	rec.Add("brand", layout.CenteredRect(c, w, h))
}
