// Package poster composes the social images for a puzzle topic: a gradient
// background, a topic icon and a stack of boxed text, encoded as PNG.
//
// An Engine is safe for concurrent use. Each Render owns its canvas; the
// only shared state is the read-only theme table and the font provider.
package poster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/render/layout"
	"github.com/wordsolverx/postermaker/internal/theme"
)

var (
	// ErrUnknownKind is returned for an output kind outside Portrait and Landscape.
	ErrUnknownKind = errors.New("unknown poster kind")
	// ErrFontTimeout is returned when the font provider does not answer
	// within Engine.FontTimeout.
	ErrFontTimeout = errors.New("font provider timed out")
)

// DefaultFontTimeout bounds the font resolution stage of one render.
const DefaultFontTimeout = 10 * time.Second

// Kind is the output format.
type Kind int

const (
	Portrait Kind = iota
	Landscape
)

func (k Kind) String() string {
	switch k {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts "portrait"/"pin" and "landscape"/"card".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait", "pin":
		return Portrait, nil
	case "landscape", "card":
		return Landscape, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Size returns the canvas size of the kind.
func (k Kind) Size() (width, height int, err error) {
	switch k {
	case Portrait:
		return 1000, 1500, nil
	case Landscape:
		return 1200, 628, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

// Gradient overrides the theme's background colors.
type Gradient struct {
	Start color.NRGBA
	End   color.NRGBA
}

// PrimaryGradient builds the two-stop gradient for a single brand color:
// the color itself fading to a 30% darker shade.
func PrimaryGradient(primary color.NRGBA) *Gradient {
	return &Gradient{Start: primary, End: render.Darken(primary, 0.3)}
}

// Request fully determines one poster.
type Request struct {
	Topic string
	// Date is shown as given, e.g. "January 17, 2026".
	Date     string
	Kind     Kind
	Gradient *Gradient
	// Direction overrides the kind's default gradient direction.
	Direction *render.Direction
	// Link, when set, is encoded into a QR badge in the bottom-left corner.
	Link string
}

// Result is a composed canvas and what went into it.
type Result struct {
	Image *image.RGBA
	Theme theme.Theme
	// KnownTopic is false when the request fell back to the default theme.
	KnownTopic bool
	Layout     layout.Record
}

// Engine renders posters.
type Engine struct {
	Fonts fonts.Provider
	// Workers bounds the goroutines used for pixel fills; <= 0 uses GOMAXPROCS.
	Workers     int
	FontTimeout time.Duration
	Logger      *slog.Logger
}

// NewEngine returns an Engine with default settings.
func NewEngine(provider fonts.Provider) *Engine {
	return &Engine{Fonts: provider, FontTimeout: DefaultFontTimeout}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Render composes req into a canvas. No canvas is returned on error.
func (e *Engine) Render(ctx context.Context, req Request) (*Result, error) {
	width, height, err := req.Kind.Size()
	if err != nil {
		return nil, err
	}
	tmpl := templateFor(req.Kind)

	th, known := theme.Lookup(req.Topic)
	if !known {
		e.logger().Warn("unknown topic, using default theme", "topic", req.Topic, "default", th.Key)
	}

	faces, err := e.resolveFaces(ctx, tmpl.styles(req.Topic))
	if err != nil {
		return nil, err
	}

	start, end := th.Start, th.End
	if req.Gradient != nil {
		start, end = req.Gradient.Start, req.Gradient.End
	}
	dir := tmpl.direction
	if req.Direction != nil {
		dir = *req.Direction
	}
	canvas, err := render.Gradient(width, height, start, end, dir, e.Workers)
	if err != nil {
		return nil, err
	}
	render.DrawPattern(canvas, render.DefaultPattern, e.Workers)

	res := &Result{Image: canvas, Theme: th, KnownTopic: known}
	tmpl.draw(canvas, scene{topic: req.Topic, theme: th, date: req.Date, faces: faces}, &res.Layout)

	if req.Link != "" {
		badge := tmpl.qrBadge
		if err := render.DrawQRBadge(canvas, badge, req.Link); err != nil {
			return nil, fmt.Errorf("draw link badge: %w", err)
		}
		res.Layout.Add("qr", badge)
	}
	return res, nil
}

// Compose renders req and encodes it as PNG.
func (e *Engine) Compose(ctx context.Context, req Request) ([]byte, error) {
	res, err := e.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return Encode(res.Image)
}

// Encode writes img as PNG.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
