package poster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"golang.org/x/image/font"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/theme"
)

var sharedFonts = fonts.NewLibrary(fonts.DefaultSources())

func newTestEngine() *Engine {
	e := NewEngine(sharedFonts)
	e.Workers = 4
	e.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return e
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func near(a, b color.NRGBA, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol
}

func TestComposePortraitEndToEnd(t *testing.T) {
	data, err := newTestEngine().Compose(context.Background(), Request{Topic: "wordle", Date: "January 17, 2026", Kind: Portrait})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1000 || b.Dy() != 1500 {
		t.Fatalf("size = %v, want 1000x1500", b)
	}
	wordle, _ := theme.Lookup("wordle")
	// x=525 stays clear of the dot lattice and the corner accents.
	if got := nrgbaAt(img, 525, 0); got != wordle.Start {
		t.Errorf("top row = %v, want %v", got, wordle.Start)
	}
	if got := nrgbaAt(img, 525, 1499); !near(got, wordle.End, 1) {
		t.Errorf("bottom row = %v, want about %v", got, wordle.End)
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	e := newTestEngine()
	for _, kind := range []Kind{Portrait, Landscape} {
		req := Request{Topic: "quordle", Date: "March 3, 2026", Kind: kind, Link: "https://wordsolverx.com/quordle-answer-for-march-03-2026"}
		first, err := e.Compose(context.Background(), req)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		second, err := e.Compose(context.Background(), req)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("%s: two renders of the same request differ", kind)
		}
	}
}

func TestWorkerCountDoesNotChangeOutput(t *testing.T) {
	one := newTestEngine()
	one.Workers = 1
	many := newTestEngine()
	many.Workers = 16
	req := Request{Topic: "semantle", Date: "May 1, 2026", Kind: Landscape}
	a, err := one.Compose(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := many.Compose(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("output depends on worker count")
	}
}

func TestUnknownTopicLandscape(t *testing.T) {
	res, err := newTestEngine().Render(context.Background(), Request{Topic: "unknown_topic", Date: "May 1, 2099", Kind: Landscape})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.KnownTopic || res.Theme.Key != theme.DefaultKey {
		t.Errorf("theme = %s known=%v, want default fallback", res.Theme.Key, res.KnownTopic)
	}
	if _, ok := res.Layout.Find("icon"); ok {
		t.Error("unknown topic placed an icon")
	}
	if b := res.Image.Bounds(); b.Dx() != 1200 || b.Dy() != 628 {
		t.Errorf("size = %v", b)
	}

	// The icon half must be plain background.
	bg, err := render.Gradient(1200, 628, res.Theme.Start, res.Theme.End, render.Diagonal, 1)
	if err != nil {
		t.Fatal(err)
	}
	render.DrawPattern(bg, render.DefaultPattern, 1)
	region := image.Rect(60, 100, 540, 520)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if res.Image.RGBAAt(x, y) != bg.RGBAAt(x, y) {
				t.Fatalf("icon region changed at (%d,%d)", x, y)
			}
		}
	}
}

func TestPortraitStackOrder(t *testing.T) {
	e := newTestEngine()
	dates := []string{"May 1, 2026", "September 30, 2026", ""}
	order := []string{"icon", "title", "caption", "date", "cta", "brand"}
	for _, topic := range theme.Keys() {
		for _, date := range dates {
			res, err := e.Render(context.Background(), Request{Topic: topic, Date: date, Kind: Portrait})
			if err != nil {
				t.Fatalf("%s %q: %v", topic, date, err)
			}
			prevY := -1
			for _, name := range order {
				p, ok := res.Layout.Find(name)
				if !ok {
					t.Fatalf("%s %q: no %s placement", topic, date, name)
				}
				if p.Rect.Min.Y <= prevY {
					t.Errorf("%s %q: %s top %d not below previous %d", topic, date, name, p.Rect.Min.Y, prevY)
				}
				prevY = p.Rect.Min.Y
			}
			if a, b, overlap := res.Layout.Overlaps(); overlap {
				t.Errorf("%s %q: %s %v overlaps %s %v", topic, date, a.Name, a.Rect, b.Name, b.Rect)
			}
			for _, p := range res.Layout.Placements {
				if !p.Rect.In(res.Image.Bounds()) {
					t.Errorf("%s %q: %s %v leaves the canvas", topic, date, p.Name, p.Rect)
				}
			}
		}
	}
}

func TestPortraitTitleSitsBelowIcon(t *testing.T) {
	res, err := newTestEngine().Render(context.Background(), Request{Topic: "wordle", Date: "May 1, 2026", Kind: Portrait})
	if err != nil {
		t.Fatal(err)
	}
	icon, _ := res.Layout.Find("icon")
	title, _ := res.Layout.Find("title")
	if gap := title.Rect.Min.Y - icon.Rect.Max.Y; gap != portraitTitleGap {
		t.Errorf("icon to title gap = %d, want %d", gap, portraitTitleGap)
	}
	brand, _ := res.Layout.Find("brand")
	if c := (brand.Rect.Min.Y + brand.Rect.Max.Y) / 2; c < portraitBrandY-1 || c > portraitBrandY+1 {
		t.Errorf("brand center y = %d, want %d", c, portraitBrandY)
	}
}

func TestLandscapeColumns(t *testing.T) {
	e := newTestEngine()
	for _, topic := range theme.Keys() {
		res, err := e.Render(context.Background(), Request{Topic: topic, Date: "December 25, 2026", Kind: Landscape})
		if err != nil {
			t.Fatalf("%s: %v", topic, err)
		}
		left := image.Rect(0, 0, 600, 628)
		right := image.Rect(600, 0, 1200, 628)
		for _, p := range res.Layout.Placements {
			half := right
			if p.Name == "icon" {
				half = left
			}
			if !p.Rect.In(half) {
				t.Errorf("%s: %s %v outside its half %v", topic, p.Name, p.Rect, half)
			}
		}
		if a, b, overlap := res.Layout.Overlaps(); overlap {
			t.Errorf("%s: %s overlaps %s", topic, a.Name, b.Name)
		}
		icon, ok := res.Layout.Find("icon")
		if !ok {
			t.Fatalf("%s: no icon", topic)
		}
		if c := (icon.Rect.Min.Y + icon.Rect.Max.Y) / 2; c < 313 || c > 315 {
			t.Errorf("%s: icon center y = %d, want 314", topic, c)
		}
		if render.VariantFor(topic).FiveTile() && icon.Rect.Dy() != 84 {
			t.Errorf("%s: landscape tile = %d, want 84", topic, icon.Rect.Dy())
		}
	}
}

func TestRequestOverrides(t *testing.T) {
	start := color.NRGBA{R: 10, G: 200, B: 90, A: 0xFF}
	dir := render.Horizontal
	res, err := newTestEngine().Render(context.Background(), Request{
		Topic:     "phoodle",
		Date:      "June 2, 2026",
		Kind:      Portrait,
		Gradient:  PrimaryGradient(start),
		Direction: &dir,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := render.Blend(start, render.Darken(start, 0.3), 525.0/1000.0)
	got := nrgbaAt(res.Image, 525, 0)
	if got != want {
		t.Errorf("horizontal gradient at x=525 = %v, want %v", got, want)
	}
	// Horizontal: the same column has the same color at top and bottom.
	if bottom := nrgbaAt(res.Image, 525, 1499); bottom != got {
		t.Errorf("column color changed along y: %v vs %v", got, bottom)
	}
}

func TestPrimaryGradient(t *testing.T) {
	g := PrimaryGradient(render.MustHex("#6aaa64"))
	if want := render.Darken(render.MustHex("#6aaa64"), 0.3); g.End != want {
		t.Errorf("end = %v, want %v", g.End, want)
	}
}

func TestLinkBadge(t *testing.T) {
	for _, kind := range []Kind{Portrait, Landscape} {
		res, err := newTestEngine().Render(context.Background(), Request{Topic: "colordle", Date: "July 4, 2026", Kind: kind, Link: "https://wordsolverx.com/colordle-answer-for-july-04-2026"})
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		p, ok := res.Layout.Find("qr")
		if !ok {
			t.Fatalf("%s: no qr placement", kind)
		}
		if got := nrgbaAt(res.Image, (p.Rect.Min.X+p.Rect.Max.X)/2, p.Rect.Min.Y+3); got != white {
			t.Errorf("%s: badge edge = %v, want white", kind, got)
		}
		if a, b, overlap := res.Layout.Overlaps(); overlap {
			t.Errorf("%s: %s overlaps %s", kind, a.Name, b.Name)
		}
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := newTestEngine().Render(context.Background(), Request{Topic: "wordle", Kind: Kind(7)})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"portrait": Portrait, "PIN": Portrait, "landscape": Landscape, " card": Landscape} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("square"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

type blockingProvider struct{}

func (blockingProvider) Resolve(ctx context.Context, _ fonts.Style) (font.Face, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type failingProvider struct{}

func (failingProvider) Resolve(context.Context, fonts.Style) (font.Face, error) {
	return nil, errors.New("font file missing")
}

func TestFontTimeoutFailsRender(t *testing.T) {
	e := newTestEngine()
	e.Fonts = blockingProvider{}
	e.FontTimeout = 20 * time.Millisecond

	res, err := e.Render(context.Background(), Request{Topic: "wordle", Date: "May 1, 2026", Kind: Portrait})
	if !errors.Is(err, ErrFontTimeout) {
		t.Fatalf("err = %v, want ErrFontTimeout", err)
	}
	if res != nil {
		t.Error("partial result returned on timeout")
	}
}

func TestCancelledContextFailsRender(t *testing.T) {
	e := newTestEngine()
	e.Fonts = blockingProvider{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Compose(ctx, Request{Topic: "wordle", Kind: Portrait}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMissingFontFallsBack(t *testing.T) {
	e := newTestEngine()
	e.Fonts = failingProvider{}
	res, err := e.Render(context.Background(), Request{Topic: "semantle", Date: "May 1, 2026", Kind: Portrait})
	if err != nil {
		t.Fatalf("Render with failing provider: %v", err)
	}
	if _, ok := res.Layout.Find("title"); !ok {
		t.Error("title not drawn with fallback face")
	}
}

func TestConcurrentRendersMatchSequential(t *testing.T) {
	e := newTestEngine()
	keys := theme.Keys()
	want := make(map[string][]byte, len(keys))
	for _, k := range keys {
		data, err := e.Compose(context.Background(), Request{Topic: k, Date: "August 8, 2026", Kind: Landscape})
		if err != nil {
			t.Fatal(err)
		}
		want[k] = data
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	got := make(map[string][]byte, len(keys))
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			data, err := e.Compose(context.Background(), Request{Topic: k, Date: "August 8, 2026", Kind: Landscape})
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			got[k] = data
			mu.Unlock()
		}(k)
	}
	wg.Wait()
	for _, k := range keys {
		if !bytes.Equal(got[k], want[k]) {
			t.Errorf("%s: concurrent render differs from sequential", k)
		}
	}
}
