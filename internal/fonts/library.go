package fonts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// faceFactory builds a new face at the given size from parsed font data.
type faceFactory func(size float64) (font.Face, error)

type acquisition struct {
	done    chan struct{}
	factory faceFactory
	err     error
}

// Library is the Provider used in production. Font data for each family is
// loaded and parsed at most once; concurrent first requests share a single
// acquisition. An acquisition that ends because its context expired is not
// remembered, so a later caller with a live context tries again.
type Library struct {
	Logger *slog.Logger

	sources map[Family]Source

	mu       sync.Mutex
	acquired map[Family]*acquisition
}

func NewLibrary(sources map[Family]Source) *Library {
	copied := make(map[Family]Source, len(sources))
	for family, src := range sources {
		copied[family] = src
	}
	return &Library{sources: copied, acquired: make(map[Family]*acquisition)}
}

func (l *Library) Resolve(ctx context.Context, style Style) (font.Face, error) {
	if style.Size <= 0 {
		return nil, fmt.Errorf("resolve %s: size must be positive", style)
	}
	factory, err := l.acquire(ctx, style.Family)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", style, err)
	}
	return factory(style.Size)
}

// Warm loads every configured family so later renders skip first-use latency.
func (l *Library) Warm(ctx context.Context) error {
	var errs []error
	for family := range l.sources {
		if _, err := l.acquire(ctx, family); err != nil {
			errs = append(errs, fmt.Errorf("warm %s: %w", family, err))
		}
	}
	return errors.Join(errs...)
}

func (l *Library) acquire(ctx context.Context, family Family) (faceFactory, error) {
	for {
		l.mu.Lock()
		acq, ok := l.acquired[family]
		if !ok {
			acq = &acquisition{done: make(chan struct{})}
			l.acquired[family] = acq
			l.mu.Unlock()

			acq.factory, acq.err = l.load(ctx, family)
			if isContextErr(acq.err) {
				l.mu.Lock()
				delete(l.acquired, family)
				l.mu.Unlock()
			}
			close(acq.done)
			return acq.factory, acq.err
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-acq.done:
		}
		if isContextErr(acq.err) {
			continue
		}
		return acq.factory, acq.err
	}
}

func (l *Library) load(ctx context.Context, family Family) (faceFactory, error) {
	src, ok := l.sources[family]
	if !ok {
		return nil, fmt.Errorf("no source configured for family %q", family)
	}
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	factory, err := parseFont(data)
	if err != nil {
		return nil, err
	}
	if l.Logger != nil {
		l.Logger.Debug("font family loaded", "family", string(family), "bytes", len(data))
	}
	return factory, nil
}

// parseFont prefers freetype's TrueType parser and falls back to the sfnt
// parser for CFF-flavoured OpenType files.
func parseFont(data []byte) (faceFactory, error) {
	if tt, err := truetype.Parse(data); err == nil {
		return func(size float64) (font.Face, error) {
			return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
		}, nil
	}
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return func(size float64) (font.Face, error) {
		return opentype.NewFace(ot, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
