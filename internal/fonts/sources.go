package fonts

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Source yields raw SFNT (TTF/OTF) bytes for one family.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]byte, error)

func (f SourceFunc) Load(ctx context.Context) ([]byte, error) { return f(ctx) }

// Bundled serves the Go fonts compiled into the binary.
type Bundled struct {
	Family Family
}

func (b Bundled) Load(context.Context) ([]byte, error) {
	switch b.Family {
	case Bold:
		return gobold.TTF, nil
	case Regular:
		return goregular.TTF, nil
	}
	return nil, fmt.Errorf("no bundled font for family %q", b.Family)
}

// File reads a local TTF, OTF or WOFF2 file.
type File struct {
	Path string
}

func (f File) Load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	return toSFNT(f.Path, data)
}

// DefaultSources maps every family to its bundled Go font.
func DefaultSources() map[Family]Source {
	return map[Family]Source{
		Bold:    Bundled{Family: Bold},
		Regular: Bundled{Family: Regular},
	}
}

// ParseSource builds a Source from a config spec:
//
//	bundled:bold | bundled:regular
//	file:/path/to/font.ttf
//	google:Inter:800
func ParseSource(spec, cacheDir string, client *retryablehttp.Client) (Source, error) {
	kind, rest, ok := strings.Cut(spec, ":")
	if !ok || rest == "" {
		return nil, fmt.Errorf("invalid font source %q: expected kind:value", spec)
	}
	switch kind {
	case "bundled":
		family := Family(rest)
		if family != Bold && family != Regular {
			return nil, fmt.Errorf("invalid font source %q: unknown bundled family", spec)
		}
		return Bundled{Family: family}, nil
	case "file":
		return File{Path: rest}, nil
	case "google":
		family, weight, ok := ParseGoogleSpec(spec)
		if !ok {
			return nil, fmt.Errorf("invalid font source %q: expected google:FAMILY:WEIGHT", spec)
		}
		return &Google{Family: family, Weight: weight, CacheDir: cacheDir, Client: client}, nil
	}
	return nil, fmt.Errorf("invalid font source %q: unknown kind %q", spec, kind)
}
