// Package theme is the static registry of puzzle topics and their colors.
package theme

import (
	"image/color"
	"sort"
	"strings"

	"github.com/wordsolverx/postermaker/internal/render"
)

// DefaultKey is the topic used when a lookup misses.
const DefaultKey = "wordle"

// Theme is the palette of one topic.
type Theme struct {
	Key   string
	Name  string
	Start color.NRGBA
	End   color.NRGBA
	// Accent colors the title text and the date box.
	Accent color.NRGBA
}

// Primary is the start color of the gradient.
func (t Theme) Primary() color.NRGBA { return t.Start }

var registry = map[string]Theme{
	"wordle":   {Key: "wordle", Name: "Wordle", Start: render.MustHex("#6aaa64"), End: render.MustHex("#538d4e"), Accent: render.MustHex("#c9b458")},
	"quordle":  {Key: "quordle", Name: "Quordle", Start: render.MustHex("#9b59b6"), End: render.MustHex("#8e44ad"), Accent: render.MustHex("#f1c40f")},
	"colordle": {Key: "colordle", Name: "Colordle", Start: render.MustHex("#e74c3c"), End: render.MustHex("#c0392b"), Accent: render.MustHex("#2c3e50")},
	"semantle": {Key: "semantle", Name: "Semantle", Start: render.MustHex("#3498db"), End: render.MustHex("#2980b9"), Accent: render.MustHex("#1a5276")},
	"phoodle":  {Key: "phoodle", Name: "Phoodle", Start: render.MustHex("#f39c12"), End: render.MustHex("#e67e22"), Accent: render.MustHex("#27ae60")},
}

// Lookup returns the theme for key, ignoring case and surrounding space.
// A miss returns the default theme and ok=false.
func Lookup(key string) (Theme, bool) {
	t, ok := registry[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return registry[DefaultKey], false
	}
	return t, true
}

// Keys returns the registered topic keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every theme, sorted by key.
func All() []Theme {
	keys := Keys()
	out := make([]Theme, 0, len(keys))
	for _, k := range keys {
		out = append(out, registry[k])
	}
	return out
}
