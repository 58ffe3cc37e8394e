package theme

import (
	"testing"

	"github.com/wordsolverx/postermaker/internal/render"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"wordle", "Wordle", true},
		{"QUORDLE", "Quordle", true},
		{" Semantle ", "Semantle", true},
		{"phoodle", "Phoodle", true},
		{"colordle", "Colordle", true},
		{"crossword", "Wordle", false},
		{"", "Wordle", false},
	}
	for _, tt := range tests {
		th, ok := Lookup(tt.key)
		if th.Name != tt.want || ok != tt.wantOK {
			t.Errorf("Lookup(%q) = %s, %v; want %s, %v", tt.key, th.Name, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPalette(t *testing.T) {
	th, _ := Lookup("wordle")
	if render.Hex(th.Start) != "#6aaa64" || render.Hex(th.End) != "#538d4e" {
		t.Errorf("wordle gradient = %s..%s", render.Hex(th.Start), render.Hex(th.End))
	}
	for _, th := range All() {
		if th.Start == th.End {
			t.Errorf("%s: flat gradient", th.Key)
		}
		if th.Start.A != 0xFF || th.End.A != 0xFF || th.Accent.A != 0xFF {
			t.Errorf("%s: translucent palette entry", th.Key)
		}
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	want := []string{"colordle", "phoodle", "quordle", "semantle", "wordle"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %s, want %s", i, keys[i], want[i])
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	th, _ := Lookup("wordle")
	th.Name = "changed"
	again, _ := Lookup("wordle")
	if again.Name != "Wordle" {
		t.Error("registry entry was mutated through a lookup result")
	}
}
