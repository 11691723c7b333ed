package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestParseNetColorsLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			"project layout",
			`{"net_settings": {"net_colors": {"GND": "red", "VCC": "#0000FF"}}}`,
			2,
		},
		{
			"top-level net_colors",
			`{"net_colors": {"GND": "green"}}`,
			1,
		},
		{
			"bare mapping",
			`{"GND": "red", "SIG*": "rgb(255,255,0)"}`,
			2,
		},
		{
			"empty object",
			`{}`,
			0,
		},
		{
			"net_settings without colors",
			`{"net_settings": {"classes": []}}`,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := ParseNetColors([]byte(tt.input), nil)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(rs) != tt.want {
				t.Errorf("got %d rules, want %d: %+v", len(rs), tt.want, rs)
			}
		})
	}
}

func TestParseNetColorsPreservesOrder(t *testing.T) {
	input := `{
		// wildcard declared before the more specific entry
		"SIG*": "yellow",
		"SIGNAL1": "blue",
	}`
	rs, err := ParseNetColors([]byte(input), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rs) != 2 || rs[0].Pattern != "SIG*" || rs[1].Pattern != "SIGNAL1" {
		t.Fatalf("order lost: %+v", rs)
	}
	c, ok := rs.Resolve("SIGNAL1")
	if !ok || c != "#FFFF00" {
		t.Errorf("got %q, want first-declared wildcard color", c)
	}
}

func TestParseNetColorsSkipsInvalid(t *testing.T) {
	input := `{"GND": "red", "BAD": "notacolor", "NUM": 42, "VCC": "blue"}`
	rs, err := ParseNetColors([]byte(input), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("got %d rules, want 2 (invalid entries skipped): %+v", len(rs), rs)
	}
	if rs[0].Pattern != "GND" || rs[1].Pattern != "VCC" {
		t.Errorf("rules = %+v", rs)
	}
}

func TestParseNetColorsComments(t *testing.T) {
	input := `{
		// board power rails
		"VCC": "red", /* trailing comment */
	}`
	rs, err := ParseNetColors([]byte(input), nil)
	if err != nil {
		t.Fatalf("parse with comments: %v", err)
	}
	if len(rs) != 1 || rs[0].Color != "#FF0000" {
		t.Errorf("rules = %+v", rs)
	}
}

func TestParseNetColorsMalformed(t *testing.T) {
	if _, err := ParseNetColors([]byte(`{"GND": `), nil); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestLoadNetColorsMissingFile(t *testing.T) {
	_, err := LoadNetColors(filepath.Join(t.TempDir(), "nope.json"), testLogger())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDiscoverProject(t *testing.T) {
	dir := t.TempDir()
	board := filepath.Join(dir, "demo.kicad_pcb")
	if _, ok := DiscoverProject(board); ok {
		t.Fatal("no project file exists yet")
	}
	pro := filepath.Join(dir, "demo.kicad_pro")
	if err := os.WriteFile(pro, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok := DiscoverProject(board)
	if !ok || got != pro {
		t.Errorf("got %q (%v), want %q", got, ok, pro)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netsvg.toml")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("missing file should use defaults: %v", err)
	}
	if s.Theme != "dark" {
		t.Errorf("default theme = %q", s.Theme)
	}

	content := "theme = \"light\"\nlayers = \"F.Cu\"\nskip_zones = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Theme != "light" || s.Layers != "F.Cu" || !s.SkipZones {
		t.Errorf("settings = %+v", s)
	}
}
