package cli

import (
	"io"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"render", "nets", "layers", "init-config", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestFirstOf(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"first wins", []string{"a", "b"}, "a"},
		{"skips empty", []string{"", "b", "c"}, "b"},
		{"all empty", []string{"", ""}, ""},
		{"no values", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstOf(tt.values...); got != tt.want {
				t.Errorf("firstOf(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestCacheDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/xdg-cache/netsvg" {
		t.Errorf("cacheDir() = %q, want %q", dir, "/tmp/xdg-cache/netsvg")
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/tester")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, "/.cache/netsvg") {
		t.Errorf("cacheDir() = %q, want suffix %q", dir, "/.cache/netsvg")
	}
}

func TestSwatchNotEmpty(t *testing.T) {
	for _, hex := range []string{"#FF0000", "#101010", "#FFFFFF"} {
		if swatch(hex) == "" {
			t.Errorf("swatch(%q) returned empty string", hex)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)

	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want %v", c.Logger.GetLevel(), LogDebug)
	}
}
