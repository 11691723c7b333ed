package sexpr

import (
	"strings"
	"testing"
)

func TestParseString(t *testing.T) {
	node, err := ParseString(`(net 1 "GND")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !node.IsList() {
		t.Fatal("expected list")
	}
	if got := node.Key(); got != "net" {
		t.Errorf("key = %q, want %q", got, "net")
	}
	if got := node.Arg(0); got != "1" {
		t.Errorf("arg 0 = %q, want %q", got, "1")
	}
	if got := node.Arg(1); got != "GND" {
		t.Errorf("arg 1 = %q, want %q", got, "GND")
	}
}

func TestParseNested(t *testing.T) {
	input := `(kicad_pcb
		(version 20240108)
		(net 0 "")
		(net 1 "GND")
		(segment (start 10 20) (end 30 40) (width 0.25) (layer "F.Cu") (net 1))
	)`
	node, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := node.Key(); got != "kicad_pcb" {
		t.Fatalf("key = %q", got)
	}

	nets := node.FindAll("net")
	if len(nets) != 2 {
		t.Fatalf("got %d nets, want 2", len(nets))
	}
	if got := nets[1].Arg(1); got != "GND" {
		t.Errorf("net name = %q, want GND", got)
	}

	seg := node.Find("segment")
	if seg == nil {
		t.Fatal("segment not found")
	}
	start := seg.Find("start")
	x, err := start.FloatArg(0)
	if err != nil {
		t.Fatalf("x: %v", err)
	}
	if x != 10 {
		t.Errorf("x = %v, want 10", x)
	}
	w, err := seg.Find("width").FloatArg(0)
	if err != nil || w != 0.25 {
		t.Errorf("width = %v (%v), want 0.25", w, err)
	}
	code, err := seg.Find("net").IntArg(0)
	if err != nil || code != 1 {
		t.Errorf("net code = %d (%v), want 1", code, err)
	}
}

func TestQuotedEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(name "plain")`, "plain"},
		{`(name "with \"quotes\"")`, `with "quotes"`},
		{`(name "tab\there")`, "tab\there"},
		{`(name "back\\slash")`, `back\slash`},
		{`(name "Net-(U1-VCC)")`, "Net-(U1-VCC)"},
	}
	for _, tt := range tests {
		node, err := ParseString(tt.input)
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if got := node.Arg(0); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestComments(t *testing.T) {
	input := "# header comment\n(board # trailing\n (rev 2))\n"
	node, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := node.Key(); got != "board" {
		t.Errorf("key = %q", got)
	}
	rev, err := node.Find("rev").IntArg(0)
	if err != nil || rev != 2 {
		t.Errorf("rev = %d (%v)", rev, err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unterminated list", "(kicad_pcb (net 1"},
		{"unterminated string", `(net 1 "GND`},
		{"stray close", ")"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestLineNumbers(t *testing.T) {
	input := "(a\n  (b 1)\n  (c 2))"
	node, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := node.Find("c").Line; got != 3 {
		t.Errorf("line = %d, want 3", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	node, err := ParseString(`(net 1 "GND")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := node.String()
	again, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reparse %q: %v", out, err)
	}
	if again.Arg(1) != "GND" {
		t.Errorf("round trip lost quoted atom: %q", out)
	}
}
