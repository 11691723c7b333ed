package svg

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pcbtools/netsvg/pkg/board"
	"github.com/pcbtools/netsvg/pkg/plot"
)

const sampleBody = `<g data-layer="F.Cu">
<path d="M10 10 L20 10" style="fill:none; stroke:#C83434; stroke-width:0.25; stroke-linecap:round"/>
<circle cx="20" cy="10" r="0.4" style="fill:#C83434; stroke:none"/>
</g>
`

// trackOnlyBody has no filled element; tracks and graphic items carry the
// plot color in stroke declarations only.
const trackOnlyBody = `<g data-layer="F.Cu">
<path d="M10 10 L20 10" style="fill:none; stroke:#C83434; stroke-width:0.25; stroke-linecap:round"/>
<path d="M20 10 L20 20" style="fill:none; stroke:#C83434; stroke-width:0.25; stroke-linecap:round"/>
</g>
`

func TestDetectColor(t *testing.T) {
	c, ok := DetectColor([]byte(sampleBody))
	if !ok || c != "#C83434" {
		t.Errorf("got %q (%v), want #C83434", c, ok)
	}
	if _, ok := DetectColor([]byte(`<rect style="fill:#000000"/>`)); ok {
		t.Error("black must not be detected as the plot color")
	}
	if _, ok := DetectColor([]byte(`<rect/>`)); ok {
		t.Error("no color to detect")
	}
}

func TestDetectColorStrokeOnly(t *testing.T) {
	c, ok := DetectColor([]byte(trackOnlyBody))
	if !ok || c != "#C83434" {
		t.Errorf("got %q (%v), want #C83434 from stroke declarations", c, ok)
	}
	if _, ok := DetectColor([]byte(`<path style="fill:none; stroke:#000000"/>`)); ok {
		t.Error("black stroke must not be detected as the plot color")
	}
}

func TestRecolorStrokeOnly(t *testing.T) {
	out, err := Recolor([]byte(trackOnlyBody), "#00FF00")
	if err != nil {
		t.Fatalf("recolor: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "#C83434") || strings.Contains(s, "#c83434") {
		t.Errorf("plot color survived in stroke-only fragment:\n%s", s)
	}
	if strings.Count(s, "#00FF00") != 2 {
		t.Errorf("want both strokes recolored:\n%s", s)
	}
}

func TestClassifyStrokeOnly(t *testing.T) {
	out, err := Classify([]byte(trackOnlyBody), "net-gnd-f-cu")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "#C83434") {
		t.Errorf("plot color must be stripped:\n%s", s)
	}
	if strings.Count(s, `class="net-gnd-f-cu"`) != 2 {
		t.Errorf("both stroked elements should carry the class:\n%s", s)
	}
}

func TestRecolor(t *testing.T) {
	out, err := Recolor([]byte(sampleBody), "#FF0000")
	if err != nil {
		t.Fatalf("recolor: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "#C83434") || strings.Contains(s, "#c83434") {
		t.Errorf("old color survived:\n%s", s)
	}
	if strings.Count(s, "#FF0000") != 2 {
		t.Errorf("want both stroke and fill recolored:\n%s", s)
	}
}

func TestRecolorInvalidColor(t *testing.T) {
	if _, err := Recolor([]byte(sampleBody), "red"); err == nil {
		t.Fatal("expected error for non-hex color")
	}
}

func TestRecolorNoDetectableColor(t *testing.T) {
	body := []byte(`<g><rect style="fill:#000000"/></g>`)
	out, err := Recolor(body, "#FF0000")
	if err != nil {
		t.Fatalf("recolor: %v", err)
	}
	if string(out) != string(body) {
		t.Error("body without detectable color must pass through unchanged")
	}
}

func TestClassify(t *testing.T) {
	out, err := Classify([]byte(sampleBody), "net-gnd-f-cu")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "#C83434") {
		t.Errorf("plot color must be stripped:\n%s", s)
	}
	if strings.Count(s, `class="net-gnd-f-cu"`) != 2 {
		t.Errorf("both elements should carry the class:\n%s", s)
	}
}

func TestClassNamer(t *testing.T) {
	n := NewClassNamer()
	tests := []struct {
		net, layer string
		want       string
	}{
		{"GND", "F.Cu", "net-gnd-f-cu"},
		{"Net-(U1-VCC)", "F.Cu", "net-net-u1-vcc-f-cu"},
		{"GND", "B.Cu", "net-gnd-b-cu"},
		{"A/B signal", "F.Cu", "net-a-b-signal-f-cu"},
	}
	for _, tt := range tests {
		if got := n.Assign(tt.net, tt.layer); got != tt.want {
			t.Errorf("Assign(%q, %q) = %q, want %q", tt.net, tt.layer, got, tt.want)
		}
	}
}

func TestClassNamerCollisions(t *testing.T) {
	n := NewClassNamer()
	a := n.Assign("SIG.1", "F.Cu")
	b := n.Assign("SIG_1", "F.Cu")
	c := n.Assign("SIG 1", "F.Cu")
	if a != "net-sig-1-f-cu" {
		t.Errorf("first = %q", a)
	}
	if b != "net-sig-1-f-cu-2" || c != "net-sig-1-f-cu-3" {
		t.Errorf("collisions = %q, %q, want numeric suffixes", b, c)
	}
}

func TestClassNamerEmptyNet(t *testing.T) {
	n := NewClassNamer()
	if got := n.Assign("///", ""); got != "net-unknown-net" {
		t.Errorf("got %q", got)
	}
}

func frag(layer, body string, canvas board.Rect) *plot.Fragment {
	return &plot.Fragment{Layer: layer, Canvas: canvas, Body: []byte(body)}
}

func TestMergeZOrder(t *testing.T) {
	canvas := board.Rect{MinX: 0, MinY: 0, MaxX: 50, MaxY: 50}
	frags := map[string][]*plot.Fragment{
		"F.Cu": {frag("F.Cu", `<g data-layer="F.Cu"><path d="M1 1 L2 2"/></g>`, canvas)},
		"B.Cu": {frag("B.Cu", `<g data-layer="B.Cu"><path d="M3 3 L4 4"/></g>`, canvas)},
	}
	out, err := Merge(frags, []string{"F.Cu", "B.Cu"}, MergeOptions{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	s := string(out)
	front := strings.Index(s, `data-layer="F.Cu"`)
	back := strings.Index(s, `data-layer="B.Cu"`)
	if front == -1 || back == -1 {
		t.Fatalf("missing layer groups:\n%s", s)
	}
	// last-declared layer must paint later and therefore sit visually on top
	if back < front {
		t.Error("B.Cu must come after F.Cu in document order (visually on top)")
	}
}

func TestMergeBackgroundUnderlay(t *testing.T) {
	canvas := board.Rect{MaxX: 50, MaxY: 50}
	frags := map[string][]*plot.Fragment{
		"F.Cu": {frag("F.Cu", `<g data-layer="F.Cu"/>`, canvas)},
	}
	out, err := Merge(frags, []string{"F.Cu"}, MergeOptions{Background: "#282A36"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	s := string(out)
	bg := strings.Index(s, `fill="#282A36"`)
	layer := strings.Index(s, `data-layer="F.Cu"`)
	if bg == -1 {
		t.Fatalf("missing background rect:\n%s", s)
	}
	if bg > layer {
		t.Error("background must paint before all layers")
	}
}

func TestMergeStyleBlock(t *testing.T) {
	canvas := board.Rect{MaxX: 10, MaxY: 10}
	frags := map[string][]*plot.Fragment{
		"F.Cu": {frag("F.Cu", `<g/>`, canvas)},
	}
	out, err := Merge(frags, []string{"F.Cu"}, MergeOptions{Styles: []ClassStyle{
		{Class: "net-vcc-f-cu", Color: "#0000FF"},
		{Class: "net-gnd-f-cu", Color: "#FF0000"},
	}})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, ".net-gnd-f-cu {") || !strings.Contains(s, "fill: #FF0000;") {
		t.Errorf("missing class rule:\n%s", s)
	}
	// sorted for determinism
	if strings.Index(s, ".net-gnd-f-cu") > strings.Index(s, ".net-vcc-f-cu") {
		t.Error("style rules must be sorted by class name")
	}
}

func TestMergeEmptyFragments(t *testing.T) {
	canvas := board.Rect{MaxX: 50, MaxY: 50}
	out, err := Merge(map[string][]*plot.Fragment{}, []string{"F.Cu"},
		MergeOptions{Canvas: canvas, Background: "#282A36"})
	if err != nil {
		t.Fatalf("merge without fragments: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, `<?xml`) || !strings.Contains(s, "</svg>") {
		t.Fatalf("not a complete SVG document:\n%s", s)
	}
	if !strings.Contains(s, `viewBox="0 0 50 50"`) {
		t.Errorf("canvas must come from the merge options:\n%s", s)
	}
	if !strings.Contains(s, `fill="#282A36"`) {
		t.Errorf("background underlay missing:\n%s", s)
	}
	if strings.Contains(s, "data-layer") {
		t.Errorf("no geometry expected:\n%s", s)
	}
}

func TestMergeCanvasMismatch(t *testing.T) {
	frags := map[string][]*plot.Fragment{
		"F.Cu": {frag("F.Cu", `<g/>`, board.Rect{MaxX: 50, MaxY: 50})},
		"B.Cu": {frag("B.Cu", `<g/>`, board.Rect{MaxX: 60, MaxY: 40})},
	}
	if _, err := Merge(frags, []string{"F.Cu", "B.Cu"}, MergeOptions{}); err == nil {
		t.Fatal("expected merge failure for disagreeing canvases")
	}
}

func TestMergeDeterministic(t *testing.T) {
	canvas := board.Rect{MaxX: 50, MaxY: 50}
	frags := map[string][]*plot.Fragment{
		"F.Cu": {frag("F.Cu", `<g data-layer="F.Cu"/>`, canvas)},
		"B.Cu": {frag("B.Cu", `<g data-layer="B.Cu"/>`, canvas)},
	}
	opts := MergeOptions{Background: "#FFFFFF", Styles: []ClassStyle{{Class: "net-a", Color: "#FF0000"}}}
	a, err := Merge(frags, []string{"F.Cu", "B.Cu"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Merge(frags, []string{"F.Cu", "B.Cu"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("merge output must be byte identical across runs")
	}
}

func TestMetadataShape(t *testing.T) {
	m := NewMetadata([]string{"F.Cu", "B.Cu"})
	m.AddClass("GND", "#FF0000", "F.Cu", "net-gnd-f-cu")
	m.AddClass("GND", "#FF0000", "B.Cu", "net-gnd-b-cu")
	m.AddClass("VCC", "#0000FF", "F.Cu", "net-vcc-f-cu")

	data, err := m.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded struct {
		CopperLayers []string `json:"copper_layers"`
		Nets         map[string]struct {
			Color      string            `json:"color"`
			CSSClasses map[string]string `json:"css_classes"`
		} `json:"nets"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.CopperLayers) != 2 || decoded.CopperLayers[0] != "F.Cu" {
		t.Errorf("copper_layers = %v", decoded.CopperLayers)
	}
	gnd := decoded.Nets["GND"]
	if gnd.Color != "#FF0000" || gnd.CSSClasses["B.Cu"] != "net-gnd-b-cu" {
		t.Errorf("GND = %+v", gnd)
	}

	again, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Error("metadata encoding must be deterministic")
	}
}
