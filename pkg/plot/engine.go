// Package plot turns board views into per-layer SVG fragments. The pipeline
// treats the engine as a black box behind the Engine interface; the built-in
// implementation draws copper and graphic primitives directly.
package plot

import (
	"context"
	"fmt"

	"github.com/pcbtools/netsvg/pkg/board"
)

// Fragment is one rendered pass of a single layer. All fragments of one
// board render share identical canvas dimensions so the merger can compose
// them without rescaling; the merger rejects fragments that disagree.
type Fragment struct {
	Layer  string
	Canvas board.Rect // mm
	Body   []byte     // a single <g> element
}

// Width returns the canvas width in millimeters.
func (f *Fragment) Width() float64 { return f.Canvas.Width() }

// Height returns the canvas height in millimeters.
func (f *Fragment) Height() float64 { return f.Canvas.Height() }

// ViewBox returns the SVG viewBox attribute value for the fragment.
func (f *Fragment) ViewBox() string {
	return ViewBox(f.Canvas)
}

// ViewBox formats a canvas rectangle as an SVG viewBox attribute value.
func ViewBox(canvas board.Rect) string {
	return fmt.Sprintf("%s %s %s %s",
		coord(canvas.MinX), coord(canvas.MinY),
		coord(canvas.Width()), coord(canvas.Height()))
}

// Engine renders one layer of a board view onto a fixed canvas.
type Engine interface {
	Render(ctx context.Context, view *board.View, layer string, canvas board.Rect) (*Fragment, error)
}

// coord formats a millimeter coordinate with enough precision for copper
// geometry while keeping output stable across runs.
func coord(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	// trim trailing zeros but keep at least one digit after the point
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
