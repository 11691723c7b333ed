package svg

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/pcbtools/netsvg/pkg/board"
	"github.com/pcbtools/netsvg/pkg/colors"
	"github.com/pcbtools/netsvg/pkg/errors"
	"github.com/pcbtools/netsvg/pkg/plot"
)

// ClassStyle is one CSS rule for the merged document's style block.
type ClassStyle struct {
	Class string
	Color string // #RRGGBB
}

// MergeOptions controls document composition.
type MergeOptions struct {
	Canvas     board.Rect   // document canvas; zero means take the first fragment's
	Background string       // "" draws no background
	Styles     []ClassStyle // CSS mode class rules
	Title      string
}

// Merge composes per-layer fragments into one SVG document. Fragments
// arrive grouped by layer; layers paint in the order of the layers slice,
// so with the front-to-back declared stack the last-declared layer lands
// visually on top. Every fragment must agree with the canvas; disagreement
// is a merge failure. An empty fragment set still yields a complete
// document: the canvas plus the background underlay, with no geometry.
func Merge(frags map[string][]*plot.Fragment, layers []string, opts MergeOptions) ([]byte, error) {
	var all []*plot.Fragment
	for _, layer := range layers {
		all = append(all, frags[layer]...)
	}
	canvas := opts.Canvas
	if canvas.Width() == 0 && canvas.Height() == 0 && len(all) > 0 {
		canvas = all[0].Canvas
	}
	for _, f := range all {
		if !sameCanvas(canvas, f.Canvas) {
			return nil, errors.New(errors.ErrCodeMergeFailed,
				"fragment canvas mismatch on layer %s: %.4fx%.4f vs %.4fx%.4f",
				f.Layer, f.Width(), f.Height(), canvas.Width(), canvas.Height())
		}
	}
	if opts.Background != "" && !colors.ValidHex(opts.Background) {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid background color %q", opts.Background)
	}

	title := opts.Title
	if title == "" {
		title = "netsvg merged board render"
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.4fmm" height="%.4fmm" viewBox="%s">`+"\n",
		canvas.Width(), canvas.Height(), plot.ViewBox(canvas))
	fmt.Fprintf(&buf, "<title>%s</title>\n", title)

	if len(opts.Styles) > 0 {
		buf.WriteString("<style>\n")
		styles := append([]ClassStyle(nil), opts.Styles...)
		sort.Slice(styles, func(i, j int) bool { return styles[i].Class < styles[j].Class })
		for _, s := range styles {
			fmt.Fprintf(&buf, ".%s {\n    fill: %s;\n    stroke: %s;\n}\n", s.Class, s.Color, s.Color)
		}
		buf.WriteString("</style>\n")
	}

	if opts.Background != "" {
		fmt.Fprintf(&buf, `<rect x="%.4f" y="%.4f" width="%.4f" height="%.4f" fill="%s"/>`+"\n",
			canvas.MinX, canvas.MinY, canvas.Width(), canvas.Height(), opts.Background)
	}

	for _, layer := range layers {
		for _, f := range frags[layer] {
			buf.Write(f.Body)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func sameCanvas(a, b board.Rect) bool {
	const eps = 1e-6
	return math.Abs(a.MinX-b.MinX) < eps && math.Abs(a.MinY-b.MinY) < eps &&
		math.Abs(a.MaxX-b.MaxX) < eps && math.Abs(a.MaxY-b.MaxY) < eps
}
