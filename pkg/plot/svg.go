package plot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/pcbtools/netsvg/pkg/board"
	"github.com/pcbtools/netsvg/pkg/errors"
)

// PlotColor is the uniform color the engine paints every element with.
// Color assignment happens afterwards in the applicator, which detects and
// replaces this color, so it only needs to be distinctive, not pretty.
const PlotColor = "#C83434"

type SVGOption func(*SVGEngine)

// SVGEngine is the built-in plotting engine. One engine instance is safe
// for sequential reuse across layers and views.
type SVGEngine struct {
	color  string
	logger *log.Logger
}

// WithColor overrides the uniform plot color.
func WithColor(hex string) SVGOption { return func(e *SVGEngine) { e.color = hex } }

// WithLogger attaches a logger; the default discards.
func WithLogger(l *log.Logger) SVGOption { return func(e *SVGEngine) { e.logger = l } }

// NewSVGEngine builds the engine with options applied.
func NewSVGEngine(opts ...SVGOption) *SVGEngine {
	e := &SVGEngine{color: PlotColor, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render draws every element the view exposes on the layer into one <g>
// fragment. Copper layers draw tracks, vias, pads, and zone fills;
// non-copper layers draw graphic items.
func (e *SVGEngine) Render(ctx context.Context, view *board.View, layer string, canvas board.Rect) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !board.KnownLayer(layer) {
		return nil, errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", layer)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<g data-layer=%q>`+"\n", layer)

	if board.IsCopper(layer) {
		e.renderCopper(&buf, view, layer)
	}
	e.renderGraphics(&buf, view, layer)

	buf.WriteString("</g>\n")

	return &Fragment{Layer: layer, Canvas: canvas, Body: buf.Bytes()}, nil
}

func (e *SVGEngine) renderCopper(buf *bytes.Buffer, view *board.View, layer string) {
	for _, poly := range view.ZoneFills(layer) {
		e.polygon(buf, poly)
	}
	for _, t := range view.Tracks(layer) {
		fmt.Fprintf(buf, `<path d="M%s %s L%s %s" style="fill:none; stroke:%s; stroke-width:%s; stroke-linecap:round"/>`+"\n",
			coord(t.Start.X), coord(t.Start.Y), coord(t.End.X), coord(t.End.Y),
			e.color, coord(t.Width))
	}
	for _, v := range view.Vias(layer) {
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" style="fill:%s; stroke:none"/>`+"\n",
			coord(v.At.X), coord(v.At.Y), coord(v.Size/2), e.color)
	}
	for _, p := range view.Pads(layer) {
		e.pad(buf, p)
	}
}

func (e *SVGEngine) pad(buf *bytes.Buffer, p board.Pad) {
	switch p.Shape {
	case "circle":
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" style="fill:%s; stroke:none"/>`+"\n",
			coord(p.At.X), coord(p.At.Y), coord(p.Size.X/2), e.color)
	case "oval":
		// drawn as a thick rounded line along the long axis
		long, short := p.Size.X, p.Size.Y
		dx, dy := (long-short)/2, 0.0
		if p.Size.Y > p.Size.X {
			long, short = p.Size.Y, p.Size.X
			dx, dy = 0.0, (long-short)/2
		}
		fmt.Fprintf(buf, `<path d="M%s %s L%s %s" style="fill:none; stroke:%s; stroke-width:%s; stroke-linecap:round"/>`+"\n",
			coord(p.At.X-dx), coord(p.At.Y-dy), coord(p.At.X+dx), coord(p.At.Y+dy),
			e.color, coord(short))
	default: // rect, roundrect, custom
		rx := ""
		if p.Shape == "roundrect" {
			rx = fmt.Sprintf(` rx="%s"`, coord(math.Min(p.Size.X, p.Size.Y)*0.25))
		}
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s"%s style="fill:%s; stroke:none"/>`+"\n",
			coord(p.At.X-p.Size.X/2), coord(p.At.Y-p.Size.Y/2),
			coord(p.Size.X), coord(p.Size.Y), rx, e.color)
	}
}

func (e *SVGEngine) polygon(buf *bytes.Buffer, pts []board.Point) {
	if len(pts) == 0 {
		return
	}
	buf.WriteString(`<polygon points="`)
	for i, p := range pts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%s,%s", coord(p.X), coord(p.Y))
	}
	fmt.Fprintf(buf, `" style="fill:%s; stroke:none"/>`+"\n", e.color)
}

func (e *SVGEngine) renderGraphics(buf *bytes.Buffer, view *board.View, layer string) {
	for _, g := range view.Graphics(layer) {
		width := g.Width
		if width == 0 {
			width = 0.1
		}
		stroke := fmt.Sprintf("fill:none; stroke:%s; stroke-width:%s; stroke-linecap:round", e.color, coord(width))
		switch g.Kind {
		case "line":
			fmt.Fprintf(buf, `<path d="M%s %s L%s %s" style="%s"/>`+"\n",
				coord(g.Start.X), coord(g.Start.Y), coord(g.End.X), coord(g.End.Y), stroke)
		case "rect":
			fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" style="%s"/>`+"\n",
				coord(math.Min(g.Start.X, g.End.X)), coord(math.Min(g.Start.Y, g.End.Y)),
				coord(math.Abs(g.End.X-g.Start.X)), coord(math.Abs(g.End.Y-g.Start.Y)), stroke)
		case "circle":
			r := math.Hypot(g.End.X-g.Center.X, g.End.Y-g.Center.Y)
			fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" style="%s"/>`+"\n",
				coord(g.Center.X), coord(g.Center.Y), coord(r), stroke)
		case "arc":
			e.arc(buf, g, stroke)
		case "poly":
			if len(g.Points) > 0 {
				buf.WriteString(`<polygon points="`)
				for i, p := range g.Points {
					if i > 0 {
						buf.WriteByte(' ')
					}
					fmt.Fprintf(buf, "%s,%s", coord(p.X), coord(p.Y))
				}
				fmt.Fprintf(buf, `" style="%s"/>`+"\n", stroke)
			}
		default:
			e.logger.Debug("skipping unsupported graphic", "kind", g.Kind, "layer", layer)
		}
	}
}

// arc draws a three-point arc (start, mid, end) as an SVG arc path. The
// circle through the three points gives radius and sweep direction.
func (e *SVGEngine) arc(buf *bytes.Buffer, g board.Graphic, stroke string) {
	cx, cy, ok := circumcenter(g.Start, g.Mid, g.End)
	if !ok {
		// collinear points degrade to a straight line
		fmt.Fprintf(buf, `<path d="M%s %s L%s %s" style="%s"/>`+"\n",
			coord(g.Start.X), coord(g.Start.Y), coord(g.End.X), coord(g.End.Y), stroke)
		return
	}
	r := math.Hypot(g.Start.X-cx, g.Start.Y-cy)

	// sweep follows the side of the chord the midpoint lies on
	cross := (g.End.X-g.Start.X)*(g.Mid.Y-g.Start.Y) - (g.End.Y-g.Start.Y)*(g.Mid.X-g.Start.X)
	sweep := 0
	if cross > 0 {
		sweep = 1
	}

	// the arc is the large one when the midpoint is farther from the chord
	// midpoint than the radius
	chordMidX, chordMidY := (g.Start.X+g.End.X)/2, (g.Start.Y+g.End.Y)/2
	large := 0
	if math.Hypot(g.Mid.X-chordMidX, g.Mid.Y-chordMidY) > r {
		large = 1
	}

	fmt.Fprintf(buf, `<path d="M%s %s A%s %s 0 %d %d %s %s" style="%s"/>`+"\n",
		coord(g.Start.X), coord(g.Start.Y), coord(r), coord(r), large, sweep,
		coord(g.End.X), coord(g.End.Y), stroke)
}

func circumcenter(a, b, c board.Point) (float64, float64, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return 0, 0, false
	}
	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	ux := (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d
	uy := (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d
	return ux, uy, true
}

// CanvasFor computes the plotting canvas for a board under a fit policy.
// Fitted canvases get a 1 mm margin and are clamped to a 5 mm minimum so
// tiny boards stay visible.
func CanvasFor(b *board.Board, policy FitPolicy) (board.Rect, error) {
	const (
		margin  = 1.0
		minSize = 5.0
	)
	switch policy {
	case FitNone:
		if r, ok := b.EdgeBounds(); ok {
			return r, nil
		}
		if r, ok := b.AllBounds(); ok {
			return r, nil
		}
		return board.Rect{}, errors.New(errors.ErrCodeInvalidBoard, "board has no drawable content")
	case FitAll:
		r, ok := b.AllBounds()
		if !ok {
			return board.Rect{}, errors.New(errors.ErrCodeInvalidBoard, "board has no drawable content")
		}
		return r.Expand(margin).ClampMin(minSize), nil
	case FitEdges:
		r, ok := b.EdgeBounds()
		if !ok {
			return board.Rect{}, errors.New(errors.ErrCodeInvalidBoard, "board has no outline on %s", board.EdgeCuts)
		}
		return r.Expand(margin).ClampMin(minSize), nil
	default:
		return board.Rect{}, errors.New(errors.ErrCodeInvalidPolicy, "unknown fit policy %q", policy)
	}
}

// FitPolicy selects how the canvas is sized around board content.
type FitPolicy string

const (
	FitNone  FitPolicy = "none"
	FitAll   FitPolicy = "all"
	FitEdges FitPolicy = "edges_only"
)

// ParseFitPolicy validates a fit policy flag value.
func ParseFitPolicy(s string) (FitPolicy, error) {
	switch FitPolicy(s) {
	case FitNone, FitAll, FitEdges:
		return FitPolicy(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPolicy,
			"fit policy must be one of none, all, edges_only; got %q", s)
	}
}
