// Package board models a KiCad printed circuit board: its nets, layer table,
// copper geometry, zones, and graphic items. Boards are parsed from
// .kicad_pcb files and then only read; filtered views (see filter.go) never
// mutate the board they derive from.
package board

import (
	"math"
	"sort"
)

// NoNetName is the display name for elements without a net assignment
// (net code 0 or an empty net name).
const NoNetName = "<no_net>"

// Point is a position in millimeters, y growing downward as in KiCad.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box in millimeters.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Expand grows the rect by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{r.MinX - m, r.MinY - m, r.MaxX + m, r.MaxY + m}
}

// ClampMin enforces a minimum width and height, growing symmetrically.
func (r Rect) ClampMin(size float64) Rect {
	if w := r.Width(); w < size {
		pad := (size - w) / 2
		r.MinX -= pad
		r.MaxX += pad
	}
	if h := r.Height(); h < size {
		pad := (size - h) / 2
		r.MinY -= pad
		r.MaxY += pad
	}
	return r
}

// Union returns the smallest rect containing both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		math.Min(r.MinX, o.MinX),
		math.Min(r.MinY, o.MinY),
		math.Max(r.MaxX, o.MaxX),
		math.Max(r.MaxY, o.MaxY),
	}
}

func rectAround(pts ...Point) Rect {
	r := Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Net is a board net as declared in the netlist section.
type Net struct {
	Code int
	Name string
}

// DisplayName returns the net name, substituting NoNetName for the
// unconnected net.
func (n Net) DisplayName() string {
	if n.Code == 0 || n.Name == "" {
		return NoNetName
	}
	return n.Name
}

// Track is a straight copper segment on a single layer.
type Track struct {
	Start, End Point
	Width      float64
	Layer      string
	NetCode    int
}

// Via is a plated through-hole connecting copper layers.
type Via struct {
	At      Point
	Size    float64
	Drill   float64
	Layers  []string
	NetCode int
}

// Pad is a footprint pad with its absolute board position already resolved.
type Pad struct {
	Number  string
	Shape   string // circle, rect, oval, roundrect, custom
	At      Point
	Size    Point
	Drill   float64
	Layers  []string // may contain wildcards like *.Cu
	NetCode int
}

// OnLayer reports whether the pad exists on the given layer, expanding
// the *.Cu / *.Mask style wildcards KiCad uses in pad layer lists.
func (p Pad) OnLayer(layer string) bool {
	for _, l := range p.Layers {
		if l == layer {
			return true
		}
		if l == "*.Cu" && IsCopper(layer) {
			return true
		}
	}
	return false
}

// Footprint is a placed component with its pads.
type Footprint struct {
	Ref      string
	At       Point
	Rotation float64 // degrees
	Pads     []Pad
}

// Zone is a filled copper area. Only the filled polygons matter for
// rendering; the zone outline itself is not drawn.
type Zone struct {
	NetCode int
	Layers  []string
	Fills   map[string][][]Point // layer -> filled polygons
}

// Graphic is a non-copper drawing item: board outline lines and arcs on
// Edge.Cuts, silkscreen strokes, and similar.
type Graphic struct {
	Kind   string // line, rect, circle, arc, poly
	Layer  string
	Start  Point
	End    Point
	Center Point // circles and arcs
	Mid    Point // arcs
	Width  float64
	Points []Point // polys
}

// Board is a parsed .kicad_pcb file.
type Board struct {
	Nets       map[int]Net
	Layers     []string // enabled layers in stack order
	Tracks     []Track
	Vias       []Via
	Footprints []Footprint
	Zones      []Zone
	Graphics   []Graphic
}

// Net returns the net for a code; unknown codes map to the unconnected net.
func (b *Board) Net(code int) Net {
	if n, ok := b.Nets[code]; ok {
		return n
	}
	return Net{Code: 0}
}

// NetNames returns every net display name, sorted, the unconnected net
// included only when geometry references it.
func (b *Board) NetNames() []string {
	seen := make(map[string]bool, len(b.Nets))
	for _, n := range b.Nets {
		if n.Code == 0 && !b.hasUnconnected() {
			continue
		}
		seen[n.DisplayName()] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NetByName finds a net by display name.
func (b *Board) NetByName(name string) (Net, bool) {
	for _, n := range b.Nets {
		if n.DisplayName() == name {
			return n, true
		}
	}
	return Net{}, false
}

func (b *Board) hasUnconnected() bool {
	for _, t := range b.Tracks {
		if t.NetCode == 0 {
			return true
		}
	}
	for _, v := range b.Vias {
		if v.NetCode == 0 {
			return true
		}
	}
	for _, fp := range b.Footprints {
		for _, p := range fp.Pads {
			if p.NetCode == 0 {
				return true
			}
		}
	}
	return false
}

// LayerEnabled reports whether the board's layer table enables the layer.
func (b *Board) LayerEnabled(layer string) bool {
	for _, l := range b.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

// CopperLayers returns the enabled copper layers in stack order.
func (b *Board) CopperLayers() []string {
	var out []string
	for _, l := range b.Layers {
		if IsCopper(l) {
			out = append(out, l)
		}
	}
	return out
}

// EdgeBounds is the bounding box of the Edge.Cuts outline, if any.
func (b *Board) EdgeBounds() (Rect, bool) {
	return b.graphicBounds(func(g Graphic) bool { return g.Layer == EdgeCuts })
}

// AllBounds is the bounding box of every element on the board.
func (b *Board) AllBounds() (Rect, bool) {
	r, ok := b.graphicBounds(func(Graphic) bool { return true })
	for _, t := range b.Tracks {
		half := t.Width / 2
		tr := rectAround(t.Start, t.End).Expand(half)
		r, ok = unionOK(r, tr, ok)
	}
	for _, v := range b.Vias {
		half := v.Size / 2
		vr := rectAround(v.At).Expand(half)
		r, ok = unionOK(r, vr, ok)
	}
	for _, fp := range b.Footprints {
		for _, p := range fp.Pads {
			pr := rectAround(p.At).Expand(math.Max(p.Size.X, p.Size.Y) / 2)
			r, ok = unionOK(r, pr, ok)
		}
	}
	for _, z := range b.Zones {
		for _, polys := range z.Fills {
			for _, poly := range polys {
				if len(poly) > 0 {
					r, ok = unionOK(r, rectAround(poly...), ok)
				}
			}
		}
	}
	return r, ok
}

func (b *Board) graphicBounds(keep func(Graphic) bool) (Rect, bool) {
	var r Rect
	found := false
	for _, g := range b.Graphics {
		if !keep(g) {
			continue
		}
		var gr Rect
		switch g.Kind {
		case "circle":
			radius := math.Hypot(g.End.X-g.Center.X, g.End.Y-g.Center.Y)
			gr = rectAround(g.Center).Expand(radius)
		case "poly":
			if len(g.Points) == 0 {
				continue
			}
			gr = rectAround(g.Points...)
		case "arc":
			gr = rectAround(g.Start, g.Mid, g.End)
		default:
			gr = rectAround(g.Start, g.End)
		}
		gr = gr.Expand(g.Width / 2)
		r, found = unionOK(r, gr, found)
	}
	return r, found
}

func unionOK(r, add Rect, have bool) (Rect, bool) {
	if !have {
		return add, true
	}
	return r.Union(add), true
}
