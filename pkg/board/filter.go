package board

import "sort"

// View is a read-only filtered slice of a board. Views are cheap to build
// and disposable; the underlying board is never modified. A nil net filter
// passes every net, which is how outline and silkscreen passes see the
// whole board.
type View struct {
	board     *Board
	nets      map[int]bool // nil means all nets
	skipZones bool
}

// ViewOptions controls what a view exposes.
type ViewOptions struct {
	NetCodes  []int // nets to keep; empty keeps all
	SkipZones bool
}

// NewView derives a filtered view from the board.
func NewView(b *Board, opts ViewOptions) *View {
	v := &View{board: b, skipZones: opts.SkipZones}
	if len(opts.NetCodes) > 0 {
		v.nets = make(map[int]bool, len(opts.NetCodes))
		for _, c := range opts.NetCodes {
			v.nets[c] = true
		}
	}
	return v
}

// Board returns the underlying board.
func (v *View) Board() *Board { return v.board }

func (v *View) keepNet(code int) bool {
	return v.nets == nil || v.nets[code]
}

// Tracks returns the view's tracks on a copper layer.
func (v *View) Tracks(layer string) []Track {
	var out []Track
	for _, t := range v.board.Tracks {
		if t.Layer == layer && v.keepNet(t.NetCode) {
			out = append(out, t)
		}
	}
	return out
}

// Vias returns the view's vias that span the given copper layer.
func (v *View) Vias(layer string) []Via {
	var out []Via
	for _, via := range v.board.Vias {
		if !v.keepNet(via.NetCode) {
			continue
		}
		if viaOnLayer(via, layer) {
			out = append(out, via)
		}
	}
	return out
}

// viaOnLayer treats a via's layer pair as a span over the copper stack.
// Through vias are written as (layers "F.Cu" "B.Cu") and reach every
// copper layer.
func viaOnLayer(v Via, layer string) bool {
	if len(v.Layers) == 0 {
		return IsCopper(layer)
	}
	if v.Layers[0] == "F.Cu" && v.Layers[len(v.Layers)-1] == "B.Cu" {
		return IsCopper(layer)
	}
	for _, l := range v.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

// Pads returns the view's pads present on the given layer, positions
// already absolute.
func (v *View) Pads(layer string) []Pad {
	var out []Pad
	for _, fp := range v.board.Footprints {
		for _, p := range fp.Pads {
			if v.keepNet(p.NetCode) && p.OnLayer(layer) {
				out = append(out, p)
			}
		}
	}
	return out
}

// ZoneFills returns the filled polygons of the view's zones on a layer.
func (v *View) ZoneFills(layer string) [][]Point {
	if v.skipZones {
		return nil
	}
	var out [][]Point
	for _, z := range v.board.Zones {
		if !v.keepNet(z.NetCode) {
			continue
		}
		out = append(out, z.Fills[layer]...)
	}
	return out
}

// Graphics returns drawing items on a non-copper layer. Graphics carry no
// net, so the net filter does not apply; the outline and silkscreen always
// come from the whole board.
func (v *View) Graphics(layer string) []Graphic {
	var out []Graphic
	for _, g := range v.board.Graphics {
		if g.Layer == layer {
			out = append(out, g)
		}
	}
	return out
}

// HasContent reports whether the view has any drawable element on the
// layer. Used to skip empty plot passes.
func (v *View) HasContent(layer string) bool {
	if len(v.Tracks(layer)) > 0 || len(v.Vias(layer)) > 0 || len(v.Pads(layer)) > 0 {
		return true
	}
	if len(v.ZoneFills(layer)) > 0 {
		return true
	}
	return len(v.Graphics(layer)) > 0
}

// NetsOnLayer returns the codes of nets with geometry on a copper layer,
// zone fills included unless the view skips zones.
func (v *View) NetsOnLayer(layer string) []int {
	seen := map[int]bool{}
	for _, t := range v.board.Tracks {
		if t.Layer == layer && v.keepNet(t.NetCode) {
			seen[t.NetCode] = true
		}
	}
	for _, via := range v.board.Vias {
		if viaOnLayer(via, layer) && v.keepNet(via.NetCode) {
			seen[via.NetCode] = true
		}
	}
	for _, fp := range v.board.Footprints {
		for _, p := range fp.Pads {
			if p.OnLayer(layer) && v.keepNet(p.NetCode) {
				seen[p.NetCode] = true
			}
		}
	}
	if !v.skipZones {
		for _, z := range v.board.Zones {
			if len(z.Fills[layer]) > 0 && v.keepNet(z.NetCode) {
				seen[z.NetCode] = true
			}
		}
	}
	codes := make([]int, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
