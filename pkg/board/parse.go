package board

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/pcbtools/netsvg/pkg/errors"
	"github.com/pcbtools/netsvg/pkg/sexpr"
)

// ParseFile reads and parses a .kicad_pcb file.
func ParseFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "open %s", path)
	}
	defer f.Close()
	b, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "parse %s", path)
	}
	return b, nil
}

// Parse reads a board from .kicad_pcb s-expression text.
func Parse(r io.Reader) (*Board, error) {
	root, err := sexpr.Parse(r)
	if err != nil {
		return nil, err
	}
	if root.Key() != "kicad_pcb" {
		return nil, errors.New(errors.ErrCodeInvalidBoard, "not a kicad_pcb file (got %q)", root.Key())
	}

	b := &Board{Nets: map[int]Net{}}

	for _, node := range root.Children {
		switch node.Key() {
		case "net":
			code, err := node.IntArg(0)
			if err != nil {
				return nil, err
			}
			b.Nets[code] = Net{Code: code, Name: node.Arg(1)}
		case "layers":
			b.Layers = parseLayerTable(node)
		case "segment":
			t, err := parseTrack(node)
			if err != nil {
				return nil, err
			}
			b.Tracks = append(b.Tracks, t)
		case "via":
			v, err := parseVia(node)
			if err != nil {
				return nil, err
			}
			b.Vias = append(b.Vias, v)
		case "footprint", "module":
			fp, err := parseFootprint(node)
			if err != nil {
				return nil, err
			}
			b.Footprints = append(b.Footprints, fp)
		case "zone":
			z, err := parseZone(node)
			if err != nil {
				return nil, err
			}
			b.Zones = append(b.Zones, z)
		case "gr_line", "gr_rect", "gr_circle", "gr_arc", "gr_poly":
			g, err := parseGraphic(node)
			if err != nil {
				return nil, err
			}
			b.Graphics = append(b.Graphics, g)
		}
	}
	return b, nil
}

// parseLayerTable reads the (layers (0 "F.Cu" signal) ...) table. Each entry
// is a list whose key is the numeric layer index.
func parseLayerTable(node *sexpr.Node) []string {
	var out []string
	for _, entry := range node.Children[1:] {
		if !entry.IsList() || len(entry.Children) < 2 {
			continue
		}
		name := entry.Children[1].Value
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func parsePoint(node *sexpr.Node) (Point, error) {
	x, err := node.FloatArg(0)
	if err != nil {
		return Point{}, err
	}
	y, err := node.FloatArg(1)
	if err != nil {
		return Point{}, err
	}
	return Point{x, y}, nil
}

func parseTrack(node *sexpr.Node) (Track, error) {
	var t Track
	var err error
	if t.Start, err = parsePoint(node.Find("start")); err != nil {
		return t, err
	}
	if t.End, err = parsePoint(node.Find("end")); err != nil {
		return t, err
	}
	if w := node.Find("width"); w != nil {
		if t.Width, err = w.FloatArg(0); err != nil {
			return t, err
		}
	}
	if l := node.Find("layer"); l != nil {
		t.Layer = l.Arg(0)
	}
	if n := node.Find("net"); n != nil {
		if t.NetCode, err = n.IntArg(0); err != nil {
			return t, err
		}
	}
	return t, nil
}

func parseVia(node *sexpr.Node) (Via, error) {
	var v Via
	var err error
	if v.At, err = parsePoint(node.Find("at")); err != nil {
		return v, err
	}
	if s := node.Find("size"); s != nil {
		if v.Size, err = s.FloatArg(0); err != nil {
			return v, err
		}
	}
	if d := node.Find("drill"); d != nil {
		if v.Drill, err = d.FloatArg(0); err != nil {
			return v, err
		}
	}
	if l := node.Find("layers"); l != nil {
		v.Layers = l.Args()
	}
	if n := node.Find("net"); n != nil {
		if v.NetCode, err = n.IntArg(0); err != nil {
			return v, err
		}
	}
	return v, nil
}

func parseFootprint(node *sexpr.Node) (Footprint, error) {
	var fp Footprint
	if at := node.Find("at"); at != nil {
		var err error
		if fp.At, err = parsePoint(at); err != nil {
			return fp, err
		}
		if rot := at.Arg(2); rot != "" {
			if r, err := at.FloatArg(2); err == nil {
				fp.Rotation = r
			}
		}
	}
	for _, prop := range node.FindAll("property") {
		if prop.Arg(0) == "Reference" {
			fp.Ref = prop.Arg(1)
		}
	}
	if fp.Ref == "" {
		// older format: (fp_text reference "R1" ...)
		for _, txt := range node.FindAll("fp_text") {
			if txt.Arg(0) == "reference" {
				fp.Ref = txt.Arg(1)
			}
		}
	}
	for _, padNode := range node.FindAll("pad") {
		pad, err := parsePad(padNode, fp)
		if err != nil {
			return fp, err
		}
		fp.Pads = append(fp.Pads, pad)
	}
	return fp, nil
}

func parsePad(node *sexpr.Node, fp Footprint) (Pad, error) {
	p := Pad{
		Number: node.Arg(0),
		Shape:  node.Arg(2),
	}
	var rel Point
	if at := node.Find("at"); at != nil {
		var err error
		if rel, err = parsePoint(at); err != nil {
			return p, err
		}
	}
	p.At = placeOnBoard(rel, fp.At, fp.Rotation)
	if s := node.Find("size"); s != nil {
		var err error
		if p.Size, err = parsePoint(s); err != nil {
			return p, err
		}
	}
	if d := node.Find("drill"); d != nil {
		if v, err := d.FloatArg(0); err == nil {
			p.Drill = v
		}
	}
	if l := node.Find("layers"); l != nil {
		p.Layers = l.Args()
	}
	if n := node.Find("net"); n != nil {
		var err error
		if p.NetCode, err = n.IntArg(0); err != nil {
			return p, err
		}
	}
	return p, nil
}

// placeOnBoard converts a footprint-relative pad offset to an absolute board
// position. KiCad rotation is counterclockwise in degrees with y down.
func placeOnBoard(rel, origin Point, rotation float64) Point {
	if rotation == 0 {
		return Point{origin.X + rel.X, origin.Y + rel.Y}
	}
	rad := rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Point{
		X: origin.X + rel.X*cos + rel.Y*sin,
		Y: origin.Y - rel.X*sin + rel.Y*cos,
	}
}

func parseZone(node *sexpr.Node) (Zone, error) {
	z := Zone{Fills: map[string][][]Point{}}
	if n := node.Find("net"); n != nil {
		var err error
		if z.NetCode, err = n.IntArg(0); err != nil {
			return z, err
		}
	}
	if l := node.Find("layers"); l != nil {
		z.Layers = l.Args()
	} else if l := node.Find("layer"); l != nil {
		z.Layers = []string{l.Arg(0)}
	}
	for _, fill := range node.FindAll("filled_polygon") {
		layer := ""
		if l := fill.Find("layer"); l != nil {
			layer = l.Arg(0)
		} else if len(z.Layers) == 1 {
			layer = z.Layers[0]
		}
		pts, err := parsePoints(fill.Find("pts"))
		if err != nil {
			return z, err
		}
		if layer != "" && len(pts) > 0 {
			z.Fills[layer] = append(z.Fills[layer], pts)
		}
	}
	return z, nil
}

func parsePoints(node *sexpr.Node) ([]Point, error) {
	if node == nil {
		return nil, nil
	}
	var pts []Point
	for _, xy := range node.FindAll("xy") {
		p, err := parsePoint(xy)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func parseGraphic(node *sexpr.Node) (Graphic, error) {
	g := Graphic{Kind: strings.TrimPrefix(node.Key(), "gr_")}
	var err error
	if l := node.Find("layer"); l != nil {
		g.Layer = l.Arg(0)
	}
	if s := node.Find("start"); s != nil {
		if g.Start, err = parsePoint(s); err != nil {
			return g, err
		}
	}
	if e := node.Find("end"); e != nil {
		if g.End, err = parsePoint(e); err != nil {
			return g, err
		}
	}
	if c := node.Find("center"); c != nil {
		if g.Center, err = parsePoint(c); err != nil {
			return g, err
		}
	}
	if m := node.Find("mid"); m != nil {
		if g.Mid, err = parsePoint(m); err != nil {
			return g, err
		}
	}
	if g.Kind == "circle" && node.Find("center") == nil {
		// circle start is the center in recent formats
		g.Center = g.Start
	}
	if w := node.Find("stroke"); w != nil {
		if wd := w.Find("width"); wd != nil {
			if g.Width, err = wd.FloatArg(0); err != nil {
				return g, err
			}
		}
	} else if w := node.Find("width"); w != nil {
		if g.Width, err = w.FloatArg(0); err != nil {
			return g, err
		}
	}
	if g.Kind == "poly" {
		if g.Points, err = parsePoints(node.Find("pts")); err != nil {
			return g, err
		}
	}
	return g, nil
}
