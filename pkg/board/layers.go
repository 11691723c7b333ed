package board

import (
	"fmt"
	"strings"

	"github.com/pcbtools/netsvg/pkg/errors"
)

// EdgeCuts is the board outline layer.
const EdgeCuts = "Edge.Cuts"

// knownLayers is every layer name a .kicad_pcb layer table may enable,
// in canonical stack order.
var knownLayers = func() []string {
	names := []string{"F.Cu"}
	for i := 1; i <= 30; i++ {
		names = append(names, fmt.Sprintf("In%d.Cu", i))
	}
	names = append(names, "B.Cu",
		"F.Adhes", "B.Adhes",
		"F.Paste", "B.Paste",
		"F.SilkS", "B.SilkS",
		"F.Mask", "B.Mask",
		"Dwgs.User", "Cmts.User", "Eco1.User", "Eco2.User",
		EdgeCuts, "Margin",
		"F.CrtYd", "B.CrtYd",
		"F.Fab", "B.Fab",
	)
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("User.%d", i))
	}
	return names
}()

// IsCopper reports whether the layer carries copper.
func IsCopper(layer string) bool {
	return strings.HasSuffix(layer, ".Cu")
}

// KnownLayer reports whether the name is a valid KiCad layer name.
func KnownLayer(name string) bool {
	for _, l := range knownLayers {
		if l == name {
			return true
		}
	}
	return false
}

// ParseLayerList splits a comma-separated, front-to-back layer stack and
// validates every name. Whitespace around names is trimmed; empty entries
// and unknown names are errors.
func ParseLayerList(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidLayer, "empty layer list")
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "empty layer name in %q", s)
		}
		if !KnownLayer(name) {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", name)
		}
		if seen[name] {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "duplicate layer %q", name)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// FilterAvailable keeps only layers the board actually enables. Skipped
// names are returned separately so the caller can log them.
func FilterAvailable(b *Board, layers []string) (kept, skipped []string) {
	for _, l := range layers {
		if b.LayerEnabled(l) {
			kept = append(kept, l)
		} else {
			skipped = append(skipped, l)
		}
	}
	return kept, skipped
}
