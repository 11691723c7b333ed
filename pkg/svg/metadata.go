package svg

import (
	"encoding/json"
	"os"

	"github.com/pcbtools/netsvg/pkg/errors"
)

// NetMetadata describes one net in the metadata sidecar.
type NetMetadata struct {
	Color      string            `json:"color"`
	CSSClasses map[string]string `json:"css_classes"` // layer -> class
}

// Metadata is the machine-readable sidecar written alongside CSS mode
// output. Keys serialize sorted, so output is deterministic.
type Metadata struct {
	CopperLayers []string               `json:"copper_layers"`
	Nets         map[string]NetMetadata `json:"nets"`
}

// NewMetadata starts an empty document for the given copper layers, which
// stay in stack order.
func NewMetadata(copperLayers []string) *Metadata {
	return &Metadata{
		CopperLayers: append([]string(nil), copperLayers...),
		Nets:         map[string]NetMetadata{},
	}
}

// AddClass records the class assigned to a net on one layer.
func (m *Metadata) AddClass(net, color, layer, class string) {
	entry, ok := m.Nets[net]
	if !ok {
		entry = NetMetadata{Color: color, CSSClasses: map[string]string{}}
	}
	entry.CSSClasses[layer] = class
	m.Nets[net] = entry
}

// Encode serializes the metadata with stable key ordering.
func (m *Metadata) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// WriteFile writes the metadata JSON to disk.
func (m *Metadata) WriteFile(path string) error {
	data, err := m.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode metadata")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write metadata %s", path)
	}
	return nil
}
