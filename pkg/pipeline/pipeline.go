// Package pipeline provides the board → colored SVG rendering pipeline.
//
// The pipeline runs in four stages:
//
//  1. Load: parse the board and every color configuration tier
//  2. Plan: split the board into per-layer work items (color groups or
//     individual nets)
//  3. Render: plot each item through the engine, with fragment caching
//  4. Merge: compose fragments into one document and write outputs
//
// A Runner executes the whole pipeline; the CLI is a thin wrapper around
// it. Rendering is sequential and fail-fast: the first plot failure aborts
// the run and no partial output is written.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pcbtools/netsvg/pkg/colors"
	"github.com/pcbtools/netsvg/pkg/errors"
	"github.com/pcbtools/netsvg/pkg/plot"
	"github.com/pcbtools/netsvg/pkg/svg"
)

// Defaults shared by the CLI and library callers.
const (
	DefaultLayers = "F.Cu,B.Cu,Edge.Cuts"
	DefaultTheme  = "dark"
	DefaultFit    = string(plot.FitEdges)

	// ThemeNone disables the theme tier; unmatched nets fall back to
	// neutral gray.
	ThemeNone = "none"
)

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input and output
	BoardPath    string `json:"board_path"`
	OutputPath   string `json:"output_path,omitempty"`   // empty returns bytes only
	MetadataPath string `json:"metadata_path,omitempty"` // CSS mode sidecar

	// Layer selection, front-to-back
	Layers string `json:"layers,omitempty"`

	// Color tiers
	NetColors           []string `json:"net_colors,omitempty"` // NAME:COLOR, argument order
	ColorsFile          string   `json:"colors_file,omitempty"`
	IgnoreProjectColors bool     `json:"ignore_project_colors,omitempty"`
	Theme               string   `json:"theme,omitempty"`

	// Output shaping
	CSSClasses   bool   `json:"css_classes,omitempty"`
	Background   string `json:"background,omitempty"` // overrides the theme background
	NoBackground bool   `json:"no_background,omitempty"`
	Fit          string `json:"fit,omitempty"`
	SkipZones    bool   `json:"skip_zones,omitempty"`

	// Debugging
	KeepIntermediates bool `json:"keep_intermediates,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.BoardPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "board path is required")
	}
	if o.Layers == "" {
		o.Layers = DefaultLayers
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Theme != ThemeNone {
		if _, ok := colors.ThemeByName(o.Theme); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown theme %q", o.Theme)
		}
	}
	if o.Fit == "" {
		o.Fit = DefaultFit
	}
	if _, err := plot.ParseFitPolicy(o.Fit); err != nil {
		return err
	}
	if o.Background != "" {
		hex, err := colors.Parse(o.Background)
		if err != nil {
			return err
		}
		o.Background = hex
	}
	if o.MetadataPath != "" && !o.CSSClasses {
		return errors.New(errors.ErrCodeInvalidInput, "metadata output requires CSS class mode")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SVG is the merged document.
	SVG []byte

	// Metadata is the CSS mode sidecar; nil outside CSS mode.
	Metadata *svg.Metadata

	// BoardHash is the content hash of the board file.
	BoardHash string

	// Intermediates holds per-split fragments when KeepIntermediates is
	// set, keyed by artifact name.
	Intermediates map[string][]byte

	// Stats contains counts and timings.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NetCount      int
	LayerCount    int
	FragmentCount int
	CacheHits     int
	RenderTime    time.Duration
	MergeTime     time.Duration
}
