// Package pkg provides the core libraries for netsvg, a KiCad PCB to SVG
// renderer with per-net colors.
//
// # Overview
//
// netsvg reads a .kicad_pcb board file, resolves a color for every copper
// net, plots each layer as SVG geometry, and merges the fragments into a
// single document with the colors applied (or with CSS classes for styling
// downstream).
//
// # Architecture
//
// The typical data flow:
//
//	board file (.kicad_pcb)
//	         ↓
//	    [sexpr]  package (s-expression reader)
//	         ↓
//	    [board]  package (board model, layer and net filtering)
//	         ↓
//	    [colors] package (tiered color resolution: CLI > config > project > theme)
//	         ↓
//	    [plot]   package (per-layer SVG fragments)
//	         ↓
//	    [svg]    package (recolor or classify, merge, metadata)
//	         ↓
//	    colored SVG + optional metadata JSON
//
// # Quick Start
//
// Render a board with default colors:
//
//	import (
//	    "context"
//	    "github.com/pcbtools/netsvg/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    BoardPath:  "board.kicad_pcb",
//	    OutputPath: "board.svg",
//	    NetColors:  []string{"GND:green", "VCC:red"},
//	})
//
// # Main Packages
//
// [sexpr] - Streaming s-expression reader for KiCad's native file format.
//
// [board] - Parsed board model: nets, layers, tracks, vias, pads, zones,
// and graphics, plus filtered views over them.
//
// [colors] - Color parsing, themes, glob pattern rules, and the tiered
// net color resolver.
//
// [config] - Net color JSON files, KiCad project file discovery, and the
// netsvg.toml settings file.
//
// [plot] - The SVG plot engine: turns a board view and a layer into an
// SVG fragment on a shared canvas.
//
// [svg] - Fragment post-processing: recoloring, CSS class rewriting,
// document merging, and the net metadata sidecar.
//
// [pipeline] - Orchestration of the full render with fragment caching.
//
// [cache] - Content-addressed fragment cache (file-backed or disabled).
//
// [observability] - Optional hooks for plot, merge, and cache events.
package pkg
