package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pcbtools/netsvg/pkg/board"
	"github.com/pcbtools/netsvg/pkg/cache"
	"github.com/pcbtools/netsvg/pkg/colors"
	"github.com/pcbtools/netsvg/pkg/config"
	"github.com/pcbtools/netsvg/pkg/errors"
	"github.com/pcbtools/netsvg/pkg/observability"
	"github.com/pcbtools/netsvg/pkg/plot"
	"github.com/pcbtools/netsvg/pkg/svg"
)

// Runner executes the rendering pipeline with fragment caching. It is
// stateless apart from the cache, engine, and logger, so one Runner can
// serve many runs.
type Runner struct {
	Cache  cache.Cache
	Engine plot.Engine
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil engine
// selects the built-in SVG engine.
func NewRunner(c cache.Cache, engine plot.Engine, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = plot.NewSVGEngine(plot.WithLogger(logger))
	}
	return &Runner{Cache: c, Engine: engine, Logger: logger}
}

// workItem is one plot pass: a set of nets on one layer.
type workItem struct {
	id       string
	layer    string
	netCodes []int    // empty renders the unfiltered board
	netNames []string // sorted display names, for the cache key
	label    string   // for logs and errors: a color, net, or "board"
	color    string   // non-CSS mode target color
	class    string   // CSS mode class; empty outside CSS mode
	net      string   // CSS mode net display name
}

// Execute runs the complete pipeline and returns the merged document.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	data, err := os.ReadFile(opts.BoardPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", opts.BoardPath)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "read %s", opts.BoardPath)
	}
	brd, err := board.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	result := &Result{BoardHash: cache.Hash(data)}
	if opts.KeepIntermediates {
		result.Intermediates = map[string][]byte{}
	}

	resolver, theme, err := BuildResolver(opts, logger)
	if err != nil {
		return nil, err
	}

	requested, err := board.ParseLayerList(opts.Layers)
	if err != nil {
		return nil, err
	}
	layers, skipped := board.FilterAvailable(brd, requested)
	for _, l := range skipped {
		logger.Info("skipping layer not enabled on board", "layer", l)
	}
	if len(layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayer,
			"none of the requested layers are enabled on the board")
	}

	fit, _ := plot.ParseFitPolicy(opts.Fit)
	canvas, err := plot.CanvasFor(brd, fit)
	if err != nil {
		return nil, err
	}

	namer := svg.NewClassNamer()
	var meta *svg.Metadata
	if opts.CSSClasses {
		meta = svg.NewMetadata(copperOf(layers))
	}

	items, styles := r.plan(brd, layers, resolver, theme, namer, meta, opts, logger)
	result.Stats.LayerCount = len(layers)
	result.Stats.NetCount = len(brd.NetNames())

	renderStart := time.Now()
	frags := map[string][]*plot.Fragment{}
	for _, item := range items {
		frag, hit, err := r.renderItem(ctx, brd, item, canvas, result.BoardHash, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err,
				"plot failed for %s on layer %s", item.label, item.layer)
		}
		if hit {
			result.Stats.CacheHits++
		}
		body, err := r.applyColor(frag.Body, item, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err,
				"color application failed for %s on layer %s", item.label, item.layer)
		}
		frag = &plot.Fragment{Layer: item.layer, Canvas: canvas, Body: body}
		frags[item.layer] = append(frags[item.layer], frag)
		result.Stats.FragmentCount++

		if opts.KeepIntermediates {
			name := fmt.Sprintf("%s-%s-%s.svg", sanitizeName(item.layer), sanitizeName(item.label), item.id[:8])
			result.Intermediates[name] = body
		}
		logger.Debug("rendered fragment", "layer", item.layer, "group", item.label, "cache", hit)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	mergeStart := time.Now()
	observability.Pipeline().OnMergeStart(ctx, result.Stats.FragmentCount)
	merged, err := svg.Merge(frags, layers, svg.MergeOptions{
		Canvas:     canvas,
		Background: r.background(opts, theme),
		Styles:     styles,
		Title:      filepath.Base(opts.BoardPath),
	})
	observability.Pipeline().OnMergeComplete(ctx, len(merged), time.Since(mergeStart), err)
	if err != nil {
		return nil, err
	}
	result.SVG = merged
	result.Metadata = meta
	result.Stats.MergeTime = time.Since(mergeStart)

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, merged, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.OutputPath)
		}
	}
	if opts.MetadataPath != "" && meta != nil {
		if err := meta.WriteFile(opts.MetadataPath); err != nil {
			return nil, err
		}
	}

	logger.Info("render complete",
		"layers", result.Stats.LayerCount,
		"fragments", result.Stats.FragmentCount,
		"cacheHits", result.Stats.CacheHits,
		"duration", result.Stats.RenderTime+result.Stats.MergeTime)
	return result, nil
}

// BuildResolver assembles the four color tiers from pipeline options. The
// nets listing command uses it without running a render.
func BuildResolver(opts Options, logger *log.Logger) (*colors.Resolver, *colors.Theme, error) {
	cliRules, err := colors.ParseCLIRules(opts.NetColors)
	if err != nil {
		return nil, nil, err
	}

	var configRules colors.RuleSet
	if opts.ColorsFile != "" {
		configRules, err = config.LoadNetColors(opts.ColorsFile, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	var projectRules colors.RuleSet
	if !opts.IgnoreProjectColors {
		if proPath, ok := config.DiscoverProject(opts.BoardPath); ok {
			projectRules, err = config.LoadProjectColors(proPath, logger)
			if err != nil {
				return nil, nil, err
			}
			logger.Debug("loaded project colors", "file", proPath, "rules", len(projectRules))
		}
	}

	var theme *colors.Theme
	if opts.Theme != ThemeNone {
		t, _ := colors.ThemeByName(opts.Theme)
		theme = &t
	}

	return colors.NewResolver(colors.ResolverOptions{
		CLI:     cliRules,
		Config:  configRules,
		Project: projectRules,
		Theme:   theme,
		Logger:  logger,
	}), theme, nil
}

// plan expands the layer stack into work items. Copper layers split into
// one item per color group, or one per net in CSS mode; non-copper layers
// render once from the unfiltered board.
func (r *Runner) plan(brd *board.Board, layers []string, resolver *colors.Resolver, theme *colors.Theme,
	namer *svg.ClassNamer, meta *svg.Metadata, opts Options, logger *log.Logger) ([]workItem, []svg.ClassStyle) {

	var items []workItem
	var styles []svg.ClassStyle

	for _, layer := range layers {
		if !board.IsCopper(layer) {
			items = append(items, workItem{
				id:    uuid.NewString(),
				layer: layer,
				label: "board",
				color: r.graphicColor(layer, theme),
			})
			continue
		}

		full := board.NewView(brd, board.ViewOptions{SkipZones: opts.SkipZones})
		codes := full.NetsOnLayer(layer)
		if len(codes) == 0 {
			logger.Debug("no nets with geometry on layer", "layer", layer)
			continue
		}

		byName := map[string]int{}
		names := make([]string, 0, len(codes))
		for _, c := range codes {
			name := brd.Net(c).DisplayName()
			byName[name] = c
			names = append(names, name)
		}
		sort.Strings(names)

		if opts.CSSClasses {
			for _, name := range names {
				res := resolver.Resolve(name)
				class := namer.Assign(name, layer)
				items = append(items, workItem{
					id:       uuid.NewString(),
					layer:    layer,
					netCodes: []int{byName[name]},
					netNames: []string{name},
					label:    name,
					color:    res.Color,
					class:    class,
					net:      name,
				})
				styles = append(styles, svg.ClassStyle{Class: class, Color: res.Color})
				meta.AddClass(name, res.Color, layer, class)
			}
			continue
		}

		for _, group := range colors.GroupByColor(names, resolver) {
			groupCodes := make([]int, 0, len(group.Nets))
			for _, n := range group.Nets {
				groupCodes = append(groupCodes, byName[n])
			}
			sort.Ints(groupCodes)
			items = append(items, workItem{
				id:       uuid.NewString(),
				layer:    layer,
				netCodes: groupCodes,
				netNames: group.Nets,
				label:    group.Color,
				color:    group.Color,
			})
		}
	}
	return items, styles
}

// renderItem plots one work item, going through the fragment cache. The
// cached artifact is the raw plot before color application, so one cached
// fragment serves both color and CSS modes.
func (r *Runner) renderItem(ctx context.Context, brd *board.Board, item workItem, canvas board.Rect,
	boardHash string, opts Options) (*plot.Fragment, bool, error) {

	observability.Pipeline().OnPlotStart(ctx, item.layer, item.label)
	start := time.Now()

	key := cache.FragmentKey(boardHash, cache.FragmentKeyOpts{
		Layer:     item.layer,
		Nets:      item.netNames,
		SkipZones: opts.SkipZones,
		Outline:   !board.IsCopper(item.layer),
	})
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "fragment")
		observability.Pipeline().OnPlotComplete(ctx, item.layer, item.label, true, time.Since(start), nil)
		return &plot.Fragment{Layer: item.layer, Canvas: canvas, Body: data}, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "fragment")

	view := board.NewView(brd, board.ViewOptions{
		NetCodes:  item.netCodes,
		SkipZones: opts.SkipZones,
	})
	frag, err := r.Engine.Render(ctx, view, item.layer, canvas)
	observability.Pipeline().OnPlotComplete(ctx, item.layer, item.label, false, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, frag.Body, 0); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "fragment", len(frag.Body))
	}
	return frag, false, nil
}

func (r *Runner) applyColor(body []byte, item workItem, opts Options) ([]byte, error) {
	if opts.CSSClasses && item.class != "" {
		return svg.Classify(body, item.class)
	}
	return svg.Recolor(body, item.color)
}

// graphicColor picks the drawing color for a non-copper layer.
func (r *Runner) graphicColor(layer string, theme *colors.Theme) string {
	if theme == nil {
		return colors.FallbackGray
	}
	switch {
	case layer == board.EdgeCuts:
		return theme.Outline
	case strings.HasSuffix(layer, ".SilkS"):
		return theme.Silkscreen
	default:
		return theme.Outline
	}
}

func (r *Runner) background(opts Options, theme *colors.Theme) string {
	if opts.NoBackground {
		return ""
	}
	if opts.Background != "" {
		return opts.Background
	}
	if theme != nil {
		return theme.Background
	}
	return ""
}

func copperOf(layers []string) []string {
	var out []string
	for _, l := range layers {
		if board.IsCopper(l) {
			out = append(out, l)
		}
	}
	return out
}

func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
