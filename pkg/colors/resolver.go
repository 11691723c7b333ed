package colors

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// Source identifies which tier produced a net's color.
type Source int

const (
	SourceCLI Source = iota
	SourceConfig
	SourceProject
	SourceTheme
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceCLI:
		return "cli"
	case SourceConfig:
		return "config"
	case SourceProject:
		return "project"
	case SourceTheme:
		return "theme"
	default:
		return "fallback"
	}
}

// Resolution is a resolved net color and where it came from.
type Resolution struct {
	Color  string
	Source Source
}

// Resolver resolves net colors through the priority tiers: command line,
// JSON config, project file, then theme default. The first tier with a
// match wins outright; lower tiers are not consulted.
type Resolver struct {
	cli     RuleSet
	config  RuleSet
	project RuleSet
	theme   *Theme
	logger  *log.Logger

	warned map[string]bool
}

// ResolverOptions configures a Resolver. Any tier may be empty; a nil
// Theme disables the theme tier entirely.
type ResolverOptions struct {
	CLI     RuleSet
	Config  RuleSet
	Project RuleSet
	Theme   *Theme
	Logger  *log.Logger
}

// NewResolver builds a resolver from per-tier rule sets.
func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		cli:     opts.CLI,
		config:  opts.Config,
		project: opts.Project,
		theme:   opts.Theme,
		logger:  logger,
		warned:  map[string]bool{},
	}
}

// Resolve returns the color for a net. A net that matches no tier gets
// the neutral fallback gray and a warning; resolution never fails.
func (r *Resolver) Resolve(net string) Resolution {
	if c, ok := r.cli.ResolveCLI(net); ok {
		return Resolution{Color: c, Source: SourceCLI}
	}
	if c, ok := r.config.Resolve(net); ok {
		return Resolution{Color: c, Source: SourceConfig}
	}
	if c, ok := r.project.Resolve(net); ok {
		return Resolution{Color: c, Source: SourceProject}
	}
	if r.theme != nil {
		return Resolution{Color: r.theme.Copper, Source: SourceTheme}
	}
	if !r.warned[net] {
		r.warned[net] = true
		r.logger.Warn("no color for net, using neutral gray", "net", net, "color", FallbackGray)
	}
	return Resolution{Color: FallbackGray, Source: SourceFallback}
}

// Explicit reports whether the net has a color from an explicit tier
// (anything above the theme default).
func (r *Resolver) Explicit(net string) bool {
	res := r.Resolve(net)
	return res.Source == SourceCLI || res.Source == SourceConfig || res.Source == SourceProject
}

// Group is a set of nets sharing one resolved color.
type Group struct {
	Color string
	Nets  []string // sorted
}

// GroupByColor buckets nets by resolved color. Groups come back sorted by
// color and net lists sorted by name, so iteration order is stable.
func GroupByColor(nets []string, r *Resolver) []Group {
	byColor := map[string][]string{}
	for _, net := range nets {
		res := r.Resolve(net)
		byColor[res.Color] = append(byColor[res.Color], net)
	}
	colors := make([]string, 0, len(byColor))
	for c := range byColor {
		colors = append(colors, c)
	}
	sort.Strings(colors)
	groups := make([]Group, 0, len(colors))
	for _, c := range colors {
		members := byColor[c]
		sort.Strings(members)
		groups = append(groups, Group{Color: c, Nets: members})
	}
	return groups
}
