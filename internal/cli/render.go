package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcbtools/netsvg/pkg/errors"
	"github.com/pcbtools/netsvg/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output            string   // output SVG path; derived from the board name when empty
	layers            string   // comma-separated layer stack, front-to-back
	netColors         []string // repeatable NAME:COLOR assignments
	colorsFile        string   // JSON net color configuration
	ignoreProject     bool     // skip the .kicad_pro color tier
	cssClasses        bool     // emit CSS classes instead of literal colors
	metadata          string   // metadata sidecar path (CSS mode)
	theme             string   // built-in theme: dark, light, none
	background        string   // background color override
	noBackground      bool     // draw no background at all
	fit               string   // canvas fit: none, all, edges_only
	skipZones         bool     // exclude filled zones from every pass
	keepIntermediates bool     // write per-split fragments next to the output
	noCache           bool     // disable the fragment cache
	cacheDir          string   // fragment cache directory override
}

// renderCommand creates the render command, the main pipeline entry point.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <board.kicad_pcb>",
		Short: "Render a board to a net-colored SVG",
		Long: `Render reads a KiCad board file, resolves a color for every net
(command line > config file > project file > theme default), and writes a
single merged SVG. With --css-classes each net gets a CSS class per copper
layer instead of a hard-coded color, and --metadata writes the class map
as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG file (default: <board>.svg)")
	cmd.Flags().StringVar(&opts.layers, "layers", "", "comma-separated layer stack, front-to-back (default: F.Cu,B.Cu,Edge.Cuts)")
	cmd.Flags().StringArrayVar(&opts.netColors, "net-color", nil, "net color assignment NAME:COLOR (repeatable, highest priority)")
	cmd.Flags().StringVar(&opts.colorsFile, "colors", "", "JSON net color configuration file")
	cmd.Flags().BoolVar(&opts.ignoreProject, "ignore-project-colors", false, "ignore net colors from the .kicad_pro project file")
	cmd.Flags().BoolVar(&opts.cssClasses, "css-classes", false, "tag nets with CSS classes instead of literal colors")
	cmd.Flags().StringVar(&opts.metadata, "metadata", "", "write net/class metadata JSON (requires --css-classes)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: dark (default), light, none")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (overrides the theme background)")
	cmd.Flags().BoolVar(&opts.noBackground, "no-background", false, "draw no background")
	cmd.Flags().StringVar(&opts.fit, "fit", "", "canvas fit: none, all, edges_only (default)")
	cmd.Flags().BoolVar(&opts.skipZones, "skip-zones", false, "exclude filled copper zones")
	cmd.Flags().BoolVar(&opts.keepIntermediates, "keep-intermediates", false, "write per-split fragments next to the output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the fragment cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "fragment cache directory")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, boardPath string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(boardPath, filepath.Ext(boardPath)) + ".svg"
	}

	popts := pipeline.Options{
		BoardPath:           boardPath,
		OutputPath:          output,
		MetadataPath:        opts.metadata,
		Layers:              firstOf(opts.layers, settings.Layers),
		NetColors:           opts.netColors,
		ColorsFile:          opts.colorsFile,
		IgnoreProjectColors: opts.ignoreProject,
		Theme:               firstOf(opts.theme, settings.Theme),
		CSSClasses:          opts.cssClasses || settings.CSSClasses,
		Background:          firstOf(opts.background, settings.Background),
		NoBackground:        opts.noBackground,
		Fit:                 opts.fit,
		SkipZones:           opts.skipZones || settings.SkipZones,
		KeepIntermediates:   opts.keepIntermediates,
		Logger:              logger,
	}

	runner := c.newRunner(opts.noCache, firstOf(opts.cacheDir, settings.CacheDir))

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("rendering %s", filepath.Base(boardPath)))
	spin.Start()
	result, err := runner.Execute(ctx, popts)
	spin.Stop()
	if err != nil {
		printError("render failed: %s", errors.UserMessage(err))
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d fragments across %d layers",
		result.Stats.FragmentCount, result.Stats.LayerCount))

	printSuccess("wrote %s", output)
	printFile(output)
	if opts.metadata != "" {
		printFile(opts.metadata)
	}
	if result.Stats.CacheHits > 0 {
		printDetail("%d of %d fragments from cache", result.Stats.CacheHits, result.Stats.FragmentCount)
	}

	if opts.keepIntermediates {
		dir := filepath.Dir(output)
		for name, body := range result.Intermediates {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, body, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write intermediate %s", path)
			}
			printDetail("intermediate %s", path)
		}
	}
	return nil
}

// firstOf returns the first non-empty string.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
