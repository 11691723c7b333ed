package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pcbtools/netsvg/pkg/buildinfo"
	"github.com/pcbtools/netsvg/pkg/cache"
	"github.com/pcbtools/netsvg/pkg/config"
	"github.com/pcbtools/netsvg/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "netsvg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "netsvg renders KiCad boards as net-colored SVGs",
		Long:         `netsvg is a CLI tool for rendering KiCad PCB files as SVG documents with per-net colors, CSS class annotation, and machine-readable net metadata.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Attach the shared logger so subcommands can pull it from their context.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.netsCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.initConfigCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool, cacheDirFlag string) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache, cacheDirFlag), nil, c.Logger)
}

func newCache(noCache bool, cacheDirFlag string) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir := cacheDirFlag
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/netsvg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadSettings finds and reads netsvg.toml: the working directory first,
// then the XDG config directory.
func loadSettings() (config.Settings, error) {
	if _, err := os.Stat("netsvg.toml"); err == nil {
		return config.LoadSettings("netsvg.toml")
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return config.LoadSettings(filepath.Join(configHome, appName, "netsvg.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		return config.LoadSettings(filepath.Join(home, ".config", appName, "netsvg.toml"))
	}
	return config.DefaultSettings(), nil
}
