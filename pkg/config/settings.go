package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pcbtools/netsvg/pkg/errors"
)

// Settings are the tool defaults read from netsvg.toml. Command line flags
// override any value set here.
type Settings struct {
	Theme      string `toml:"theme"`
	Background string `toml:"background"`
	Layers     string `toml:"layers"`
	SkipZones  bool   `toml:"skip_zones"`
	CacheDir   string `toml:"cache_dir"`
	CSSClasses bool   `toml:"css_classes"`
}

// DefaultSettings are the built-in defaults used when no netsvg.toml
// exists.
func DefaultSettings() Settings {
	return Settings{
		Theme:  "dark",
		Layers: "F.Cu,B.Cu,Edge.Cuts",
	}
}

// LoadSettings reads netsvg.toml from the given path. A missing file is
// not an error; built-in defaults are returned.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return s, nil
}
