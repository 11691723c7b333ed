// Package config loads the user-facing configuration surfaces: JSON net
// color files, KiCad project files, and the netsvg.toml defaults file.
//
// Net color files are parsed leniently (comments and trailing commas
// allowed) because users maintain them by hand. Declaration order is
// preserved: within one file the first declared pattern that matches a net
// wins, so decoding goes through the JSON token stream rather than a map.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tidwall/jsonc"

	"github.com/pcbtools/netsvg/pkg/colors"
	"github.com/pcbtools/netsvg/pkg/errors"
)

// LoadNetColors reads a net color configuration file. Three layouts are
// accepted: a KiCad project style object under net_settings.net_colors, a
// top-level net_colors object, or a bare net-name-to-color object. Entries
// with unparseable colors are skipped with a warning rather than failing
// the whole file.
func LoadNetColors(path string, logger *log.Logger) (colors.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "color config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	rs, err := ParseNetColors(data, logger)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if len(rs) == 0 {
		logger.Info("no net color configuration found", "file", path)
	}
	return rs, nil
}

// ParseNetColors parses net color JSON (with comments allowed) into an
// ordered rule set.
func ParseNetColors(data []byte, logger *log.Logger) (colors.RuleSet, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	plain := jsonc.ToJSON(data)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(plain, &probe); err != nil {
		return nil, err
	}

	raw := netColorsObject(plain, probe)
	if raw == nil {
		return nil, nil
	}

	var rs colors.RuleSet
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		pattern := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		var colorStr string
		if err := json.Unmarshal(value, &colorStr); err != nil {
			logger.Warn("skipping non-string color value", "net", pattern)
			continue
		}
		next, err := rs.Add(pattern, colorStr)
		if err != nil {
			logger.Warn("skipping invalid color", "net", pattern, "error", errors.UserMessage(err))
			continue
		}
		rs = next
	}
	return rs, nil
}

// netColorsObject locates the net color object for whichever of the three
// layouts the file uses. Returns nil when the file holds no usable object.
func netColorsObject(plain []byte, probe map[string]json.RawMessage) json.RawMessage {
	if ns, ok := probe["net_settings"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(ns, &inner); err == nil {
			if nc, ok := inner["net_colors"]; ok && isObject(nc) {
				return nc
			}
		}
		return nil
	}
	if nc, ok := probe["net_colors"]; ok {
		if isObject(nc) {
			return nc
		}
		return nil
	}
	if isObject(plain) {
		return plain
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
