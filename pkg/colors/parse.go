// Package colors handles color parsing, net color resolution, and net
// grouping. Every color is canonicalized to uppercase #RRGGBB on the way in,
// so downstream comparisons and grouping are plain string equality.
package colors

import (
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pcbtools/netsvg/pkg/errors"
)

var (
	hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)
	rgbPattern = regexp.MustCompile(`^rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)(?:\s*,\s*[\d.]+)?\s*\)$`)
)

// Parse converts a color in hex, rgb()/rgba(), or named form to canonical
// uppercase #RRGGBB. Alpha channels are accepted and dropped.
func Parse(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New(errors.ErrCodeInvalidColor, "color value cannot be empty")
	}

	if hexPattern.MatchString(value) {
		c, err := colorful.Hex(value[:7])
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", value)
		}
		return strings.ToUpper(c.Hex()), nil
	}

	if m := rgbPattern.FindStringSubmatch(value); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return "", errors.New(errors.ErrCodeInvalidColor,
				"RGB values must be between 0-255, got (%d, %d, %d)", r, g, b)
		}
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		return strings.ToUpper(c.Hex()), nil
	}

	if hex, ok := namedColors[strings.ToLower(value)]; ok {
		return hex, nil
	}

	return "", errors.New(errors.ErrCodeInvalidColor, "invalid color format: %q", value)
}

// ValidHex reports whether s is a canonical-length hex color (#RRGGBB,
// any case).
var validHexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func ValidHex(s string) bool {
	return validHexPattern.MatchString(s)
}

// Luminance returns the perceived luminance of a #RRGGBB color in [0, 1].
// Used to pick readable text on color swatches.
func Luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	_, _, l := c.HSLuv()
	return l
}
