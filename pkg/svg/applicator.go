// Package svg post-processes rendered fragments: assigning colors or CSS
// classes, naming classes, merging layer fragments into one document, and
// exporting the metadata sidecar.
package svg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pcbtools/netsvg/pkg/colors"
	"github.com/pcbtools/netsvg/pkg/errors"
)

var (
	fillAttrPattern   = regexp.MustCompile(`fill:\s*(#[0-9A-Fa-f]{6})`)
	strokeAttrPattern = regexp.MustCompile(`stroke:\s*(#[0-9A-Fa-f]{6})`)
	styleRefPattern   = regexp.MustCompile(`style="([^"]*)"`)
	fillDeclPattern   = regexp.MustCompile(`fill:\s*[^;"]+;?`)
	strokeDeclRegexp  = regexp.MustCompile(`stroke:\s*[^;"]+;?`)
)

// nonCopperColors are excluded when detecting the plotted copper color;
// black and white come from outlines and backgrounds.
var nonCopperColors = map[string]bool{
	"#000000": true,
	"#FFFFFF": true,
}

// DetectColor finds the plotted color in a fragment body: the first fill
// or stroke color that is neither black nor white. Tracks and graphic
// items plot as stroked paths with fill:none, so a fragment may carry its
// color in stroke declarations only.
func DetectColor(body []byte) (string, bool) {
	for _, pattern := range []*regexp.Regexp{fillAttrPattern, strokeAttrPattern} {
		for _, m := range pattern.FindAllSubmatch(body, -1) {
			c := strings.ToUpper(string(m[1]))
			if !nonCopperColors[c] {
				return c, true
			}
		}
	}
	return "", false
}

// Recolor replaces the fragment's plotted color with the resolved net
// color. Both cases of the hex form and the rgb() form are replaced so no
// stale color survives.
func Recolor(body []byte, newColor string) ([]byte, error) {
	if !colors.ValidHex(newColor) {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", newColor)
	}
	current, ok := DetectColor(body)
	if !ok {
		// nothing plotted in a detectable color, pass through untouched
		return body, nil
	}
	out := string(body)
	out = strings.ReplaceAll(out, strings.ToLower(current), strings.ToLower(newColor))
	out = strings.ReplaceAll(out, strings.ToUpper(current), strings.ToUpper(newColor))
	out = strings.ReplaceAll(out, rgbForm(current), rgbForm(newColor))
	return []byte(out), nil
}

// Classify strips fill and stroke colors from every styled element that
// used the plotted color and tags it with the CSS class instead. The class
// rule itself goes into the merged document's style block.
func Classify(body []byte, class string) ([]byte, error) {
	current, ok := DetectColor(body)
	if !ok {
		return body, nil
	}
	lower, upper := strings.ToLower(current), strings.ToUpper(current)
	rgb := rgbForm(current)

	out := styleRefPattern.ReplaceAllFunc(body, func(m []byte) []byte {
		style := styleRefPattern.FindSubmatch(m)[1]
		s := string(style)
		if !strings.Contains(s, lower) && !strings.Contains(s, upper) && !strings.Contains(s, rgb) {
			return m
		}
		s = fillDeclPattern.ReplaceAllString(s, "")
		s = strokeDeclRegexp.ReplaceAllString(s, "")
		s = strings.Trim(strings.TrimSpace(s), ";")
		s = strings.TrimSpace(s)
		return []byte(fmt.Sprintf(`style=%s class=%s`, strconv.Quote(s), strconv.Quote(class)))
	})
	return out, nil
}

func rgbForm(hex string) string {
	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}
