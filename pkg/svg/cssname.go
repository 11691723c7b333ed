package svg

import (
	"fmt"
	"strings"
	"unicode"
)

// ClassNamer hands out unique CSS class names for (net, layer) pairs
// within one document. Collisions after sanitization get a numeric suffix;
// they are expected for net names that differ only in punctuation.
type ClassNamer struct {
	used map[string]bool
}

// NewClassNamer returns an empty namer. One namer per output document.
func NewClassNamer() *ClassNamer {
	return &ClassNamer{used: map[string]bool{}}
}

// Assign returns a unique class name for a net on a layer, of the form
// net-<net>-<layer>.
func (n *ClassNamer) Assign(net, layer string) string {
	base := "net-" + sanitizeClass(net+"-"+layer)
	name := base
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	n.used[name] = true
	return name
}

// sanitizeClass lowercases and collapses every run of non-alphanumeric
// characters into a single dash.
func sanitizeClass(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	out := b.String()
	if out == "" {
		return "unknown-net"
	}
	return out
}
