package colors

import (
	"path"
	"strings"

	"github.com/pcbtools/netsvg/pkg/errors"
)

// Rule maps a net name pattern to a color. Patterns use glob syntax
// (*, ?, [...]), are case-sensitive, and must match the whole net name.
// A pattern without metacharacters is an ordinary exact match.
type Rule struct {
	Pattern string
	Color   string // canonical #RRGGBB
}

// IsLiteral reports whether the pattern contains no glob metacharacters.
func (r Rule) IsLiteral() bool {
	return !strings.ContainsAny(r.Pattern, "*?[")
}

// Match reports whether the rule's pattern matches the net name.
func (r Rule) Match(net string) bool {
	ok, err := path.Match(r.Pattern, net)
	return err == nil && ok
}

// ValidatePattern rejects malformed glob patterns up front so resolution
// never has to report pattern errors per net.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return errors.New(errors.ErrCodeInvalidInput, "empty net pattern")
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "bad net pattern %q", pattern)
	}
	return nil
}

// RuleSet is an ordered list of rules. Resolution is first-declared-match
// wins; declaration order is the order rules were appended.
type RuleSet []Rule

// Add parses and appends a rule, canonicalizing the color.
func (rs RuleSet) Add(pattern, color string) (RuleSet, error) {
	if err := ValidatePattern(pattern); err != nil {
		return rs, err
	}
	hex, err := Parse(color)
	if err != nil {
		return rs, err
	}
	return append(rs, Rule{Pattern: pattern, Color: hex}), nil
}

// Resolve returns the color of the first rule matching the net.
func (rs RuleSet) Resolve(net string) (string, bool) {
	for _, r := range rs {
		if r.Match(net) {
			return r.Color, true
		}
	}
	return "", false
}

// ResolveCLI applies the command-line ordering rule: literal entries take
// precedence over wildcard entries, and among literals the later assignment
// wins. Wildcards keep first-declared-wins order.
func (rs RuleSet) ResolveCLI(net string) (string, bool) {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].IsLiteral() && rs[i].Match(net) {
			return rs[i].Color, true
		}
	}
	for _, r := range rs {
		if !r.IsLiteral() && r.Match(net) {
			return r.Color, true
		}
	}
	return "", false
}

// ParseCLIRules builds a rule set from repeated NAME:COLOR flag values,
// preserving argument order. The separator is the last colon so net names
// containing colons still parse.
func ParseCLIRules(args []string) (RuleSet, error) {
	var rs RuleSet
	for _, arg := range args {
		idx := strings.LastIndex(arg, ":")
		if idx <= 0 || idx == len(arg)-1 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"net color %q must be NAME:COLOR", arg)
		}
		var err error
		rs, err = rs.Add(arg[:idx], arg[idx+1:])
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
