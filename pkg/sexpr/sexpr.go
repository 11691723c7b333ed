// Package sexpr reads the s-expression format used by KiCad board files.
//
// The reader is streaming and makes a single pass over the input, so board
// files of arbitrary size parse in memory proportional to their tree. Nodes
// are a plain struct rather than an interface: a node is either an atom
// (Value set, no children) or a list (children set). The first atom of a list
// is conventionally its key, e.g. (net 1 "GND") has key "net".
package sexpr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Node is one s-expression: an atom or a list.
type Node struct {
	Value    string  // atom text (unquoted); empty for lists
	Quoted   bool    // whether the atom was written as a quoted string
	Children []*Node // list elements; nil for atoms
	Line     int     // 1-based input line where the node started
}

// IsList reports whether the node is a list.
func (n *Node) IsList() bool { return n.Children != nil }

// Key returns the leading atom of a list, or "" for atoms and empty lists.
func (n *Node) Key() string {
	if n == nil || len(n.Children) == 0 {
		return ""
	}
	head := n.Children[0]
	if head.IsList() {
		return ""
	}
	return head.Value
}

// Find returns the first child list whose key matches, or nil.
func (n *Node) Find(key string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.IsList() && c.Key() == key {
			return c
		}
	}
	return nil
}

// FindAll returns every child list whose key matches, in document order.
func (n *Node) FindAll(key string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.IsList() && c.Key() == key {
			out = append(out, c)
		}
	}
	return out
}

// Arg returns the i-th argument atom of a list (skipping the key), or "".
// For (net 1 "GND"), Arg(0) is "1" and Arg(1) is "GND".
func (n *Node) Arg(i int) string {
	idx := i + 1
	if n == nil || idx < 1 || idx >= len(n.Children) {
		return ""
	}
	c := n.Children[idx]
	if c.IsList() {
		return ""
	}
	return c.Value
}

// Args returns all argument atoms of a list (skipping the key and sublists).
func (n *Node) Args() []string {
	if n == nil {
		return nil
	}
	var out []string
	for i, c := range n.Children {
		if i == 0 || c.IsList() {
			continue
		}
		out = append(out, c.Value)
	}
	return out
}

// FloatArg parses the i-th argument as a float64.
func (n *Node) FloatArg(i int) (float64, error) {
	s := n.Arg(i)
	if s == "" {
		return 0, fmt.Errorf("missing numeric argument %d in (%s ...)", i, n.Key())
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("argument %d of (%s ...): %w", i, n.Key(), err)
	}
	return v, nil
}

// IntArg parses the i-th argument as an int.
func (n *Node) IntArg(i int) (int, error) {
	s := n.Arg(i)
	if s == "" {
		return 0, fmt.Errorf("missing integer argument %d in (%s ...)", i, n.Key())
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("argument %d of (%s ...): %w", i, n.Key(), err)
	}
	return v, nil
}

// String renders the node back as an s-expression. Quoted atoms keep their
// quoting so the output is parseable again; formatting is not preserved.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if !n.IsList() {
		if n.Quoted {
			b.WriteString(strconv.Quote(n.Value))
		} else {
			b.WriteString(n.Value)
		}
		return
	}
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.write(b)
	}
	b.WriteByte(')')
}

// Parse reads a single top-level s-expression from r.
// Trailing input after the first expression is ignored, matching how KiCad
// files contain exactly one (kicad_pcb ...) form.
func Parse(r io.Reader) (*Node, error) {
	sc := &scanner{r: bufio.NewReader(r), line: 1}
	node, err := sc.next()
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("empty input")
	}
	return node, nil
}

// ParseString reads a single s-expression from a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

type scanner struct {
	r      *bufio.Reader
	line   int
	peeked rune
	hasPk  bool
}

// next returns the next complete expression, or nil at EOF.
func (s *scanner) next() (*Node, error) {
	for {
		ch, err := s.peek()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case unicode.IsSpace(ch):
			s.read()
		case ch == '#':
			s.skipLine()
		case ch == '(':
			return s.list()
		case ch == ')':
			return nil, fmt.Errorf("line %d: unexpected ')'", s.line)
		default:
			return s.atom()
		}
	}
}

func (s *scanner) list() (*Node, error) {
	start := s.line
	s.read() // consume '('
	node := &Node{Children: []*Node{}, Line: start}

	for {
		ch, err := s.peek()
		if err == io.EOF {
			return nil, fmt.Errorf("line %d: unterminated list", start)
		}
		if err != nil {
			return nil, err
		}

		switch {
		case unicode.IsSpace(ch):
			s.read()
		case ch == '#':
			s.skipLine()
		case ch == ')':
			s.read()
			return node, nil
		case ch == '(':
			child, err := s.list()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		default:
			child, err := s.atom()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
}

func (s *scanner) atom() (*Node, error) {
	start := s.line
	ch, _ := s.peek()
	if ch == '"' {
		v, err := s.quoted()
		if err != nil {
			return nil, err
		}
		return &Node{Value: v, Quoted: true, Line: start}, nil
	}

	var b strings.Builder
	for {
		ch, err := s.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		b.WriteRune(ch)
		s.read()
	}
	return &Node{Value: b.String(), Line: start}, nil
}

func (s *scanner) quoted() (string, error) {
	start := s.line
	s.read() // consume opening quote

	var b strings.Builder
	for {
		ch, err := s.read()
		if err != nil {
			return "", fmt.Errorf("line %d: unterminated string", start)
		}
		switch ch {
		case '"':
			return b.String(), nil
		case '\\':
			esc, err := s.read()
			if err != nil {
				return "", fmt.Errorf("line %d: unterminated escape", start)
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

func (s *scanner) skipLine() {
	for {
		ch, err := s.read()
		if err != nil || ch == '\n' {
			return
		}
	}
}

func (s *scanner) peek() (rune, error) {
	if s.hasPk {
		return s.peeked, nil
	}
	ch, _, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	s.peeked = ch
	s.hasPk = true
	return ch, nil
}

func (s *scanner) read() (rune, error) {
	if s.hasPk {
		s.hasPk = false
		if s.peeked == '\n' {
			s.line++
		}
		return s.peeked, nil
	}
	ch, _, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if ch == '\n' {
		s.line++
	}
	return ch, nil
}
