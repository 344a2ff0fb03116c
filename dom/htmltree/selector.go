package htmltree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/pinchtab/ariaquery/dom"
)

// hiddenPseudo matches elements that are hidden themselves or inside a
// hidden ancestor. cascadia has no equivalent.
const hiddenPseudo = ":hidden"

var errEmptySelector = errors.New("empty selector")

type clause struct {
	sel    cascadia.Sel // nil matches any element
	hidden bool
}

type matcher struct {
	expr    string
	clauses []clause
}

// CompileSelector compiles a comma separated selector list. Attribute values
// may be unquoted, including values with digits, spaces or commas, and a
// clause may end in :hidden.
func (d *Document) CompileSelector(expr string) (dom.Matcher, error) {
	parts := splitTopLevel(expr)
	m := &matcher{expr: expr, clauses: make([]clause, 0, len(parts))}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		var c clause
		if strings.HasSuffix(part, hiddenPseudo) {
			c.hidden = true
			part = strings.TrimSpace(strings.TrimSuffix(part, hiddenPseudo))
		}
		if part == "" {
			if !c.hidden {
				return nil, fmt.Errorf("compile selector %q: %w", expr, errEmptySelector)
			}
			m.clauses = append(m.clauses, c)
			continue
		}
		sel, err := cascadia.Parse(quoteAttrValues(part))
		if err != nil {
			return nil, fmt.Errorf("compile selector %q: %w", expr, err)
		}
		c.sel = sel
		m.clauses = append(m.clauses, c)
	}
	return m, nil
}

func (m *matcher) Match(n dom.Node) bool {
	r, ok := n.(interface{ Raw() *html.Node })
	if !ok {
		return false
	}
	h := r.Raw()
	if h == nil || h.Type != html.ElementNode {
		return false
	}
	for _, c := range m.clauses {
		if c.sel != nil && !c.sel.Match(h) {
			continue
		}
		if c.hidden && !dom.HiddenWithin(n) {
			continue
		}
		return true
	}
	return false
}

func (m *matcher) String() string { return m.expr }

// splitTopLevel splits on commas outside brackets, parentheses and quotes.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'':
			i = skipString(s, i) - 1
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// skipString returns the index just past the quoted string starting at i.
func skipString(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1
		}
	}
	return len(s)
}

var cssString = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteAttrValues rewrites [name=value] as [name="value"] so values that are
// not CSS identifiers still parse.
func quoteAttrValues(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		switch s[i] {
		case '"', '\'':
			j := skipString(s, i)
			b.WriteString(s[i:j])
			i = j
		case '[':
			j := i + 1
			for j < len(s) && s[j] != ']' {
				if s[j] == '"' || s[j] == '\'' {
					j = skipString(s, j)
				} else {
					j++
				}
			}
			if j >= len(s) {
				b.WriteString(s[i:])
				return b.String()
			}
			b.WriteString(quoteAttr(s[i+1 : j]))
			i = j + 1
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

func quoteAttr(inner string) string {
	name, value, ok := strings.Cut(inner, "=")
	if !ok {
		return "[" + inner + "]"
	}
	if v := strings.TrimSpace(value); v != "" && (v[0] == '"' || v[0] == '\'') {
		return "[" + inner + "]"
	}
	// Unquoted values are taken verbatim, surrounding spaces included.
	return "[" + strings.TrimSpace(name) + `="` + cssString.Replace(value) + `"]`
}
