// Package dom defines the read-only document tree that name computation and
// queries run against. Providers such as htmltree implement it.
package dom

import (
	"iter"
	"strings"
)

// Kind classifies a node.
type Kind int

const (
	OtherNode Kind = iota
	ElementNode
	TextNode
)

func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	}
	return "other"
}

// Node is one node of a document. Implementations must be comparable, and
// two Node values are equal only when they refer to the same node.
type Node interface {
	Kind() Kind
	// Tag is the lowercase tag name of an element, "" otherwise.
	Tag() string
	Attr(name string) (string, bool)
	// Text is the data of a text node, or the concatenated text of all
	// descendant text nodes for other kinds.
	Text() string
	// Hidden reports whether the node itself is not rendered: display:none,
	// visibility:hidden or collapse, or natively hidden.
	Hidden() bool
	Parent() Node
	Children() []Node
	PrevSibling() Node
	NextSibling() Node
	Document() Document
}

// Document owns a tree of nodes.
type Document interface {
	Root() Node
	// ElementByID returns the first element in document order with the id,
	// or nil.
	ElementByID(id string) Node
	SelectorEngine
}

// SelectorEngine compiles selector expressions for a document.
type SelectorEngine interface {
	CompileSelector(expr string) (Matcher, error)
}

// Matcher tests a node against a compiled selector.
type Matcher interface {
	Match(n Node) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(Node) bool

func (f MatcherFunc) Match(n Node) bool { return f(n) }

// Walk yields root and its descendants in pre-order.
func Walk(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if root != nil {
			walk(root, yield)
		}
	}
}

// Descendants yields the descendants of root in pre-order, excluding root.
func Descendants(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if root == nil {
			return
		}
		for _, c := range root.Children() {
			if !walk(c, yield) {
				return
			}
		}
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children() {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// Elements filters a sequence down to element nodes.
func Elements(seq iter.Seq[Node]) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for n := range seq {
			if n.Kind() == ElementNode && !yield(n) {
				return
			}
		}
	}
}

// Is reports whether n is an element with one of the given tags.
func Is(n Node, tags ...string) bool {
	if n == nil || n.Kind() != ElementNode {
		return false
	}
	tag := n.Tag()
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AttrOr returns the attribute value or def when it is absent.
func AttrOr(n Node, name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// ID returns the id attribute or "".
func ID(n Node) string { return AttrOr(n, "id", "") }

// Closest returns the nearest ancestor element of n with the tag, or nil.
func Closest(n Node, tag string) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if Is(p, tag) {
			return p
		}
	}
	return nil
}

// Labelable reports whether n is an element a label can be associated with.
func Labelable(n Node) bool {
	switch {
	case Is(n, "button", "meter", "output", "progress", "select", "textarea"):
		return true
	case Is(n, "input"):
		return InputType(n) != "hidden"
	}
	return false
}

// HiddenWithin reports whether n or any ancestor is hidden.
func HiddenWithin(n Node) bool {
	for ; n != nil; n = n.Parent() {
		if n.Hidden() {
			return true
		}
	}
	return false
}

// RenderedText returns the text of n excluding hidden subtrees, with
// whitespace runs collapsed to one space and trimmed.
func RenderedText(n Node) string {
	var b strings.Builder
	var collect func(Node)
	collect = func(n Node) {
		switch n.Kind() {
		case TextNode:
			b.WriteString(n.Text())
		case ElementNode:
			if n.Hidden() {
				return
			}
			fallthrough
		default:
			for _, c := range n.Children() {
				collect(c)
			}
		}
	}
	if !HiddenWithin(n) {
		collect(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var inputTypes = map[string]bool{
	"button": true, "checkbox": true, "color": true, "date": true,
	"datetime-local": true, "email": true, "file": true, "hidden": true,
	"image": true, "month": true, "number": true, "password": true,
	"radio": true, "range": true, "reset": true, "search": true,
	"submit": true, "tel": true, "text": true, "time": true, "url": true,
	"week": true,
}

// InputType returns the state of an input's type attribute: the lowercase
// type, or "text" when it is missing or unknown.
func InputType(n Node) string {
	t, _ := n.Attr("type")
	t = strings.ToLower(strings.TrimSpace(t))
	if !inputTypes[t] {
		return "text"
	}
	return t
}

// SelectValue returns the value of a select element: the value of the last
// option marked selected, else of the first option unless it is a multiple
// select. An option without a value attribute uses its text.
func SelectValue(n Node) string {
	var chosen, first Node
	for o := range Descendants(n) {
		if !Is(o, "option") {
			continue
		}
		if first == nil {
			first = o
		}
		if _, ok := o.Attr("selected"); ok {
			chosen = o
		}
	}
	if chosen == nil {
		if _, multiple := n.Attr("multiple"); multiple {
			return ""
		}
		chosen = first
	}
	if chosen == nil {
		return ""
	}
	if v, ok := chosen.Attr("value"); ok {
		return v
	}
	return strings.Join(strings.Fields(chosen.Text()), " ")
}
