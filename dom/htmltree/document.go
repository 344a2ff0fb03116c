// Package htmltree implements dom over golang.org/x/net/html, with selectors
// evaluated by cascadia.
package htmltree

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"

	"github.com/pinchtab/ariaquery/dom"
)

// HiddenMarker is the attribute the browser capture sets on elements whose
// computed style hides them.
const HiddenMarker = "data-ariaquery-hidden"

// Option configures a Document.
type Option func(*Document)

// WithHiddenMarker treats elements carrying attr as hidden, in addition to
// the hiding inferred from markup and inline styles.
func WithHiddenMarker(attr string) Option {
	return func(d *Document) { d.marker = attr }
}

// Document is a parsed HTML document.
type Document struct {
	root   *html.Node
	marker string
}

var _ dom.Document = (*Document)(nil)

// Parse reads a complete HTML document. Fragments are placed in <body> the
// way a browser would.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return New(root, opts...), nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// MustParse is ParseString for fixtures; it panics on error.
func MustParse(s string, opts ...Option) *Document {
	d, err := ParseString(s, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// New wraps an already parsed tree.
func New(root *html.Node, opts ...Option) *Document {
	d := &Document{root: root}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Document) Root() dom.Node { return d.wrap(d.root) }

// Body returns the body element, or the root when there is none.
func (d *Document) Body() dom.Node {
	for n := range d.nodes(d.root) {
		if n.Type == html.ElementNode && n.Data == "body" {
			return d.wrap(n)
		}
	}
	return d.Root()
}

func (d *Document) ElementByID(id string) dom.Node {
	if id == "" {
		return nil
	}
	for n := range d.nodes(d.root) {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			return d.wrap(n)
		}
	}
	return nil
}

// Node wraps a raw node that belongs to this document.
func (d *Document) Node(n *html.Node) dom.Node { return d.wrap(n) }

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error { return html.Render(w, d.root) }

// nodes yields n and its descendants in pre-order.
func (d *Document) nodes(n *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var visit func(*html.Node) bool
		visit = func(n *html.Node) bool {
			if !yield(n) {
				return false
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !visit(c) {
					return false
				}
			}
			return true
		}
		visit(n)
	}
}

// wrap returns the node type for n. The same *html.Node always maps to the
// same dynamic type so wrapped values compare equal.
func (d *Document) wrap(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return Text{node: n, doc: d}
	case html.ElementNode:
		e := Element{node: n, doc: d}
		switch n.Data {
		case "input":
			return InputElement{e}
		case "textarea":
			return TextAreaElement{e}
		case "select":
			return SelectElement{e}
		case "button":
			return ButtonElement{e}
		case "a":
			return AnchorElement{e}
		case "img":
			return ImageElement{e}
		case "label":
			return LabelElement{e}
		}
		return e
	}
	return other{node: n, doc: d}
}

func attr(n *html.Node, name string) string {
	v, _ := lookup(n, name)
	return v
}

func lookup(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			} else {
				collect(c)
			}
		}
	}
	collect(n)
	return b.String()
}
