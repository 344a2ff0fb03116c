package htmltree

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/pinchtab/ariaquery/dom"
)

// Element is an HTML element. Tag-specific wrappers embed it.
type Element struct {
	node *html.Node
	doc  *Document
}

var (
	_ dom.Node = Element{}
	_ dom.Node = InputElement{}
	_ dom.Node = Text{}
	_ dom.Node = other{}
)

func (e Element) Kind() dom.Kind                  { return dom.ElementNode }
func (e Element) Tag() string                     { return e.node.Data }
func (e Element) Attr(name string) (string, bool) { return lookup(e.node, name) }
func (e Element) Text() string                    { return textContent(e.node) }
func (e Element) Hidden() bool                    { return e.doc.hidden(e.node) }
func (e Element) Parent() dom.Node                { return e.doc.wrap(e.node.Parent) }
func (e Element) Children() []dom.Node            { return children(e.doc, e.node) }
func (e Element) PrevSibling() dom.Node           { return e.doc.wrap(e.node.PrevSibling) }
func (e Element) NextSibling() dom.Node           { return e.doc.wrap(e.node.NextSibling) }
func (e Element) Document() dom.Document          { return e.doc }
func (e Element) Raw() *html.Node                 { return e.node }
func (e Element) ID() string                      { return attr(e.node, "id") }

func (e Element) HasAttr(name string) bool {
	_, ok := lookup(e.node, name)
	return ok
}

// Classes returns the whitespace separated class list.
func (e Element) Classes() []string { return strings.Fields(attr(e.node, "class")) }

func (e Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// OuterHTML renders the element and its subtree.
func (e Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return ""
	}
	return buf.String()
}

// Disabled reports the disabled attribute, including inheritance from a
// disabled fieldset.
func (e Element) Disabled() bool {
	if e.HasAttr("disabled") {
		return true
	}
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "fieldset" {
			if _, ok := lookup(p, "disabled"); ok {
				return true
			}
		}
	}
	return false
}

// InputElement is an <input>.
type InputElement struct{ Element }

// Type returns the lowercase input type; missing or unknown types are "text".
func (e InputElement) Type() string { return dom.InputType(e) }

func (e InputElement) Value() string       { return attr(e.node, "value") }
func (e InputElement) Placeholder() string { return attr(e.node, "placeholder") }
func (e InputElement) Name() string        { return attr(e.node, "name") }
func (e InputElement) Checked() bool       { return e.HasAttr("checked") }
func (e InputElement) Required() bool      { return e.HasAttr("required") }

// TextAreaElement is a <textarea>; its value is its text content.
type TextAreaElement struct{ Element }

func (e TextAreaElement) Value() string       { return textContent(e.node) }
func (e TextAreaElement) Placeholder() string { return attr(e.node, "placeholder") }
func (e TextAreaElement) Required() bool      { return e.HasAttr("required") }

// SelectElement is a <select>.
type SelectElement struct{ Element }

// Options returns the option elements in document order, including those
// inside optgroups.
func (e SelectElement) Options() []dom.Node {
	var out []dom.Node
	for n := range e.doc.nodes(e.node) {
		if n.Type == html.ElementNode && n.Data == "option" {
			out = append(out, e.doc.wrap(n))
		}
	}
	return out
}

// Value returns the value of the selected option; see dom.SelectValue.
func (e SelectElement) Value() string { return dom.SelectValue(e) }

func (e SelectElement) Required() bool { return e.HasAttr("required") }

// ButtonElement is a <button>.
type ButtonElement struct{ Element }

// Type returns the button type, "submit" by default.
func (e ButtonElement) Type() string {
	switch t := strings.ToLower(attr(e.node, "type")); t {
	case "button", "reset":
		return t
	}
	return "submit"
}

// AnchorElement is an <a>.
type AnchorElement struct{ Element }

func (e AnchorElement) Href() string { return attr(e.node, "href") }

// ImageElement is an <img>.
type ImageElement struct{ Element }

func (e ImageElement) Alt() string { return attr(e.node, "alt") }
func (e ImageElement) Src() string { return attr(e.node, "src") }

// LabelElement is a <label>.
type LabelElement struct{ Element }

func (e LabelElement) For() string { return attr(e.node, "for") }

// Control returns the labeled control: the element named by the for
// attribute, else the first labelable descendant. It returns nil when there
// is none.
func (e LabelElement) Control() dom.Node {
	if id, ok := lookup(e.node, "for"); ok {
		n := e.doc.ElementByID(id)
		if n != nil && dom.Labelable(n) {
			return n
		}
		return nil
	}
	for n := range e.doc.nodes(e.node) {
		if n == e.node || n.Type != html.ElementNode {
			continue
		}
		if w := e.doc.wrap(n); dom.Labelable(w) {
			return w
		}
	}
	return nil
}

// Text is a text node.
type Text struct {
	node *html.Node
	doc  *Document
}

func (t Text) Kind() dom.Kind             { return dom.TextNode }
func (t Text) Tag() string                { return "" }
func (t Text) Attr(string) (string, bool) { return "", false }
func (t Text) Text() string               { return t.node.Data }
func (t Text) Hidden() bool               { return false }
func (t Text) Parent() dom.Node           { return t.doc.wrap(t.node.Parent) }
func (t Text) Children() []dom.Node       { return nil }
func (t Text) PrevSibling() dom.Node      { return t.doc.wrap(t.node.PrevSibling) }
func (t Text) NextSibling() dom.Node      { return t.doc.wrap(t.node.NextSibling) }
func (t Text) Document() dom.Document     { return t.doc }
func (t Text) Raw() *html.Node            { return t.node }

// other covers the document, doctype and comment nodes.
type other struct {
	node *html.Node
	doc  *Document
}

func (o other) Kind() dom.Kind             { return dom.OtherNode }
func (o other) Tag() string                { return "" }
func (o other) Attr(string) (string, bool) { return "", false }
func (o other) Text() string {
	if o.node.Type == html.CommentNode || o.node.Type == html.DoctypeNode {
		return ""
	}
	return textContent(o.node)
}
func (o other) Hidden() bool           { return o.node.Type == html.CommentNode }
func (o other) Parent() dom.Node       { return o.doc.wrap(o.node.Parent) }
func (o other) Children() []dom.Node   { return children(o.doc, o.node) }
func (o other) PrevSibling() dom.Node  { return o.doc.wrap(o.node.PrevSibling) }
func (o other) NextSibling() dom.Node  { return o.doc.wrap(o.node.NextSibling) }
func (o other) Document() dom.Document { return o.doc }
func (o other) Raw() *html.Node        { return o.node }

func children(d *Document, n *html.Node) []dom.Node {
	var out []dom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, d.wrap(c))
	}
	return out
}
