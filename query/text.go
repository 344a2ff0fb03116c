package query

import (
	"errors"
	"iter"
	"log/slog"
	"strings"

	"github.com/pinchtab/ariaquery/dom"
)

var errNoDocument = errors.New("node has no document")

// Select yields the elements under root matching a raw selector
// expression, in document order.
func Select(root dom.Node, expr string) (iter.Seq[dom.Node], error) {
	if root == nil {
		return empty, nil
	}
	doc := root.Document()
	if doc == nil {
		return nil, &SelectorError{Selector: expr, Err: errNoDocument}
	}
	m, err := doc.CompileSelector(expr)
	if err != nil {
		return nil, &SelectorError{Selector: expr, Err: err}
	}
	return filter(root, m.Match), nil
}

// BySelector is Select narrowed to T. An invalid selector yields nothing.
func BySelector[T any](root dom.Node, expr string) iter.Seq[T] {
	return func(yield func(T) bool) {
		seq, err := Select(root, expr)
		if err != nil {
			slog.Debug("query selector rejected", "selector", expr, "err", err)
			return
		}
		for v := range narrow[T](seq) {
			if !yield(v) {
				return
			}
		}
	}
}

// ByID yields elements under root whose id equals id.
func ByID[T any](root dom.Node, id string) iter.Seq[T] {
	return narrow[T](filter(root, func(n dom.Node) bool {
		return dom.ID(n) == id
	}))
}

// ByClass yields elements under root whose class list contains class.
func ByClass[T any](root dom.Node, class string) iter.Seq[T] {
	return narrow[T](filter(root, func(n dom.Node) bool {
		for _, c := range strings.Fields(dom.AttrOr(n, "class", "")) {
			if c == class {
				return true
			}
		}
		return false
	}))
}

// ByText yields elements that directly contain text and whose rendered
// text equals text.
func ByText[T any](root dom.Node, text string) iter.Seq[T] {
	return narrow[T](filter(root, func(n dom.Node) bool {
		return ownsText(n) && dom.RenderedText(n) == text
	}))
}

func ownsText(n dom.Node) bool {
	for _, c := range n.Children() {
		if c.Kind() == dom.TextNode && strings.TrimSpace(c.Text()) != "" {
			return true
		}
	}
	return false
}

// ByLabelText yields the controls associated with a label whose trimmed
// text equals text, either through the label's for attribute or by
// nesting. Each control is yielded once.
func ByLabelText[T any](root dom.Node, text string) iter.Seq[T] {
	return narrow[T](func(yield func(dom.Node) bool) {
		seen := map[dom.Node]bool{}
		for label := range filter(root, func(n dom.Node) bool { return dom.Is(n, "label") }) {
			if strings.TrimSpace(label.Text()) != text {
				continue
			}
			c := labeledControl(label)
			if c == nil || seen[c] {
				continue
			}
			seen[c] = true
			if !yield(c) {
				return
			}
		}
	})
}

func labeledControl(label dom.Node) dom.Node {
	if id, ok := label.Attr("for"); ok {
		doc := label.Document()
		if doc == nil {
			return nil
		}
		if c := doc.ElementByID(id); dom.Labelable(c) {
			return c
		}
		return nil
	}
	for n := range dom.Descendants(label) {
		if dom.Labelable(n) {
			return n
		}
	}
	return nil
}

// ByPlaceholderText yields inputs and textareas whose placeholder equals
// text.
func ByPlaceholderText[T any](root dom.Node, text string) iter.Seq[T] {
	return narrow[T](filter(root, func(n dom.Node) bool {
		if !dom.Is(n, "input", "textarea") {
			return false
		}
		p, ok := n.Attr("placeholder")
		return ok && p == text
	}))
}

// ByDisplayValue yields inputs, selects and textareas whose current value
// equals text.
func ByDisplayValue[T any](root dom.Node, text string) iter.Seq[T] {
	return narrow[T](filter(root, func(n dom.Node) bool {
		switch n.Tag() {
		case "input":
			return dom.AttrOr(n, "value", "") == text
		case "textarea":
			return n.Text() == text
		case "select":
			return dom.SelectValue(n) == text
		}
		return false
	}))
}

// filter yields the elements under root accepted by keep.
func filter(root dom.Node, keep func(dom.Node) bool) iter.Seq[dom.Node] {
	return func(yield func(dom.Node) bool) {
		for n := range dom.Elements(dom.Descendants(root)) {
			if keep(n) && !yield(n) {
				return
			}
		}
	}
}
