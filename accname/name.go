// Package accname computes the accessible name of a node following the
// W3C Accessible Name and Description Computation as mapped for HTML.
//
// The computation never fails. Unresolvable references contribute nothing
// and every node is visited at most once per computation, so reference
// cycles terminate.
package accname

import (
	"strings"

	"github.com/pinchtab/ariaquery/dom"
)

// visitedSet holds the nodes already named during one computation.
type visitedSet map[dom.Node]struct{}

func (v visitedSet) has(n dom.Node) bool {
	_, ok := v[n]
	return ok
}

// claim marks n visited and reports whether it was new.
func (v visitedSet) claim(n dom.Node) bool {
	if v.has(n) {
		return false
	}
	v[n] = struct{}{}
	return true
}

// Compute returns the accessible name of n.
func Compute(n dom.Node) string {
	if n == nil {
		return ""
	}
	return compute(n, visitedSet{n: {}}, false)
}

// compute names n. inLabelledBy is set while naming the targets of an
// aria-labelledby reference, which are not followed again.
func compute(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	switch n.Kind() {
	case dom.TextNode:
		return strings.TrimSpace(n.Text())
	case dom.ElementNode:
	default:
		return childNames(n, visited, inLabelledBy)
	}

	if hidden(n) {
		return ""
	}
	if presentational(n) {
		return childNames(n, visited, inLabelledBy)
	}

	var acc string
	if !inLabelledBy {
		acc = labelledBy(n, visited)
	}
	if label, _ := n.Attr("aria-label"); strings.TrimSpace(label) != "" {
		return join(strings.TrimSpace(label), acc)
	}
	return join(acc, textAlternative(n, visited, inLabelledBy))
}

// hidden reports whether n is excluded from naming. aria-labelledby keeps a
// hidden element nameable; aria-hidden="false" overrides styles.
func hidden(n dom.Node) bool {
	if _, ok := n.Attr("aria-labelledby"); ok {
		return false
	}
	switch v, _ := n.Attr("aria-hidden"); v {
	case "false":
		return false
	case "true":
		return true
	}
	return n.Hidden()
}

func presentational(n dom.Node) bool {
	role, _ := n.Attr("role")
	switch first, _, _ := strings.Cut(strings.TrimSpace(role), " "); strings.ToLower(first) {
	case "presentation", "none":
		return true
	}
	return false
}

func labelledBy(n dom.Node, visited visitedSet) string {
	refs, ok := n.Attr("aria-labelledby")
	doc := n.Document()
	if !ok || doc == nil {
		return ""
	}
	var names []string
	for _, id := range strings.Fields(refs) {
		target := doc.ElementByID(id)
		if target == nil || !visited.claim(target) {
			continue
		}
		if s := compute(target, visited, true); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, " ")
}

func textAlternative(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	switch categoryOf(n) {
	case catInput:
		return inputAlternative(n, visited, inLabelledBy)
	case catTextArea:
		return labelTitleOrPlaceholder(n, visited, inLabelledBy)
	case catSubtree:
		return subtreeOrTitle(n, visited, inLabelledBy)
	case catFirstChild:
		return captionOrTitle(n, captions[n.Tag()], visited, inLabelledBy)
	case catLabelOrTitle:
		return labelOrTitle(n, visited, inLabelledBy)
	case catSummary:
		if s := subtreeOrTitle(n, visited, inLabelledBy); s != "" {
			return s
		}
		if dom.Is(n.Parent(), "details") {
			return ""
		}
		return "details"
	case catAltOrTitle:
		return altOrTitle(n)
	case catLabel:
		return strings.Join(strings.Fields(childNames(n, visited, inLabelledBy)), " ")
	default:
		return childNames(n, visited, inLabelledBy)
	}
}

func inputAlternative(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	typ := dom.InputType(n)
	switch inputCategories[typ] {
	case inputTextLike:
		return labelTitleOrPlaceholder(n, visited, inLabelledBy)
	case inputButton:
		return valueOr(n, dom.AttrOr(n, "title", ""))
	case inputSubmit:
		return valueOr(n, typ)
	case inputImage:
		if s := altOrTitle(n); s != "" {
			return s
		}
		return "Submit"
	case inputCheckable:
		return labelOrTitle(n, visited, inLabelledBy)
	case inputRange:
		if v, ok := n.Attr("aria-valuetext"); ok {
			return v
		}
		if v, ok := n.Attr("aria-valuenow"); ok {
			return v
		}
		return dom.AttrOr(n, "value", "")
	}
	return ""
}

func valueOr(n dom.Node, fallback string) string {
	if v := dom.AttrOr(n, "value", ""); v != "" {
		return v
	}
	return fallback
}

func altOrTitle(n dom.Node) string {
	if alt := dom.AttrOr(n, "alt", ""); alt != "" {
		return alt
	}
	return dom.AttrOr(n, "title", "")
}

func subtreeOrTitle(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	if s := childNames(n, visited, inLabelledBy); s != "" {
		return s
	}
	return dom.AttrOr(n, "title", "")
}

// captionOrTitle names n from the content of its first child with the given
// tag, falling back to n's title. Without such a child the name is empty.
func captionOrTitle(n dom.Node, tag string, visited visitedSet, inLabelledBy bool) string {
	for _, c := range n.Children() {
		if !dom.Is(c, tag) {
			continue
		}
		if s := childNames(c, visited, inLabelledBy); s != "" {
			return s
		}
		return dom.AttrOr(n, "title", "")
	}
	return ""
}

// labelOrTitle names n from the labels whose for attribute matches its id,
// then from an enclosing label without a for attribute, then from title.
func labelOrTitle(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	var names []string
	add := func(label dom.Node) {
		if !visited.claim(label) {
			return
		}
		if s := compute(label, visited, inLabelledBy); s != "" {
			names = append(names, s)
		}
	}
	if id, doc := dom.ID(n), n.Document(); id != "" && doc != nil {
		for m := range dom.Walk(doc.Root()) {
			if dom.Is(m, "label") && dom.AttrOr(m, "for", "") == id {
				add(m)
			}
		}
	}
	if len(names) == 0 {
		if label := dom.Closest(n, "label"); label != nil {
			if _, ok := label.Attr("for"); !ok {
				add(label)
			}
		}
	}
	if len(names) > 0 {
		return strings.Join(names, " ")
	}
	return dom.AttrOr(n, "title", "")
}

func labelTitleOrPlaceholder(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	if s := labelOrTitle(n, visited, inLabelledBy); s != "" {
		return s
	}
	return dom.AttrOr(n, "placeholder", "")
}

// childNames joins the names of n's unvisited children in order.
func childNames(n dom.Node, visited visitedSet, inLabelledBy bool) string {
	var names []string
	for _, c := range n.Children() {
		if !visited.claim(c) {
			continue
		}
		if s := compute(c, visited, inLabelledBy); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, " ")
}

func join(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
