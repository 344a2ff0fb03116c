package htmltree

import (
	"strings"

	"golang.org/x/net/html"
)

// unrendered elements never produce boxes.
var unrendered = map[string]bool{
	"base":     true,
	"head":     true,
	"link":     true,
	"meta":     true,
	"noscript": true,
	"script":   true,
	"style":    true,
	"template": true,
	"title":    true,
}

// hidden reports whether n is not rendered. display is not inherited, so
// only n's own declaration counts; visibility is inherited and the nearest
// declaration wins.
func (d *Document) hidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if d.marker != "" {
		if _, ok := lookup(n, d.marker); ok {
			return true
		}
	}
	if unrendered[n.Data] {
		return true
	}
	if _, ok := lookup(n, "hidden"); ok {
		return true
	}
	if n.Data == "input" && strings.EqualFold(attr(n, "type"), "hidden") {
		return true
	}
	if v, ok := styleValue(n, "display"); ok && v == "none" {
		return true
	}
	for p := n; p != nil && p.Type == html.ElementNode; p = p.Parent {
		if v, ok := styleValue(p, "visibility"); ok {
			return v == "hidden" || v == "collapse"
		}
	}
	return false
}

// styleValue returns the last declaration of prop in the inline style
// attribute, lowercased and without !important.
func styleValue(n *html.Node, prop string) (string, bool) {
	style, ok := lookup(n, "style")
	if !ok {
		return "", false
	}
	var val string
	found := false
	for _, decl := range strings.Split(style, ";") {
		name, v, ok := strings.Cut(decl, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), prop) {
			continue
		}
		v = strings.ToLower(strings.TrimSpace(v))
		v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
		val, found = v, true
	}
	return val, found
}
