// Package snapshot flattens a document into the list of role-bearing
// elements with their accessible names, the way an assistive technology
// would present it.
package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pinchtab/ariaquery/accname"
	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/query"
)

// FocusedMarker is set on the active element by live captures.
const FocusedMarker = "data-ariaquery-focused"

type Node struct {
	Ref      string `json:"ref" yaml:"ref"`
	Role     string `json:"role" yaml:"role"`
	Name     string `json:"name" yaml:"name,omitempty"`
	Depth    int    `json:"depth" yaml:"depth"`
	Tag      string `json:"tag" yaml:"tag"`
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Checked  bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Focused  bool   `json:"focused,omitempty" yaml:"focused,omitempty"`
}

var InteractiveRoles = map[string]bool{
	"button": true, "link": true, "textbox": true, "searchbox": true,
	"combobox": true, "listbox": true, "option": true, "checkbox": true,
	"radio": true, "switch": true, "slider": true, "spinbutton": true,
	"menuitem": true, "menuitemcheckbox": true, "menuitemradio": true,
	"tab": true, "treeitem": true,
}

const FilterInteractive = "interactive"

var errNoDocument = errors.New("snapshot: node has no document")

type Options struct {
	// Filter is "" for every role or FilterInteractive.
	Filter string
	// MaxDepth drops nodes nested deeper than this; negative means no limit.
	MaxDepth int
	// Scope is a selector; its first match becomes the root.
	Scope string
}

// Refs maps snapshot refs back to document nodes.
type Refs map[string]dom.Node

// Build returns the role-bearing, non-hidden elements under root in
// document order. Depth counts role-bearing ancestors below root.
func Build(root dom.Node, opts Options) ([]Node, Refs, error) {
	if root == nil {
		return nil, Refs{}, nil
	}
	if opts.Scope != "" {
		seq, err := query.Select(root, opts.Scope)
		if err != nil {
			return nil, nil, err
		}
		scoped, ok := query.First(seq)
		if !ok {
			return nil, nil, fmt.Errorf("scope %q: %w", opts.Scope, query.ErrNotFound)
		}
		root = scoped
	}
	doc := root.Document()
	if doc == nil {
		return nil, nil, errNoDocument
	}
	roles, err := compileRoles(doc)
	if err != nil {
		return nil, nil, err
	}

	b := builder{opts: opts, roles: roles, refs: Refs{}}
	b.walk(root, 0, true)
	return b.flat, b.refs, nil
}

type builder struct {
	opts  Options
	roles roleIndex
	flat  []Node
	refs  Refs
	next  int
}

func (b *builder) walk(n dom.Node, depth int, isRoot bool) {
	if n.Kind() != dom.ElementNode && !isRoot {
		return
	}
	if !isRoot && (n.Hidden() || dom.AttrOr(n, "aria-hidden", "") == "true") {
		return
	}
	childDepth := depth
	if !isRoot {
		if role := b.roles.of(n); role != "" {
			b.emit(n, role, depth)
			childDepth = depth + 1
		}
	}
	for _, c := range n.Children() {
		b.walk(c, childDepth, false)
	}
}

func (b *builder) emit(n dom.Node, role string, depth int) {
	if b.opts.MaxDepth >= 0 && depth > b.opts.MaxDepth {
		return
	}
	if b.opts.Filter == FilterInteractive && !InteractiveRoles[role] {
		return
	}
	ref := fmt.Sprintf("e%d", b.next)
	b.next++
	b.refs[ref] = n
	b.flat = append(b.flat, Node{
		Ref:      ref,
		Role:     role,
		Name:     accname.Compute(n),
		Depth:    depth,
		Tag:      n.Tag(),
		ID:       dom.ID(n),
		Value:    valueOf(n),
		Checked:  flag(n, "checked", "aria-checked", "input"),
		Required: flag(n, "required", "aria-required", "input", "select", "textarea"),
		Disabled: flag(n, "disabled", "aria-disabled", "button", "fieldset", "input", "option", "select", "textarea"),
		Focused:  hasAttr(n, FocusedMarker),
	})
}

func valueOf(n dom.Node) string {
	switch n.Tag() {
	case "input":
		switch dom.InputType(n) {
		case "checkbox", "radio", "button", "submit", "reset", "image", "hidden":
			return ""
		}
		return dom.AttrOr(n, "value", "")
	case "textarea":
		return n.Text()
	case "select":
		return dom.SelectValue(n)
	}
	if v, ok := n.Attr("aria-valuetext"); ok {
		return v
	}
	return dom.AttrOr(n, "aria-valuenow", "")
}

// flag reports a boolean HTML attribute on one of tags, or its aria-*
// counterpart set to "true".
func flag(n dom.Node, native, ariaAttr string, tags ...string) bool {
	if dom.Is(n, tags...) && hasAttr(n, native) {
		return true
	}
	return dom.AttrOr(n, ariaAttr, "") == "true"
}

func hasAttr(n dom.Node, name string) bool {
	_, ok := n.Attr(name)
	return ok
}

type roleMatcher struct {
	role string
	m    dom.Matcher
}

// roleIndex infers a role from the explicit role attribute, else from the
// implicit element selectors. Presentation is tried first so an empty alt
// wins over img.
type roleIndex []roleMatcher

// skipped roles never appear in a snapshot.
var skipped = map[string]bool{"none": true, "presentation": true, "generic": true}

func compileRoles(doc dom.Document) (roleIndex, error) {
	order := []aria.Role{aria.RolePresentation}
	for _, r := range aria.Roles() {
		if r != aria.RolePresentation {
			order = append(order, r)
		}
	}
	var idx roleIndex
	for _, r := range order {
		var sels []string
		for _, s := range r.Implicit() {
			// Untyped inputs are text boxes unless they carry a list.
			if r == aria.RoleCombobox && s == "input:not([type])" {
				continue
			}
			sels = append(sels, s)
		}
		if len(sels) == 0 {
			continue
		}
		m, err := doc.CompileSelector(strings.Join(sels, ","))
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", r, err)
		}
		idx = append(idx, roleMatcher{role: r.Name(), m: m})
	}
	return idx, nil
}

func (idx roleIndex) of(n dom.Node) string {
	if fields := strings.Fields(dom.AttrOr(n, "role", "")); len(fields) > 0 {
		role := strings.ToLower(fields[0])
		if skipped[role] {
			return ""
		}
		return role
	}
	for _, rm := range idx {
		if rm.m.Match(n) {
			if skipped[rm.role] {
				return ""
			}
			return rm.role
		}
	}
	return ""
}

// Diff compares two snapshots by role, name, tag and id.
func Diff(prev, curr []Node) (added, changed, removed []Node) {
	prevMap := make(map[string]Node, len(prev))
	for _, n := range prev {
		prevMap[n.key()] = n
	}

	currMap := make(map[string]bool, len(curr))
	for _, n := range curr {
		key := n.key()
		currMap[key] = true
		old, existed := prevMap[key]
		if !existed {
			added = append(added, n)
		} else if old.Value != n.Value || old.Focused != n.Focused || old.Disabled != n.Disabled || old.Checked != n.Checked {
			changed = append(changed, n)
		}
	}

	for _, n := range prev {
		if !currMap[n.key()] {
			removed = append(removed, n)
		}
	}
	return
}

func (n Node) key() string {
	return fmt.Sprintf("%s:%s:%s#%s", n.Role, n.Name, n.Tag, n.ID)
}
