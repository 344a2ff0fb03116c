// Package query finds nodes by ARIA role, property or state, optionally
// constrained by accessible name.
//
//	btn, ok := query.Find[dom.Node](doc.Root(), aria.RoleButton, query.WithName("Save"))
//	for box := range query.FindAll[htmltree.InputElement](doc.Root(), aria.RoleCheckbox) {
//		...
//	}
//
// Candidates are the descendants of the root, in document order. A match
// that is not a T is skipped.
package query

import (
	"iter"
	"log/slog"

	"github.com/pinchtab/ariaquery/accname"
	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
)

// Option constrains a query.
type Option func(*options)

type options struct {
	name    string
	hasName bool
}

// WithName keeps only candidates whose accessible name equals name exactly.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
		o.hasName = true
	}
}

// plan is a compiled query.
type plan struct {
	selector string
	name     string
	hasName  bool
	// conflict is set when a name was given for an aria-label property
	// and disagrees with the label.
	conflict bool
}

func newPlan(q aria.Query, opts []Option) plan {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	p := plan{selector: aria.Compile(q), name: o.name, hasName: o.hasName}
	if prop, ok := q.(aria.Property); ok && prop.Kind() == aria.PropLabel && p.hasName {
		// The attribute value is the name, so matching is structural.
		p.conflict = prop.Value().Fragment() != p.name
		p.hasName = false
	}
	return p
}

// nodes yields the matching nodes under root.
func (p plan) nodes(root dom.Node) (iter.Seq[dom.Node], error) {
	if p.conflict {
		return empty, nil
	}
	seq, err := Select(root, p.selector)
	if err != nil {
		return nil, err
	}
	if !p.hasName {
		return seq, nil
	}
	return func(yield func(dom.Node) bool) {
		for n := range seq {
			if accname.Compute(n) == p.name && !yield(n) {
				return
			}
		}
	}, nil
}

func empty(func(dom.Node) bool) {}

// FindAll yields every node under root that matches q and narrows to T.
// The sequence re-reads the tree each time it is iterated. An invalid
// selector yields nothing; use Get or Select to see the error.
func FindAll[T any](root dom.Node, q aria.Query, opts ...Option) iter.Seq[T] {
	return func(yield func(T) bool) {
		p := newPlan(q, opts)
		seq, err := p.nodes(root)
		if err != nil {
			slog.Debug("query selector rejected", "selector", p.selector, "err", err)
			return
		}
		for v := range narrow[T](seq) {
			if !yield(v) {
				return
			}
		}
	}
}

// Find returns the first node under root that matches q and narrows to T.
func Find[T any](root dom.Node, q aria.Query, opts ...Option) (T, bool) {
	return First(FindAll[T](root, q, opts...))
}

// Get is Find with an error describing why nothing was found.
func Get[T any](root dom.Node, q aria.Query, opts ...Option) (T, error) {
	var zero T
	p := newPlan(q, opts)
	if p.conflict {
		return zero, &NotFoundError{Selector: p.selector, Name: p.name, Err: ErrNameMismatch}
	}
	seq, err := p.nodes(root)
	if err != nil {
		return zero, err
	}
	if v, ok := First(narrow[T](seq)); ok {
		return v, nil
	}
	nf := &NotFoundError{Selector: p.selector}
	if p.hasName {
		nf.Name = p.name
	}
	return zero, nf
}

// First returns the first value of seq.
func First[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// Collect gathers seq into a slice.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func narrow[T any](seq iter.Seq[dom.Node]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range seq {
			v, ok := any(n).(T)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
