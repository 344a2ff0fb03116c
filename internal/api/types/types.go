// Package types contains the request and response bodies of the HTTP and
// websocket API.
package types

import (
	"errors"

	"github.com/pinchtab/ariaquery/accname"
	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/internal/snapshot"
	"github.com/pinchtab/ariaquery/query"
)

// ErrBadQuery reports a query that names zero or several of role,
// property and state.
var ErrBadQuery = errors.New("query needs exactly one of role, property or state")

// QuerySpec is the JSON form of a semantic query:
//
//	{"role":"button","name":"Save"}
//	{"property":"required","value":"true"}
//	{"state":"checked","value":"mixed"}
type QuerySpec struct {
	Role     string  `json:"role,omitempty" yaml:"role,omitempty"`
	Property string  `json:"property,omitempty" yaml:"property,omitempty"`
	State    string  `json:"state,omitempty" yaml:"state,omitempty"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Name     *string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Query parses the spec into a typed query.
func (s QuerySpec) Query() (aria.Query, error) {
	var kind, name string
	n := 0
	if s.Role != "" {
		kind, name = "role", s.Role
		n++
	}
	if s.Property != "" {
		kind, name = "property", s.Property
		n++
	}
	if s.State != "" {
		kind, name = "state", s.State
		n++
	}
	if n != 1 {
		return nil, ErrBadQuery
	}
	return aria.Parse(kind, name, s.Value)
}

// Options returns the name constraint, if any.
func (s QuerySpec) Options() []query.Option {
	if s.Name == nil {
		return nil
	}
	return []query.Option{query.WithName(*s.Name)}
}

// DocumentRequest loads a document from inline HTML, a file under the
// state dir, or a live URL. Exactly one is set.
type DocumentRequest struct {
	HTML string `json:"html,omitempty"`
	File string `json:"file,omitempty"`
	URL  string `json:"url,omitempty"`
}

type DocumentResponse struct {
	ID       string `json:"id"`
	Elements int    `json:"elements"`
	Cached   bool   `json:"cached,omitempty"`
}

type CompileResponse struct {
	Selector string `json:"selector"`
}

// QueryRequest runs a query against a cached document or inline HTML.
type QueryRequest struct {
	QuerySpec
	Doc  string `json:"doc,omitempty"`
	HTML string `json:"html,omitempty"`
	All  bool   `json:"all,omitempty"`
}

// Match describes one matched element.
type Match struct {
	Ref  string `json:"ref,omitempty"`
	Tag  string `json:"tag"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	HTML string `json:"html,omitempty"`
}

// NewMatch describes n with its accessible name.
func NewMatch(n dom.Node) Match {
	m := Match{Tag: n.Tag(), ID: dom.ID(n), Name: accname.Compute(n)}
	if o, ok := n.(interface{ OuterHTML() string }); ok {
		m.HTML = o.OuterHTML()
	}
	return m
}

type QueryResponse struct {
	Selector string  `json:"selector"`
	Count    int     `json:"count"`
	Matches  []Match `json:"matches"`
}

// NameRequest computes accessible names of the elements matching a raw
// selector, or of one ref from the document's latest snapshot.
type NameRequest struct {
	Doc      string `json:"doc,omitempty"`
	HTML     string `json:"html,omitempty"`
	Selector string `json:"selector,omitempty"`
	Ref      string `json:"ref,omitempty"`
}

type NameResponse struct {
	Matches []Match `json:"matches"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    int64  `json:"uptime"`
	Documents int    `json:"documents"`
	Requests  uint64 `json:"requests"`
	Failed    uint64 `json:"failed"`
}

// SnapshotResponse is the JSON form of a document snapshot.
type SnapshotResponse struct {
	ID        string          `json:"id"`
	Count     int             `json:"count"`
	Truncated bool            `json:"truncated,omitempty"`
	Nodes     []snapshot.Node `json:"nodes"`
}

// DiffResponse compares the snapshots of two documents.
type DiffResponse struct {
	ID      string          `json:"id"`
	Against string          `json:"against"`
	Added   []snapshot.Node `json:"added"`
	Changed []snapshot.Node `json:"changed"`
	Removed []snapshot.Node `json:"removed"`
}

// StreamDone terminates a websocket query stream.
type StreamDone struct {
	Done  bool   `json:"done"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}
