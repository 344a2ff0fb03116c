package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/api/types"
	"github.com/pinchtab/ariaquery/internal/browser"
	"github.com/pinchtab/ariaquery/internal/idutil"
	"github.com/pinchtab/ariaquery/internal/snapshot"
	"github.com/pinchtab/ariaquery/internal/web"
	"github.com/pinchtab/ariaquery/query"
)

var (
	errBadRequest      = errors.New("bad request")
	errUnknownDocument = errors.New("unknown document")
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func decodeError(err error) error {
	if errors.Is(err, web.ErrBodyTooLarge) {
		return err
	}
	return badRequest("%v", err)
}

// writeError maps err onto a status and error code.
func writeError(w http.ResponseWriter, err error) {
	var nf *query.NotFoundError
	var se *query.SelectorError
	switch {
	case errors.As(err, &nf):
		details := map[string]any{"selector": nf.Selector}
		if nf.Name != "" {
			details["name"] = nf.Name
		}
		code := "not_found"
		if errors.Is(err, query.ErrNameMismatch) {
			code = "name_mismatch"
		}
		web.ErrorCode(w, http.StatusNotFound, code, err.Error(), details)
	case errors.As(err, &se):
		web.ErrorCode(w, http.StatusBadRequest, "bad_selector", err.Error(), map[string]any{"selector": se.Selector})
	case errors.Is(err, errUnknownDocument):
		web.ErrorCode(w, http.StatusNotFound, "unknown_document", err.Error(), nil)
	case errors.Is(err, os.ErrNotExist), errors.Is(err, query.ErrNotFound):
		web.Error(w, http.StatusNotFound, err)
	case errors.Is(err, web.ErrBodyTooLarge):
		web.Error(w, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, aria.ErrUnknownRole),
		errors.Is(err, aria.ErrUnknownProperty),
		errors.Is(err, aria.ErrUnknownState):
		web.ErrorCode(w, http.StatusBadRequest, "unknown_attribute", err.Error(), nil)
	case errors.Is(err, aria.ErrInvalidValue):
		web.ErrorCode(w, http.StatusBadRequest, "invalid_value", err.Error(), nil)
	case errors.Is(err, types.ErrBadQuery),
		errors.Is(err, errBadRequest),
		errors.Is(err, web.ErrPathEscape),
		errors.Is(err, browser.ErrUnsupportedURL):
		web.Error(w, http.StatusBadRequest, err)
	default:
		web.Error(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, types.HealthResponse{
		Status:    "ok",
		Version:   s.version,
		Uptime:    int64(time.Since(s.started).Seconds()),
		Documents: s.store.Len(),
		Requests:  s.stats.requests.Load(),
		Failed:    s.stats.failed.Load(),
	})
}

func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	var req types.DocumentRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		writeError(w, decodeError(err))
		return
	}
	content, doc, err := s.load(r, req)
	if err != nil {
		writeError(w, err)
		return
	}
	id, cached := s.store.Put(content, doc)
	status := http.StatusCreated
	if cached {
		status = http.StatusOK
	}
	web.JSON(w, status, types.DocumentResponse{
		ID:       id,
		Elements: countElements(doc),
		Cached:   cached,
	})
}

// load reads the document named by req and returns the content its id is
// derived from.
func (s *Server) load(r *http.Request, req types.DocumentRequest) (string, *htmltree.Document, error) {
	set := 0
	for _, v := range []string{req.HTML, req.File, req.URL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", nil, badRequest("exactly one of html, file or url is required")
	}

	switch {
	case req.HTML != "":
		doc, err := htmltree.ParseString(req.HTML)
		return req.HTML, doc, err
	case req.File != "":
		path, err := web.SafePath(s.cfg.StateDir, req.File)
		if err != nil {
			return "", nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("read %s: %w", req.File, err)
		}
		doc, err := htmltree.ParseString(string(data))
		return string(data), doc, err
	}

	doc, err := s.capture(r.Context(), s.cfg, req.URL)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return "", nil, fmt.Errorf("render capture: %w", err)
	}
	return buf.String(), doc, nil
}

func countElements(doc *htmltree.Document) int {
	n := 0
	for range dom.Elements(dom.Walk(doc.Root())) {
		n++
	}
	return n
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !idutil.IsValidID(id, idutil.DocumentPrefix) {
		writeError(w, badRequest("invalid document id %q", id))
		return
	}
	if !s.store.Delete(id) {
		writeError(w, fmt.Errorf("%s: %w", id, errUnknownDocument))
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var spec types.QuerySpec
	if err := web.DecodeJSON(r, &spec); err != nil {
		writeError(w, decodeError(err))
		return
	}
	q, err := spec.Query()
	if err != nil {
		writeError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, types.CompileResponse{Selector: aria.Compile(q)})
}

// root resolves a cached document id or inline html.
func (s *Server) root(docID, markup string) (dom.Node, error) {
	switch {
	case docID != "" && markup != "":
		return nil, badRequest("doc and html are mutually exclusive")
	case docID != "":
		doc, ok := s.store.Get(docID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", docID, errUnknownDocument)
		}
		return doc.Root(), nil
	case markup != "":
		doc, err := htmltree.ParseString(markup)
		if err != nil {
			return nil, err
		}
		return doc.Root(), nil
	}
	return nil, badRequest("doc or html is required")
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req types.QueryRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		writeError(w, decodeError(err))
		return
	}
	q, err := req.Query()
	if err != nil {
		writeError(w, err)
		return
	}
	root, err := s.root(req.Doc, req.HTML)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := types.QueryResponse{Selector: aria.Compile(q), Matches: []types.Match{}}
	if _, err := query.Select(root, resp.Selector); err != nil {
		writeError(w, err)
		return
	}
	if req.All {
		for n := range query.FindAll[dom.Node](root, q, req.Options()...) {
			resp.Matches = append(resp.Matches, types.NewMatch(n))
		}
	} else {
		n, err := query.Get[dom.Node](root, q, req.Options()...)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Matches = append(resp.Matches, types.NewMatch(n))
	}
	resp.Count = len(resp.Matches)
	web.JSON(w, http.StatusOK, resp)
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	var req types.NameRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		writeError(w, decodeError(err))
		return
	}

	resp := types.NameResponse{Matches: []types.Match{}}
	if req.Ref != "" {
		if req.Doc == "" {
			writeError(w, badRequest("ref requires doc"))
			return
		}
		n, ok := s.store.Ref(req.Doc, req.Ref)
		if !ok {
			writeError(w, fmt.Errorf("ref %s in %s: %w", req.Ref, req.Doc, query.ErrNotFound))
			return
		}
		m := types.NewMatch(n)
		m.Ref = req.Ref
		resp.Matches = append(resp.Matches, m)
		web.JSON(w, http.StatusOK, resp)
		return
	}

	if req.Selector == "" {
		writeError(w, badRequest("selector or ref is required"))
		return
	}
	root, err := s.root(req.Doc, req.HTML)
	if err != nil {
		writeError(w, err)
		return
	}
	seq, err := query.Select(root, req.Selector)
	if err != nil {
		writeError(w, err)
		return
	}
	for n := range seq {
		resp.Matches = append(resp.Matches, types.NewMatch(n))
	}
	web.JSON(w, http.StatusOK, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, ok := s.store.Get(id)
	if !ok {
		writeError(w, fmt.Errorf("%s: %w", id, errUnknownDocument))
		return
	}

	params := r.URL.Query()
	format := params.Get("format")
	opts := snapshot.Options{
		Filter:   params.Get("filter"),
		MaxDepth: -1,
		Scope:    params.Get("scope"),
	}
	if v := params.Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, badRequest("depth: %v", err))
			return
		}
		opts.MaxDepth = d
	}
	maxTokens := -1
	if v := params.Get("maxTokens"); v != "" {
		if t, err := strconv.Atoi(v); err == nil && t > 0 {
			maxTokens = t
		}
	}

	nodes, refs, err := snapshot.Build(doc.Root(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	s.store.SetRefs(id, refs)

	if against := params.Get("against"); against != "" {
		other, ok := s.store.Get(against)
		if !ok {
			writeError(w, fmt.Errorf("%s: %w", against, errUnknownDocument))
			return
		}
		prev, _, err := snapshot.Build(other.Root(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		added, changed, removed := snapshot.Diff(prev, nodes)
		web.JSON(w, http.StatusOK, types.DiffResponse{
			ID:      id,
			Against: against,
			Added:   added,
			Changed: changed,
			Removed: removed,
		})
		return
	}

	truncated := false
	if maxTokens > 0 {
		nodes, truncated = snapshot.TruncateToTokens(nodes, maxTokens, format)
	}

	switch format {
	case "", snapshot.FormatJSON:
		web.JSON(w, http.StatusOK, types.SnapshotResponse{
			ID:        id,
			Count:     len(nodes),
			Truncated: truncated,
			Nodes:     nodes,
		})
		return
	case snapshot.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	case snapshot.FormatText, snapshot.FormatCompact:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		writeError(w, badRequest("unknown format %q", format))
		return
	}
	if truncated {
		w.Header().Set("X-Truncated", "true")
	}
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, nodes, format); err != nil {
		writeError(w, err)
		return
	}
	_, _ = w.Write(buf.Bytes())
}
