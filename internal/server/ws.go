package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/internal/api/types"
	"github.com/pinchtab/ariaquery/query"
)

// handleQueryStream upgrades to a websocket bound to one cached document.
// Each text frame from the client is a query; every match is sent as its
// own frame as it is found, followed by a StreamDone frame.
// Query params: doc (required)
func (s *Server) handleQueryStream(w http.ResponseWriter, r *http.Request) {
	docID := r.URL.Query().Get("doc")
	doc, ok := s.store.Get(docID)
	if !ok {
		writeError(w, fmt.Errorf("%q: %w", docID, errUnknownDocument))
		return
	}

	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		slog.Error("ws upgrade failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()
	slog.Info("query stream opened", "doc", docID)

	for {
		msg, op, err := wsutil.ReadClientData(conn)
		if err != nil {
			slog.Debug("query stream closed", "doc", docID, "err", err)
			return
		}
		if op != ws.OpText {
			continue
		}
		if err := streamQuery(conn, doc.Root(), msg); err != nil {
			slog.Warn("query stream write failed", "doc", docID, "err", err)
			return
		}
	}
}

func streamQuery(w io.Writer, root dom.Node, msg []byte) error {
	var spec types.QuerySpec
	if err := json.Unmarshal(msg, &spec); err != nil {
		return writeFrame(w, types.StreamDone{Done: true, Error: fmt.Sprintf("decode query: %v", err)})
	}
	q, err := spec.Query()
	if err != nil {
		return writeFrame(w, types.StreamDone{Done: true, Error: err.Error()})
	}
	if _, err := query.Select(root, aria.Compile(q)); err != nil {
		return writeFrame(w, types.StreamDone{Done: true, Error: err.Error()})
	}

	count := 0
	for n := range query.FindAll[dom.Node](root, q, spec.Options()...) {
		if err := writeFrame(w, types.NewMatch(n)); err != nil {
			return err
		}
		count++
	}
	return writeFrame(w, types.StreamDone{Done: true, Count: count})
}

func writeFrame(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return wsutil.WriteServerText(w, data)
}
