package server

import (
	"sync"

	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/idutil"
	"github.com/pinchtab/ariaquery/internal/snapshot"
)

// entry is a cached document and the refs of its latest snapshot.
type entry struct {
	doc  *htmltree.Document
	refs snapshot.Refs
}

// Store caches parsed documents by content id, evicting the least recently
// used once more than limit are held.
type Store struct {
	mu    sync.Mutex
	limit int
	docs  map[string]*entry
	order []string
}

func NewStore(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{limit: limit, docs: map[string]*entry{}}
}

// Put stores doc under the id of content. cached reports that the id was
// already present, in which case the existing document is kept.
func (s *Store) Put(content string, doc *htmltree.Document) (id string, cached bool) {
	id = idutil.DocumentID(content)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; ok {
		s.touch(id)
		return id, true
	}
	s.docs[id] = &entry{doc: doc}
	s.order = append(s.order, id)
	for len(s.order) > s.limit {
		delete(s.docs, s.order[0])
		s.order = s.order[1:]
	}
	return id, false
}

func (s *Store) Get(id string) (*htmltree.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	s.touch(id)
	return e.doc, true
}

// SetRefs records the refs of the latest snapshot of id.
func (s *Store) SetRefs(id string, refs snapshot.Refs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.docs[id]; ok {
		e.refs = refs
	}
}

// Ref resolves a ref from the latest snapshot of id.
func (s *Store) Ref(id, ref string) (dom.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	n, ok := e.refs[ref]
	return n, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	s.remove(id)
	return true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// touch moves id to the most recently used end. Callers hold mu.
func (s *Store) touch(id string) {
	s.remove(id)
	s.order = append(s.order, id)
}

func (s *Store) remove(id string) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
