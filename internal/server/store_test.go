package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/idutil"
	"github.com/pinchtab/ariaquery/internal/snapshot"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore(2)
	doc := htmltree.MustParse(`<p>a</p>`)

	id, cached := s.Put("a", doc)
	assert.False(t, cached)
	assert.Equal(t, idutil.DocumentID("a"), id)

	again, cached := s.Put("a", htmltree.MustParse(`<p>a</p>`))
	assert.True(t, cached)
	assert.Equal(t, id, again)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, doc, got, "existing document is kept")
	assert.Equal(t, 1, s.Len())
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStore(2)
	a, _ := s.Put("a", htmltree.MustParse(`a`))
	b, _ := s.Put("b", htmltree.MustParse(`b`))

	_, ok := s.Get(a)
	require.True(t, ok)

	c, _ := s.Put("c", htmltree.MustParse(`c`))
	assert.Equal(t, 2, s.Len())

	_, ok = s.Get(b)
	assert.False(t, ok, "b was least recently used")
	_, ok = s.Get(a)
	assert.True(t, ok)
	_, ok = s.Get(c)
	assert.True(t, ok)
}

func TestStoreDeleteAndRefs(t *testing.T) {
	s := NewStore(0)
	doc := htmltree.MustParse(`<button id="b">Go</button>`)
	id, _ := s.Put("x", doc)

	_, ok := s.Ref(id, "e0")
	assert.False(t, ok, "no snapshot yet")

	s.SetRefs(id, snapshot.Refs{"e0": doc.ElementByID("b")})
	n, ok := s.Ref(id, "e0")
	require.True(t, ok)
	assert.Equal(t, "button", n.Tag())

	assert.True(t, s.Delete(id))
	assert.False(t, s.Delete(id))
	_, ok = s.Ref(id, "e0")
	assert.False(t, ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(4)
	shared, _ := s.Put("shared", htmltree.MustParse(`<button id="b">Go</button>`))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			content := fmt.Sprintf("<p>%d</p>", i)
			id, _ := s.Put(content, htmltree.MustParse(content))
			s.SetRefs(id, snapshot.Refs{})
			if doc, ok := s.Get(shared); ok {
				assert.NotNil(t, doc.ElementByID("b"))
			}
			s.Ref(id, "e0")
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, s.Len())
}
