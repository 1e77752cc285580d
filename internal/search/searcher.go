// Package search guards the question-catalog search against stale results.
// The dashboard fires a request per keystroke burst; without a guard, a
// superseded request can resolve after a newer one and clobber its results.
package search

import (
	"context"
	"errors"
	"sync"

	"github.com/boardprep/boardprep-admin/internal/boardq"
)

// ErrSuperseded reports that a newer search started on the same stream while
// this one was in flight. The caller drops the result; the newer search owns
// the screen.
var ErrSuperseded = errors.New("search: superseded by a newer request")

// Catalog is the one service method the searcher drives.
type Catalog interface {
	SearchCatalog(ctx context.Context, f boardq.QuestionFilter) (boardq.QuestionPage, error)
}

type streamState struct {
	gen    uint64
	cancel context.CancelFunc
}

// Searcher serializes catalog searches per client stream. A stream is one
// operator's search box (subject plus an optional client-chosen scope, so
// the add tab and the bulk-add wizard don't cancel each other). Starting a
// search cancels the previous in-flight one on the same stream and bumps
// its generation; a result is only surfaced if its generation is still
// current. Searches on different streams never interfere.
type Searcher struct {
	catalog Catalog

	mu      sync.Mutex
	streams map[string]*streamState
}

func NewSearcher(c Catalog) *Searcher {
	return &Searcher{catalog: c, streams: make(map[string]*streamState)}
}

func (s *Searcher) Search(ctx context.Context, stream string, f boardq.QuestionFilter) (boardq.QuestionPage, error) {
	s.mu.Lock()
	st, ok := s.streams[stream]
	if !ok {
		st = &streamState{}
		s.streams[stream] = st
	}
	st.gen++
	gen := st.gen
	if st.cancel != nil {
		st.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	s.mu.Unlock()

	page, err := s.catalog.SearchCatalog(ctx, f)

	s.mu.Lock()
	stale := gen != st.gen
	if !stale {
		cancel()
		// The stream is quiet again; drop its state so idle clients
		// don't accumulate.
		delete(s.streams, stream)
	}
	s.mu.Unlock()

	if stale {
		return boardq.QuestionPage{}, ErrSuperseded
	}
	if err != nil {
		return boardq.QuestionPage{}, err
	}
	return page, nil
}
