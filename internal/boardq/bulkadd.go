package boardq

import (
	"errors"
	"strings"
)

// Selection is the cross-page question selection of the bulk-add flow. IDs
// keep the order in which they were selected and survive page changes;
// re-selecting an ID is a no-op rather than a duplicate.
type Selection struct {
	ids  []int64
	seen map[int64]struct{}
}

func NewSelection() *Selection {
	return &Selection{seen: make(map[int64]struct{})}
}

func (s *Selection) Add(id int64) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Selection) Remove(id int64) {
	if _, ok := s.seen[id]; !ok {
		return
	}
	delete(s.seen, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}

// Toggle flips membership and reports whether the ID is selected afterwards.
func (s *Selection) Toggle(id int64) bool {
	if _, ok := s.seen[id]; ok {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

func (s *Selection) Has(id int64) bool {
	_, ok := s.seen[id]
	return ok
}

// SelectAllVisible adds every ID on the current page. It never touches
// selections made on other pages.
func (s *Selection) SelectAllVisible(visible []int64) {
	for _, id := range visible {
		s.Add(id)
	}
}

// DeselectAllVisible removes every ID on the current page.
func (s *Selection) DeselectAllVisible(visible []int64) {
	for _, id := range visible {
		s.Remove(id)
	}
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selection in selection order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// BulkCreateRequest maps many questions to one board/year in a single POST.
// Year stays free text; the upstream API is the authority on its format.
type BulkCreateRequest struct {
	BoardID     int64   `json:"board_id"`
	QuestionIDs []int64 `json:"question_id"`
	Years       string  `json:"years"`
}

var (
	ErrNoBoard     = errors.New("a board must be selected")
	ErrNoYear      = errors.New("a year is required")
	ErrNoSelection = errors.New("no questions selected")
)

// BuildBulkCreate assembles the bulk-add payload, preserving selection
// order. There is no guard against questions already mapped to the
// board/year; the upstream API rejects duplicates.
func BuildBulkCreate(boardID int64, year string, sel *Selection) (BulkCreateRequest, error) {
	if boardID == 0 {
		return BulkCreateRequest{}, ErrNoBoard
	}
	if strings.TrimSpace(year) == "" {
		return BulkCreateRequest{}, ErrNoYear
	}
	if sel == nil || sel.Len() == 0 {
		return BulkCreateRequest{}, ErrNoSelection
	}
	return BulkCreateRequest{
		BoardID:     boardID,
		QuestionIDs: sel.IDs(),
		Years:       year,
	}, nil
}
