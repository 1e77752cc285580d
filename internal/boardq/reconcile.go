package boardq

import "errors"

// ErrNoChanges reports a save with an empty diff. Callers treat it as a
// successful no-op and skip the upstream call.
var ErrNoChanges = errors.New("no changes to save")

// GroupForm holds the editable scalar fields of a group. A nil pointer (or
// zero BoardID / empty Year) means the operator left that field untouched.
type GroupForm struct {
	BoardID   int64  `json:"board_id"`
	Year      string `json:"year"`
	SubjectID *int64 `json:"subject_id"`
	ChapterID *int64 `json:"chapter_id"`
}

// EditSession is the ephemeral state of one open group editor: the original
// group scalars, the edited form, question IDs selected on the add tab,
// question IDs toggled on the remove tab, and the group's current questions.
type EditSession struct {
	Original Group      `json:"original"`
	Form     GroupForm  `json:"form"`
	Selected []int64    `json:"selected_questions"`
	ToRemove []int64    `json:"questions_to_remove"`
	Current  []Question `json:"current_group_questions"`
}

// GroupChanges is the partial-update body sent upstream. Only fields that
// differ from the original group are set.
type GroupChanges struct {
	BoardID         *int64  `json:"board_id,omitempty"`
	Year            *string `json:"year,omitempty"`
	SubjectID       *int64  `json:"subject_id,omitempty"`
	ChapterID       *int64  `json:"chapter_id,omitempty"`
	NewQuestions    []int64 `json:"new_questions,omitempty"`
	RemoveQuestions []int64 `json:"remove_questions,omitempty"`
}

// GroupUpdate identifies the group being edited (by its original scalars)
// and carries the computed changes.
type GroupUpdate struct {
	BoardID   int64        `json:"boardId"`
	Year      string       `json:"year"`
	SubjectID *int64       `json:"subjectId,omitempty"`
	ChapterID *int64       `json:"chapterId,omitempty"`
	Updates   GroupChanges `json:"updates"`
}

func (c GroupChanges) isEmpty() bool {
	return c.BoardID == nil && c.Year == nil && c.SubjectID == nil &&
		c.ChapterID == nil && len(c.NewQuestions) == 0 && len(c.RemoveQuestions) == 0
}

// BuildUpdate computes the minimal diff for one save.
//
// new_questions is the subset of Selected that is neither already in the
// group nor marked for removal: when an ID is toggled both "add" and
// "remove" in the same session, removal wins, so the backend never receives
// contradictory instructions in one request.
//
// Returns ErrNoChanges when the diff is empty.
func (s EditSession) BuildUpdate() (GroupUpdate, error) {
	var ch GroupChanges

	if s.Form.BoardID != 0 && s.Form.BoardID != s.Original.BoardID {
		v := s.Form.BoardID
		ch.BoardID = &v
	}
	if s.Form.Year != "" && s.Form.Year != s.Original.Year {
		v := s.Form.Year
		ch.Year = &v
	}
	if s.Form.SubjectID != nil && !eqID(s.Form.SubjectID, s.Original.SubjectID) {
		v := *s.Form.SubjectID
		ch.SubjectID = &v
	}
	if s.Form.ChapterID != nil && !eqID(s.Form.ChapterID, s.Original.ChapterID) {
		v := *s.Form.ChapterID
		ch.ChapterID = &v
	}

	current := make(map[int64]struct{}, len(s.Current))
	for _, q := range s.Current {
		current[q.ID] = struct{}{}
	}
	removing := make(map[int64]struct{}, len(s.ToRemove))
	for _, id := range s.ToRemove {
		removing[id] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(s.Selected))
	for _, id := range s.Selected {
		if _, ok := current[id]; ok {
			continue
		}
		if _, ok := removing[id]; ok {
			continue // remove wins
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ch.NewQuestions = append(ch.NewQuestions, id)
	}
	ch.RemoveQuestions = append(ch.RemoveQuestions, s.ToRemove...)

	if ch.isEmpty() {
		return GroupUpdate{}, ErrNoChanges
	}
	return GroupUpdate{
		BoardID:   s.Original.BoardID,
		Year:      s.Original.Year,
		SubjectID: s.Original.SubjectID,
		ChapterID: s.Original.ChapterID,
		Updates:   ch,
	}, nil
}

func eqID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
