package boardq

import "strconv"

// Group is a client-derived bucket of mapping rows sharing board, year and
// subject. Recomputed from flat rows on every fetch; never persisted.
//
// Invariant: Count == len(QuestionIDs) and QuestionIDs has no duplicates.
// Rows is NOT deduplicated; it keeps every source row for detail display.
type Group struct {
	Key         string       `json:"key"`
	BoardID     int64        `json:"board_id"`
	BoardName   string       `json:"board_name,omitempty"`
	Year        string       `json:"year"`
	SubjectID   *int64       `json:"subject_id,omitempty"`
	SubjectName string       `json:"subject_name,omitempty"`
	ChapterID   *int64       `json:"chapter_id,omitempty"`
	ChapterName string       `json:"chapter_name,omitempty"`
	QuestionIDs []int64      `json:"question_ids"`
	Count       int          `json:"count"`
	Rows        []MappingRow `json:"rows,omitempty"`
}

// GroupKey builds the bucket key. Rows without a subject share the literal
// "null" segment: bucketing "no subject" questions together is intentional,
// not an error. Chapter is deliberately not part of the key; it is
// sub-grouping display metadata only.
func GroupKey(boardID int64, year string, subjectID *int64) string {
	s := "null"
	if subjectID != nil {
		s = strconv.FormatInt(*subjectID, 10)
	}
	return strconv.FormatInt(boardID, 10) + "-" + year + "-" + s
}

// GroupRows partitions flat mapping rows into groups keyed by
// (board, year, subject). Group order follows first appearance in the input,
// as does question-ID order within a group, so equal inputs group equally.
func GroupRows(rows []MappingRow) []Group {
	index := make(map[string]int, len(rows))
	groups := make([]Group, 0)

	for _, row := range rows {
		key := GroupKey(row.BoardID, row.Year, row.SubjectID)
		i, ok := index[key]
		if !ok {
			// Display fields come from the first row seen for the key.
			groups = append(groups, Group{
				Key:         key,
				BoardID:     row.BoardID,
				BoardName:   row.BoardName,
				Year:        row.Year,
				SubjectID:   row.SubjectID,
				SubjectName: row.SubjectName,
				ChapterID:   row.ChapterID,
				ChapterName: row.ChapterName,
			})
			i = len(groups) - 1
			index[key] = i
		}

		g := &groups[i]
		if !containsID(g.QuestionIDs, row.QuestionID) {
			g.QuestionIDs = append(g.QuestionIDs, row.QuestionID)
		}
		g.Rows = append(g.Rows, row)
		g.Count = len(g.QuestionIDs)
	}
	return groups
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
