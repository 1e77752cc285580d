package boardq

import (
	"reflect"
	"testing"
)

func i64(v int64) *int64 { return &v }

func row(boardID int64, year string, subjectID *int64, questionID int64) MappingRow {
	return MappingRow{
		ID:         questionID * 10,
		BoardID:    boardID,
		Year:       year,
		SubjectID:  subjectID,
		QuestionID: questionID,
	}
}

func TestGroupRows_BucketsByBoardYearSubject(t *testing.T) {
	rows := []MappingRow{
		row(1, "2022", i64(5), 100),
		row(1, "2022", i64(5), 101),
		row(1, "2022", nil, 102),
	}

	groups := GroupRows(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0].Key != "1-2022-5" {
		t.Fatalf("expected key 1-2022-5, got %q", groups[0].Key)
	}
	if !reflect.DeepEqual(groups[0].QuestionIDs, []int64{100, 101}) {
		t.Fatalf("unexpected question ids: %v", groups[0].QuestionIDs)
	}
	if groups[0].Count != 2 {
		t.Fatalf("expected count 2, got %d", groups[0].Count)
	}

	if groups[1].Key != "1-2022-null" {
		t.Fatalf("expected key 1-2022-null, got %q", groups[1].Key)
	}
	if !reflect.DeepEqual(groups[1].QuestionIDs, []int64{102}) {
		t.Fatalf("unexpected question ids: %v", groups[1].QuestionIDs)
	}
	if groups[1].Count != 1 {
		t.Fatalf("expected count 1, got %d", groups[1].Count)
	}
}

func TestGroupRows_Idempotent(t *testing.T) {
	rows := []MappingRow{
		row(2, "2021", i64(7), 10),
		row(1, "2022", nil, 11),
		row(2, "2021", i64(7), 12),
		row(1, "2022", i64(3), 13),
	}

	first := GroupRows(rows)
	second := GroupRows(rows)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grouping is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGroupRows_DeduplicatesQuestionIDs(t *testing.T) {
	// Duplicate mapping rows for the same question must not inflate the
	// group: Count tracks unique question IDs, Rows keeps every row.
	rows := []MappingRow{
		row(1, "2020", i64(4), 50),
		row(1, "2020", i64(4), 50),
		row(1, "2020", i64(4), 51),
		row(1, "2020", i64(4), 50),
	}

	groups := GroupRows(rows)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if !reflect.DeepEqual(g.QuestionIDs, []int64{50, 51}) {
		t.Fatalf("expected deduped ids [50 51], got %v", g.QuestionIDs)
	}
	if g.Count != len(g.QuestionIDs) {
		t.Fatalf("count %d != len(question_ids) %d", g.Count, len(g.QuestionIDs))
	}
	if len(g.Rows) != 4 {
		t.Fatalf("expected all 4 rows kept for display, got %d", len(g.Rows))
	}
}

func TestGroupRows_NullSubjectIsItsOwnBucket(t *testing.T) {
	rows := []MappingRow{
		row(1, "2022", i64(5), 1),
		row(1, "2022", nil, 2),
		row(1, "2022", nil, 3),
	}

	groups := GroupRows(rows)
	if len(groups) != 2 {
		t.Fatalf("expected subject and null-subject buckets, got %d groups", len(groups))
	}
	var nullGroup *Group
	for i := range groups {
		if groups[i].SubjectID == nil {
			nullGroup = &groups[i]
		}
	}
	if nullGroup == nil {
		t.Fatalf("no null-subject group found")
	}
	if nullGroup.Key != "1-2022-null" {
		t.Fatalf("expected null segment in key, got %q", nullGroup.Key)
	}
	if !reflect.DeepEqual(nullGroup.QuestionIDs, []int64{2, 3}) {
		t.Fatalf("unexpected null-subject ids: %v", nullGroup.QuestionIDs)
	}
}

func TestGroupRows_DisplayFieldsFromFirstRow(t *testing.T) {
	rows := []MappingRow{
		{BoardID: 1, BoardName: "Dhaka", Year: "2022", SubjectID: i64(5), SubjectName: "Physics", QuestionID: 1},
		{BoardID: 1, BoardName: "ignored", Year: "2022", SubjectID: i64(5), SubjectName: "ignored", QuestionID: 2},
	}

	groups := GroupRows(rows)
	if groups[0].BoardName != "Dhaka" || groups[0].SubjectName != "Physics" {
		t.Fatalf("display fields must come from the first row: %+v", groups[0])
	}
}
