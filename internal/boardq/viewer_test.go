package boardq

import (
	"reflect"
	"testing"
)

func TestResolveChapterNames_FallbackOnly(t *testing.T) {
	rows := []MappingRow{
		{QuestionID: 1, ChapterID: i64(10), ChapterName: "Vectors"},
		{QuestionID: 2, ChapterID: i64(11)},
		{QuestionID: 3}, // no chapter at all
	}
	ResolveChapterNames(rows, map[int64]string{10: "should not override", 11: "Dynamics"})

	if rows[0].ChapterName != "Vectors" {
		t.Fatalf("embedded name must win, got %q", rows[0].ChapterName)
	}
	if rows[1].ChapterName != "Dynamics" {
		t.Fatalf("expected fallback name Dynamics, got %q", rows[1].ChapterName)
	}
	if rows[2].ChapterName != "" {
		t.Fatalf("row without chapter must stay blank, got %q", rows[2].ChapterName)
	}
}

func TestChapterSummary_CountsByFirstAppearance(t *testing.T) {
	rows := []MappingRow{
		{ChapterID: i64(10), ChapterName: "Vectors"},
		{ChapterID: i64(11), ChapterName: "Dynamics"},
		{ChapterID: i64(10), ChapterName: "Vectors"},
		{}, // null-chapter bucket
		{ChapterID: i64(10), ChapterName: "Vectors"},
	}

	got := ChapterSummary(rows)
	want := []ChapterCount{
		{ChapterID: i64(10), ChapterName: "Vectors", Count: 3},
		{ChapterID: i64(11), ChapterName: "Dynamics", Count: 1},
		{ChapterName: "No chapter", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].ChapterName != want[i].ChapterName || got[i].Count != want[i].Count {
			t.Fatalf("bucket %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
		if !reflect.DeepEqual(idVal(got[i].ChapterID), idVal(want[i].ChapterID)) {
			t.Fatalf("bucket %d chapter id mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestChapterSummary_LateNameFillsBlankBucket(t *testing.T) {
	rows := []MappingRow{
		{ChapterID: i64(10)},
		{ChapterID: i64(10), ChapterName: "Vectors"},
	}
	got := ChapterSummary(rows)
	if len(got) != 1 || got[0].ChapterName != "Vectors" || got[0].Count != 2 {
		t.Fatalf("expected one Vectors bucket with count 2, got %+v", got)
	}
}

func idVal(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
