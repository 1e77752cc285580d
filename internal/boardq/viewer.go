package boardq

import "strconv"

// ChapterCount is one badge in the viewer's per-chapter summary strip.
// Rows without a chapter collapse into a single "null" bucket.
type ChapterCount struct {
	ChapterID   *int64 `json:"chapter_id,omitempty"`
	ChapterName string `json:"chapter_name"`
	Count       int    `json:"count"`
}

// GroupView is the authoritative current row set for a group, refetched
// from upstream. It can be broader than the clicked group: the refetch
// filters by board/year/subject only, never by chapter.
type GroupView struct {
	Group         Group          `json:"group"`
	Rows          []MappingRow   `json:"rows"`
	ChapterCounts []ChapterCount `json:"chapter_counts"`
}

// ResolveChapterNames fills in blank chapter names from a chapters-by-subject
// lookup map. Embedded names win; the map is only a fallback.
func ResolveChapterNames(rows []MappingRow, names map[int64]string) {
	for i := range rows {
		if rows[i].ChapterName != "" || rows[i].ChapterID == nil {
			continue
		}
		if n, ok := names[*rows[i].ChapterID]; ok {
			rows[i].ChapterName = n
		}
	}
}

// ChapterSummary derives per-chapter row counts, ordered by first
// appearance in the row set.
func ChapterSummary(rows []MappingRow) []ChapterCount {
	index := make(map[string]int)
	var out []ChapterCount

	for _, row := range rows {
		key := "null"
		if row.ChapterID != nil {
			key = strconv.FormatInt(*row.ChapterID, 10)
		}
		i, ok := index[key]
		if !ok {
			name := row.ChapterName
			if row.ChapterID == nil && name == "" {
				name = "No chapter"
			}
			out = append(out, ChapterCount{ChapterID: row.ChapterID, ChapterName: name})
			i = len(out) - 1
			index[key] = i
		}
		out[i].Count++
		if out[i].ChapterName == "" && row.ChapterName != "" {
			out[i].ChapterName = row.ChapterName
		}
	}
	return out
}
