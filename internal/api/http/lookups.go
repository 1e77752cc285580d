package http

import (
	"strconv"

	nethttp "net/http"

	"github.com/boardprep/boardprep-admin/internal/boardq"
)

// GET /lookups — boards and subjects in one round trip. The two upstream
// fetches are independent, so they run concurrently.
func LookupsHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		lk, err := svc.LoadLookups(r.Context())
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, lk)
	}
}

// GET /lookups/chapters?subject_id= — dependent dropdown.
func ChaptersHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		subjectID, err := strconv.ParseInt(r.URL.Query().Get("subject_id"), 10, 64)
		if err != nil || subjectID <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "subject_id is required")
			return
		}
		chapters, err := svc.ChaptersBySubject(r.Context(), subjectID)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]any{"chapters": chapters})
	}
}

// GET /lookups/topics?chapter_id= — dependent dropdown.
func TopicsHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		chapterID, err := strconv.ParseInt(r.URL.Query().Get("chapter_id"), 10, 64)
		if err != nil || chapterID <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "chapter_id is required")
			return
		}
		topics, err := svc.TopicsByChapter(r.Context(), chapterID)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]any{"topics": topics})
	}
}
