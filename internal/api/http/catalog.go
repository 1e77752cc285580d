package http

import (
	"errors"
	"strconv"
	"strings"

	nethttp "net/http"

	auth "github.com/boardprep/boardprep-admin/internal/auth/middleware"
	"github.com/boardprep/boardprep-admin/internal/boardq"
	"github.com/boardprep/boardprep-admin/internal/search"
)

// GET /catalog/questions — paginated question-catalog search for the add
// tab and the bulk-add wizard. A request superseded by a newer one on the
// same stream returns 409 so the client drops the stale page instead of
// rendering it. The stream is the authenticated subject plus an optional
// scope parameter, so concurrent operators (and a client's independent
// search boxes, via distinct scopes) never cancel each other.
func SearchQuestionsHandler(searcher *search.Searcher) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		f, err := questionFilterFromQuery(r)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, err.Error())
			return
		}
		stream := auth.SubjectFromContext(r.Context())
		if scope := strings.TrimSpace(r.URL.Query().Get("scope")); scope != "" {
			stream += "/" + scope
		}
		page, err := searcher.Search(r.Context(), stream, f)
		if errors.Is(err, search.ErrSuperseded) {
			writeError(w, r, nethttp.StatusConflict, "superseded by a newer search")
			return
		}
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, page)
	}
}

func questionFilterFromQuery(r *nethttp.Request) (boardq.QuestionFilter, error) {
	q := r.URL.Query()
	f := boardq.QuestionFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Page:   1,
		Limit:  20,
	}

	for _, p := range []struct {
		name string
		dst  **int64
	}{
		{"subject_id", &f.SubjectID},
		{"chapter_id", &f.ChapterID},
		{"topic_id", &f.TopicID},
	} {
		if s := q.Get(p.name); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return boardq.QuestionFilter{}, errors.New("bad " + p.name)
			}
			*p.dst = &v
		}
	}
	for _, p := range []struct {
		name string
		dst  **bool
	}{
		{"is_published", &f.IsPublished},
		{"is_draft", &f.IsDraft},
	} {
		if s := q.Get(p.name); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return boardq.QuestionFilter{}, errors.New("bad " + p.name)
			}
			*p.dst = &v
		}
	}
	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return boardq.QuestionFilter{}, errors.New("bad page")
		}
		f.Page = v
	}
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 100 {
			return boardq.QuestionFilter{}, errors.New("bad limit")
		}
		f.Limit = v
	}
	if s := q.Get("exclude_ids"); s != "" {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return boardq.QuestionFilter{}, errors.New("bad exclude_ids")
			}
			f.ExcludeIDs = append(f.ExcludeIDs, v)
		}
	}
	return f, nil
}
