package http

import (
	"encoding/json"
	"strconv"
	"strings"

	nethttp "net/http"

	"github.com/go-playground/validator/v10"

	auth "github.com/boardprep/boardprep-admin/internal/auth/middleware"
	"github.com/boardprep/boardprep-admin/internal/boardq"
)

// Handlers only — routes remain in main.go

var validate = validator.New()

// GET /groups — fetch all mapping rows upstream and regroup.
func ListGroupsHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		groups, err := svc.ListGroups(r.Context())
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]any{"groups": groups})
	}
}

// GET /groups/view?board_id=&year=&subject_id= — authoritative row set for
// one group. Chapter is never part of the filter.
func ViewGroupHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		boardID, err := strconv.ParseInt(q.Get("board_id"), 10, 64)
		if err != nil || boardID <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "board_id is required")
			return
		}
		year := strings.TrimSpace(q.Get("year"))
		if year == "" {
			writeError(w, r, nethttp.StatusBadRequest, "year is required")
			return
		}
		var subjectID *int64
		if s := q.Get("subject_id"); s != "" && s != "null" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				writeError(w, r, nethttp.StatusBadRequest, "bad subject_id")
				return
			}
			subjectID = &v
		}

		g := boardq.Group{
			Key:       boardq.GroupKey(boardID, year, subjectID),
			BoardID:   boardID,
			Year:      year,
			SubjectID: subjectID,
		}
		view, err := svc.ViewGroup(r.Context(), g)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, view)
	}
}

type updateGroupRequest struct {
	Original struct {
		BoardID   int64  `json:"board_id" validate:"required"`
		Year      string `json:"year" validate:"required"`
		SubjectID *int64 `json:"subject_id"`
		ChapterID *int64 `json:"chapter_id"`
	} `json:"original"`
	Form               boardq.GroupForm `json:"form"`
	SelectedQuestions  []int64          `json:"selected_questions"`
	QuestionsToRemove  []int64          `json:"questions_to_remove"`
	CurrentQuestionIDs []int64          `json:"current_question_ids"`
}

// PUT /groups — reconcile one edit session. An empty diff is a no-op
// success; the upstream call is skipped entirely.
func UpdateGroupHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req updateGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, err.Error())
			return
		}

		current := make([]boardq.Question, 0, len(req.CurrentQuestionIDs))
		for _, id := range req.CurrentQuestionIDs {
			current = append(current, boardq.Question{ID: id})
		}
		sess := boardq.EditSession{
			Original: boardq.Group{
				Key:       boardq.GroupKey(req.Original.BoardID, req.Original.Year, req.Original.SubjectID),
				BoardID:   req.Original.BoardID,
				Year:      req.Original.Year,
				SubjectID: req.Original.SubjectID,
				ChapterID: req.Original.ChapterID,
			},
			Form:     req.Form,
			Selected: req.SelectedQuestions,
			ToRemove: req.QuestionsToRemove,
			Current:  current,
		}

		msg, err := svc.UpdateGroup(r.Context(), auth.SubjectFromContext(r.Context()), sess)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]string{"message": msg})
	}
}
