package http

import (
	"encoding/json"
	"strconv"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/boardprep/boardprep-admin/internal/auth/middleware"
	"github.com/boardprep/boardprep-admin/internal/boardq"
)

type bulkAddRequest struct {
	BoardID     int64   `json:"board_id" validate:"required"`
	Years       string  `json:"years" validate:"required"`
	QuestionIDs []int64 `json:"question_id" validate:"required,min=1"`
}

// POST /board-questions/bulk — map many questions to one board/year.
// Selection order is preserved end to end.
func BulkAddHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req bulkAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, err.Error())
			return
		}

		sel := boardq.NewSelection()
		for _, id := range req.QuestionIDs {
			sel.Add(id)
		}
		payload, err := svc.BulkAdd(r.Context(), auth.SubjectFromContext(r.Context()), req.BoardID, req.Years, sel)
		if err != nil {
			switch err {
			case boardq.ErrNoBoard, boardq.ErrNoYear, boardq.ErrNoSelection:
				writeError(w, r, nethttp.StatusBadRequest, err.Error())
			default:
				writeUpstreamError(w, r, err)
			}
			return
		}
		writeOK(w, r, nethttp.StatusCreated, map[string]any{
			"message": "Questions mapped",
			"created": len(payload.QuestionIDs),
		})
	}
}

type mappingUpdateRequest struct {
	BoardID   *int64  `json:"board_id"`
	Year      *string `json:"year"`
	SubjectID *int64  `json:"subject_id"`
	ChapterID *int64  `json:"chapter_id"`
}

// PUT /board-questions/{id} — edit a single mapping row.
func UpdateMappingHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "bad mapping id")
			return
		}
		var req mappingUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "bad json")
			return
		}
		u := boardq.MappingUpdate{
			BoardID:   req.BoardID,
			Year:      req.Year,
			SubjectID: req.SubjectID,
			ChapterID: req.ChapterID,
		}
		if err := svc.UpdateMapping(r.Context(), auth.SubjectFromContext(r.Context()), id, u); err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]string{"message": "Mapping updated"})
	}
}

// DELETE /board-questions/{id}
func DeleteMappingHandler(svc *boardq.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "bad mapping id")
			return
		}
		if err := svc.DeleteMapping(r.Context(), auth.SubjectFromContext(r.Context()), id); err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]string{"message": "Mapping deleted"})
	}
}
