package http

import (
	"strconv"

	nethttp "net/http"

	"github.com/boardprep/boardprep-admin/internal/audit"
)

// GET /audit?limit= — recent admin mutations, newest first.
func AuditListHandler(repo *audit.EventRepo) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		limit := 0
		if s := r.URL.Query().Get("limit"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 1 {
				writeError(w, r, nethttp.StatusBadRequest, "bad limit")
				return
			}
			limit = v
		}
		events, err := repo.List(r.Context(), limit)
		if err != nil {
			writeError(w, r, nethttp.StatusInternalServerError, "audit query failed")
			return
		}
		writeOK(w, r, nethttp.StatusOK, map[string]any{"events": events})
	}
}
