package http

import (
	"encoding/json"
	"errors"
	"log"

	nethttp "net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/boardprep/boardprep-admin/internal/upstream"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type meta struct {
	RequestID string `json:"request_id,omitempty"`
}

type envelope struct {
	OK    bool          `json:"ok"`
	Data  any           `json:"data,omitempty"`
	Error *errorPayload `json:"error,omitempty"`
	Meta  meta          `json:"meta"`
}

func writeOK(w nethttp.ResponseWriter, r *nethttp.Request, status int, data any) {
	res := envelope{
		OK:   true,
		Data: data,
		Meta: meta{RequestID: middleware.GetReqID(r.Context())},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

func writeError(w nethttp.ResponseWriter, r *nethttp.Request, status int, msg string) {
	if msg == "" {
		msg = nethttp.StatusText(status)
	}
	res := envelope{
		OK:    false,
		Error: &errorPayload{Code: codeFromStatus(status), Message: msg},
		Meta:  meta{RequestID: middleware.GetReqID(r.Context())},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

// writeUpstreamError maps an upstream failure onto the gateway response.
// The server's own error text passes through; transport and decode failures
// get a generic message with the detail in the server log.
func writeUpstreamError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		writeError(w, r, nethttp.StatusBadGateway, apiErr.Message)
		return
	}
	if errors.Is(err, upstream.ErrNoToken) {
		writeError(w, r, nethttp.StatusBadGateway, "upstream credentials not configured")
		return
	}
	var decErr *upstream.DecodeError
	if errors.As(err, &decErr) {
		log.Printf("api: %v", decErr)
		writeError(w, r, nethttp.StatusBadGateway, "unexpected upstream response")
		return
	}
	log.Printf("api: upstream request failed: %v", err)
	writeError(w, r, nethttp.StatusBadGateway, "upstream request failed")
}

func codeFromStatus(status int) string {
	switch status {
	case nethttp.StatusBadRequest:
		return "bad_request"
	case nethttp.StatusUnauthorized:
		return "unauthorized"
	case nethttp.StatusForbidden:
		return "forbidden"
	case nethttp.StatusNotFound:
		return "not_found"
	case nethttp.StatusConflict:
		return "conflict"
	case nethttp.StatusBadGateway:
		return "upstream_error"
	default:
		return "internal_error"
	}
}
