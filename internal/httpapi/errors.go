package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody is the envelope every non-2xx response uses. The request id is
// echoed so a client-side report can be matched against the access log.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends the error envelope. code is a stable machine-readable
// token (snake_case); message is for humans and may change freely.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, map[string]errorBody{"error": {
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	}})
}
