package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"emi-calculator/logger"
)

type errorResponse struct {
	Error     string            `json:"error"`
	Field     string            `json:"field,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Details   []string          `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// writeJSON encodes v into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error("error encoding response", map[string]interface{}{"error": err.Error()})
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("error writing response", map[string]interface{}{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, resp errorResponse) {
	resp.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, log, status, resp)
}
