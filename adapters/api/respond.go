package api

import (
	"encoding/json"
	"log"
	"net/http"

	"loadboard/internal/errors"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Hint  string `json:"hint,omitempty"`
}

// UploadHint tells clients how to recover from NO_DATA
const UploadHint = "no schedule is loaded; upload an .xlsx or .csv file via POST /upload"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	resp := ErrorResponse{Error: err.Error(), Code: errors.GetCode(err)}
	if errors.Is(err, errors.CodeNoData) {
		resp.Hint = UploadHint
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, resp)
}
