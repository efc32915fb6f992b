package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/justtry/crm/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps the usecase taxonomy onto HTTP: domain rejections are the
// caller's problem, technical faults are ours.
func writeError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusUnprocessableEntity
		switch de.Code {
		case "LEAD_NOT_FOUND", "USER_NOT_FOUND":
			status = http.StatusNotFound
		case "FORBIDDEN":
			status = http.StatusForbidden
		case "CONFLICT":
			status = http.StatusConflict
		case "VALIDATION_ERROR":
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: de.Message, Code: de.Code})
		return
	}
	if te, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: te.Message, Code: te.Code})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
