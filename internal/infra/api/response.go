package api

import (
	"encoding/json"
	"net/http"

	"seller-onboarding/internal/domain"
)

const msgInternal = "Internal server error"

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Errors  []domain.Issue `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: msg})
}

func writeIssues(w http.ResponseWriter, issues []domain.Issue) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Success: false, Errors: issues})
}
