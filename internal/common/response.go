package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithErrorDetails(w http.ResponseWriter, code int, message string, details interface{}) {
	RespondWithJSON(w, code, ErrorResponse{Error: message, Details: details})
}

// RespondWithDomainError writes err using the status from HTTPStatusFromError.
// Validation errors carry their field map as details; internal errors keep a
// generic message and put the cause in details.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		RespondWithErrorDetails(w, code, "Invalid input data", verr.Fields)
	case code == http.StatusNotFound:
		RespondWithErrorDetails(w, code, "Task not found", err.Error())
	case code == http.StatusConflict:
		RespondWithErrorDetails(w, code, "Task with this code already exists", err.Error())
	case code == http.StatusInternalServerError:
		RespondWithErrorDetails(w, code, "Internal server error", err.Error())
	default:
		RespondWithError(w, code, err.Error())
	}
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
