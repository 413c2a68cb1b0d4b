package httpapi

import (
	"encoding/json"
	"net/http"

	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/logging"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debugf("failed to encode response: %v\n", err)
	}
}

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.IsErrorType(err, errors.ErrorTypeValidation),
		errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return http.StatusBadRequest
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return http.StatusNotFound
	case errors.IsErrorType(err, errors.ErrorTypeConflict):
		return http.StatusConflict
	case errors.IsErrorType(err, errors.ErrorTypeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if errors.ShouldLogError(err) {
		logging.Debugf("request failed: %v\n", err)
	}
	writeJSON(w, status, errorBody{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	})
}
