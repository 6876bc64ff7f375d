package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

// JSONResponse is the envelope of every JSON answer.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// errorToDetail maps err to a status code and an ErrorDetail.
func errorToDetail(err error) (int, *ErrorDetail) {
	var cfgErr *sanitizer.ConfigError
	if errors.As(err, &cfgErr) {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "invalid_config",
			Message: cfgErr.Error(),
			Details: map[string][]string{cfgErr.Field: {cfgErr.Reason}},
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status, &ErrorDetail{
			Code:    httpErr.Code,
			Message: httpErr.Error(),
		}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
