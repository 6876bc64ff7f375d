package api

import "net/http"

// HTTPError is an error with a fixed status and machine readable code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

var (
	ErrMalformedBody = HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "malformed_body",
		Message: "request body must be a JSON object",
	}
	ErrTextTooLarge = HTTPError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "text_too_large",
		Message: "text exceeds the size limit",
	}
	ErrTooManyRequests = HTTPError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "too many requests",
	}
	ErrUnsupportedMediaType = HTTPError{
		Status:  http.StatusUnsupportedMediaType,
		Code:    "unsupported_media_type",
		Message: "content type must be application/json",
	}
)
