package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a service-level failure reported by the API. Managers propagate
// these unchanged; only the explicit not-found checks translate them into
// domain errors.
type Error struct {
	StatusCode int
	// Exception is the API exception class, e.g.
	// "SoftLayer_Exception_ObjectNotFound".
	Exception string
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	if e.Exception != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Exception, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an API error indicating the addressed
// object does not exist.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound ||
		strings.Contains(apiErr.Exception, "ObjectNotFound") ||
		strings.Contains(apiErr.Message, "Unable to find object")
}

func decodeError(statusCode int, body []byte, requestID string) *Error {
	apiErr := &Error{StatusCode: statusCode, RequestID: requestID}

	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Exception = payload.Code
	} else {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}
