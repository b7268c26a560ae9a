package ecode

import (
	"net/http"
	"sync"
)

// Business codes returned in the `code` field of failure responses.
const (
	OK = 0

	RequestErr       = -400
	ParamErr         = -401
	AccessDenied     = -403
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409
	Unprocessable    = -422

	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504
)

var (
	mu    sync.RWMutex
	texts = map[int]string{
		OK:                 "ok",
		RequestErr:         "Invalid request",
		ParamErr:           "Invalid parameters",
		AccessDenied:       "Access denied",
		NothingFound:       "Resource not found",
		MethodNotAllowed:   "Method not allowed",
		Conflict:           "Resource conflict",
		Unprocessable:      "Unprocessable entity",
		ServerErr:          "Internal server error",
		ServiceUnavailable: "Service unavailable",
		Deadline:           "Deadline exceeded",
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		RequestErr:         http.StatusBadRequest,
		ParamErr:           http.StatusUnprocessableEntity,
		AccessDenied:       http.StatusForbidden,
		NothingFound:       http.StatusNotFound,
		MethodNotAllowed:   http.StatusMethodNotAllowed,
		Conflict:           http.StatusConflict,
		Unprocessable:      http.StatusUnprocessableEntity,
		ServerErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
	}
)

// Text returns the message registered for code, or the server error text.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status.
func ToHTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
