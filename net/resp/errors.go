package resp

import (
	"github.com/ncobase/taskd/ecode"
)

// withCode builds a failure whose HTTP status follows from the business code.
func withCode(code int, message string, data ...any) *Exception {
	return newResponse(ecode.ToHTTPStatus(code), code, message, data...)
}

// UnprocessableEntity indicates a request body that failed validation.
func UnprocessableEntity(message string, data ...any) *Exception {
	return withCode(ecode.ParamErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return withCode(ecode.NothingFound, message, data...)
}

// NotAllowed indicates a not allowed error.
func NotAllowed(message string, data ...any) *Exception {
	return withCode(ecode.MethodNotAllowed, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return withCode(ecode.ServerErr, message, data...)
}

// ServiceUnavailable indicates a backing service could not be reached.
func ServiceUnavailable(message string, data ...any) *Exception {
	return withCode(ecode.ServiceUnavailable, message, data...)
}
