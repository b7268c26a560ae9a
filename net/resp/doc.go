// Package resp writes the JSON bodies returned by the HTTP layer.
//
// Success payloads are written unwrapped so clients receive the resource
// itself; a plain string becomes {"message": "..."}. Failures are written as
//
//	{"code": -404, "message": "Task not found", "errors": {...}}
//
// with the HTTP status taken from the Exception.
package resp
