// Package ecode defines the business error codes carried in API failure
// responses and the field-level message helpers used by validation.
//
// Codes follow the convention:
//   - 0: Success (OK)
//   - -400 to -499: Request and resource errors
//   - -500+: Server errors
//
// Usage with the response package:
//
//	resp.Fail(w, &resp.Exception{
//	    Code:    ecode.NothingFound,
//	    Message: ecode.NotFound("Task"),
//	})
//
// The HTTP status of a failure follows from its code:
//
//	status := ecode.ToHTTPStatus(ecode.ParamErr) // 422
package ecode
