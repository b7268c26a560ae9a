package ecode

import (
	"fmt"
)

const (
	invalidMsg  = "invalid"
	successMsg  = "successfully"
	notFoundMsg = "not found"
)

func withSubject(msg string, k []string) string {
	if len(k) > 0 && k[0] != "" {
		return fmt.Sprintf("%s %s", k[0], msg)
	}
	return msg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	return withSubject(invalidMsg, k)
}

// NotFound returns not found message, e.g. "Task not found".
func NotFound(k ...string) string {
	return withSubject(notFoundMsg, k)
}

// Done returns an action acknowledgement, e.g. "Task deleted successfully".
func Done(subject, action string) string {
	return fmt.Sprintf("%s %s %s", subject, action, successMsg)
}
