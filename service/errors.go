package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/ncobase/taskd/ecode"
	"github.com/ncobase/taskd/validation/validator"
)

// ErrTaskNotFound is returned when no task has the requested id.
var ErrTaskNotFound = errors.New(ecode.NotFound("Task"))

// ValidationError reports rejected input, keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validate runs the body's binding rules, the same ones gin applies.
func validate(body any) error {
	if fields := validator.ValidateStruct(body); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
