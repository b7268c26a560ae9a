// Package validator adapts go-playground/validator for request bodies:
// custom task rules, json field names in errors and friendly messages.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ncobase/taskd/ecode"
	"github.com/ncobase/taskd/structs"
)

// TaskStatusTag validates a structs.TaskStatus field.
const TaskStatusTag = "task_status"

// BodyKey is the errors key used when the body itself cannot be decoded.
const BodyKey = "body"

var (
	validate     *validator.Validate
	registerOnce sync.Once
)

func init() {
	validate = validator.New()
	validate.SetTagName("binding")
	if err := Register(validate); err != nil {
		panic(err)
	}
}

// errorMessages maps validation tags to messages.
var errorMessages = map[string]string{
	"required":    "The field '%s' is required.",
	"min":         "The field '%s' must be at least %s characters long.",
	"max":         "The field '%s' must be no longer than %s characters.",
	TaskStatusTag: "The field '%s' must be one of %s.",
}

// Register installs the task rules and json field naming on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation(TaskStatusTag, validateTaskStatus)
}

// RegisterBinding installs the task rules on gin's default binding engine.
// It is safe to call more than once.
func RegisterBinding() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("validator: unexpected gin binding engine")
			return
		}
		err = Register(v)
	})
	return err
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return false
	}
	return structs.TaskStatus(field.String()).Valid()
}

func statusList() string {
	names := make([]string, len(structs.TaskStatuses))
	for i, s := range structs.TaskStatuses {
		names[i] = string(s)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(e validator.FieldError) string {
	msg, ok := errorMessages[e.Tag()]
	if !ok {
		return ecode.FieldIsInvalid(e.Field())
	}
	switch strings.Count(msg, "%s") {
	case 1:
		return fmt.Sprintf(msg, e.Field())
	case 2:
		param := e.Param()
		if e.Tag() == TaskStatusTag {
			param = statusList()
		}
		return fmt.Sprintf(msg, e.Field(), param)
	}
	return msg
}

// ValidateStruct validates a struct and returns a map of JSON field names to
// friendly error messages. The map is empty when s is valid.
func ValidateStruct(s any) map[string]string {
	if err := validate.Struct(s); err != nil {
		return Translate(err)
	}
	return map[string]string{}
}

// Translate converts a binding or validation error into a map of JSON field
// names to messages. Decoding failures are keyed by the offending field when
// known, otherwise by BodyKey.
func Translate(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &validationErrs):
		for _, e := range validationErrs {
			out[e.Field()] = parseMessage(e)
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		out[typeErr.Field] = fmt.Sprintf("The field '%s' must be of type %s.", typeErr.Field, typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		out[BodyKey] = fmt.Sprintf("Malformed JSON at offset %d.", syntaxErr.Offset)
	case errors.Is(err, io.EOF):
		out[BodyKey] = "Request body is required."
	default:
		out[BodyKey] = err.Error()
	}
	return out
}
