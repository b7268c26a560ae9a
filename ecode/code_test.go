package ecode

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Resource not found", Text(NothingFound))
	assert.Equal(t, Text(ServerErr), Text(-99999))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(NothingFound))
	assert.Equal(t, http.StatusUnprocessableEntity, ToHTTPStatus(ParamErr))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(-12345))
}

func TestFieldMessages(t *testing.T) {
	assert.Equal(t, "status invalid", FieldIsInvalid("status"))
	assert.Equal(t, "invalid", FieldIsInvalid())
}

func TestDone(t *testing.T) {
	assert.Equal(t, "Task deleted successfully", Done("Task", "deleted"))
	assert.Equal(t, "Task not found", NotFound("Task"))
}
