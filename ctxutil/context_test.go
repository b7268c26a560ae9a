package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetTraceIDEmpty(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestSetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", GetTraceID(ctx))
}

func TestEnsureTraceIDKeepsExisting(t *testing.T) {
	ctx := SetTraceID(context.Background(), "existing")
	got, id := EnsureTraceID(ctx)
	assert.Equal(t, "existing", id)
	assert.Equal(t, ctx, got)
}

func TestEnsureTraceIDGenerates(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetTraceID(ctx))
}
