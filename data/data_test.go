package data

import (
	"context"
	"testing"
	"time"

	"github.com/ncobase/taskd/config"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/stretchr/testify/assert"
)

func TestNewRequiresURI(t *testing.T) {
	_, err := New(context.Background(), &config.MongoDB{}, logger.Discard())
	assert.ErrorContains(t, err, "uri is required")

	_, err = New(context.Background(), nil, logger.Discard())
	assert.Error(t, err)
}

func TestNewFailsWhenStoreUnreachable(t *testing.T) {
	cfg := &config.MongoDB{
		URI:            "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100",
		Database:       "taskd",
		Collection:     "tasks",
		ConnectTimeout: 2 * time.Second,
	}
	_, err := New(context.Background(), cfg, logger.Discard())
	assert.ErrorContains(t, err, "failed to ping MongoDB")
}

func TestNewRejectsMalformedURI(t *testing.T) {
	cfg := &config.MongoDB{URI: "postgres://nope", ConnectTimeout: time.Second}
	_, err := New(context.Background(), cfg, logger.Discard())
	assert.ErrorContains(t, err, "failed to connect to MongoDB")
}
