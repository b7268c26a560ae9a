package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ncobase/taskd/config"
	"github.com/ncobase/taskd/ctxutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	l := newLogger()
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInfoWritesKeyValues(t *testing.T) {
	l, buf := capture(t)
	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")

	l.Info(ctx, "task created", "id", "abc", "count", 2)

	entry := lastEntry(t, buf)
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, float64(2), entry["count"])
	assert.Equal(t, "trace-1", entry[ctxutil.TraceIDKey])
}

func TestErrorValuesAreStringified(t *testing.T) {
	l, buf := capture(t)
	l.Error(context.Background(), "store failed", "error", errors.New("connection refused"))
	assert.Equal(t, "connection refused", lastEntry(t, buf)["error"])
}

func TestOddKeyValues(t *testing.T) {
	l, buf := capture(t)
	l.Warn(context.Background(), "odd", "dangling")
	assert.Equal(t, "dangling", lastEntry(t, buf)["!BADKEY"])
}

func TestVersionField(t *testing.T) {
	l, buf := capture(t)
	l.SetVersion("1.2.3")
	l.Info(context.Background(), "hello")
	assert.Equal(t, "1.2.3", lastEntry(t, buf)[VersionKey])
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	l, buf := capture(t)
	l.Debug(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}

func TestApplyLevel(t *testing.T) {
	l := newLogger()
	require.NoError(t, l.ApplyLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	require.NoError(t, l.ApplyLevel(""))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	assert.Error(t, l.ApplyLevel("loud"))
}

func TestInitFileOutput(t *testing.T) {
	l := newLogger()
	path := filepath.Join(t.TempDir(), "logs", "taskd.log")

	cleanup, err := l.Init(&config.Logger{Level: "info", Format: "json", Output: "file", OutputFile: path})
	require.NoError(t, err)

	l.Info(context.Background(), "to file")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInitFileOutputRequiresPath(t *testing.T) {
	_, err := newLogger().Init(&config.Logger{Output: "file"})
	assert.Error(t, err)
}

func TestInitTextFormat(t *testing.T) {
	l := newLogger()
	_, err := l.Init(&config.Logger{Level: "warn", Format: "text"})
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}
