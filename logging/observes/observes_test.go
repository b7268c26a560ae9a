package observes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewSentryDisabled(t *testing.T) {
	flush, err := NewSentry(nil)
	require.NoError(t, err)
	flush()

	flush, err = NewSentry(&SentryOptions{})
	require.NoError(t, err)
	flush()

	// No client bound: must not panic.
	CaptureError(context.Background(), errors.New("boom"), nil)
}

func TestNewTracerDisabled(t *testing.T) {
	shutdown, err := NewTracer(&TracerOption{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), "test", "op")
	EndSpan(span, errors.New("failed"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "op", spans[0].Name())
	assert.Equal(t, otelcodes.Error, spans[0].Status().Code)
}
