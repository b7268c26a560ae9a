package observes

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/taskd/ctxutil"
)

// SentryOptions configures error reporting.
type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
	SampleRate  float64
}

// NewSentry initialises the Sentry client. A nil or empty DSN disables
// reporting and CaptureError becomes a no-op.
func NewSentry(opt *SentryOptions) (func(), error) {
	if opt == nil || opt.Dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		SampleRate:       opt.SampleRate,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
	if err != nil {
		return nil, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError reports err with the request trace id attached.
func CaptureError(ctx context.Context, err error, tags map[string]string) {
	if err == nil || sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
			scope.SetTag(ctxutil.TraceIDKey, traceID)
		}
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}
