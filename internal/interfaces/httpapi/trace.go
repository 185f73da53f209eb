package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/fplbot/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

var (
	apiTracer = tracing.New("fplbot/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan only opens handler spans; middleware and helpers get a noop span
// and stay inside the request span otelhttp already created.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
