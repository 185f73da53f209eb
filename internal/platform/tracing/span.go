// Package tracing opens child spans for the in-process layers of the bot.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer starts spans only below an existing span. Requests that were never
// traced, such as /healthz, stay span-free instead of producing root spans.
type Tracer struct {
	name     string
	provider trace.TracerProvider
}

// New returns a Tracer backed by the global provider, resolved per call so
// providers installed after package init are picked up.
func New(name string) Tracer {
	return Tracer{name: name}
}

func NewWithProvider(name string, provider trace.TracerProvider) Tracer {
	return Tracer{name: name, provider: provider}
}

func (t Tracer) Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(spanName) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}

	provider := t.provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return provider.Tracer(t.name).Start(ctx, spanName, trace.WithAttributes(attrs...))
}
