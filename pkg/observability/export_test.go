package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// BuildResource exposes buildResource for tests.
func BuildResource(cfg Config) (*resource.Resource, error) {
	return buildResource(cfg)
}

// Identity exposes Config.identity for tests.
func Identity(cfg Config) []slog.Attr {
	return cfg.identity()
}

// SamplesRootSpan reports whether the sampler selected for cfg samples a root span.
func SamplesRootSpan(cfg Config) bool {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(selectSampler(cfg)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("sampler-test").Start(context.Background(), "root")
	defer span.End()

	return span.SpanContext().IsSampled()
}
