package vellum

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vellum-ui/vellum/pkg/component"
)

// Tracer name for Vellum applications. Spans come from the global tracer
// provider; configure it in main() before starting the server.
const tracerName = "vellum"

// tracer wraps the OpenTelemetry tracer with render-shaped span helpers.
type tracer struct {
	otel trace.Tracer
}

func newTracer() tracer {
	return tracer{otel: otel.Tracer(tracerName)}
}

// renderSpan annotates one render or update.
type renderSpan struct {
	span   trace.Span
	failed bool
}

func (t tracer) startRender(ctx context.Context, c *component.Component) (context.Context, *renderSpan) {
	return t.start(ctx, "vellum.render", c)
}

func (t tracer) startUpdate(ctx context.Context, c *component.Component) (context.Context, *renderSpan) {
	return t.start(ctx, "vellum.update", c)
}

func (t tracer) start(ctx context.Context, name string, c *component.Component) (context.Context, *renderSpan) {
	ctx, span := t.otel.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("vellum.component", c.TypeName()),
			attribute.String("vellum.component_id", fmt.Sprintf("%d", c.ID())),
		),
	)
	return ctx, &renderSpan{span: span}
}

func (s *renderSpan) cacheHit(hit bool) {
	s.span.SetAttributes(attribute.Bool("vellum.cache_hit", hit))
}

func (s *renderSpan) patches(count int) {
	s.span.SetAttributes(attribute.Int("vellum.patch_count", count))
}

func (s *renderSpan) fail(err error) {
	s.failed = true
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *renderSpan) end() {
	if !s.failed {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
