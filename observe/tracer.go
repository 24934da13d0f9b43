package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// RPCMeta contains metadata about an outbound RPC for telemetry purposes.
type RPCMeta struct {
	ID        string   // Fully qualified RPC ID (namespace.name or just name)
	Namespace string   // Target service namespace (may be empty)
	Name      string   // Operation name (required)
	Version   string   // Client version tag (optional)
	Tags      []string // Free-form tags for discovery (optional)
	Category  string   // Operation category (optional)
}

// SpanName returns the deterministic span name for this RPC.
// Format: rpc.exec.<namespace>.<name> or rpc.exec.<name>
func (m RPCMeta) SpanName() string {
	if m.Namespace != "" {
		return "rpc.exec." + m.Namespace + "." + m.Name
	}
	return "rpc.exec." + m.Name
}

// Validate checks that the metadata is well-formed. Name is the only
// required field; everything else is optional context for telemetry.
func (m RPCMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingRPCName
	}
	return nil
}

// OperationID returns the fully qualified operation identifier.
// If ID field is set, returns it. Otherwise constructs from namespace and name.
func (m RPCMeta) OperationID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// Tracer wraps OpenTelemetry tracing with per-RPC span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan derives the span's context from ctx; it has no error return, so a canceled ctx is not reported here.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for RPC execution.
	StartSpan(ctx context.Context, meta RPCMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with RPC metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta RPCMeta) (context.Context, trace.Span) {
	spanName := meta.SpanName()

	// Build attributes
	attrs := []attribute.KeyValue{
		attribute.String("rpc.id", meta.OperationID()),
		attribute.String("rpc.name", meta.Name),
		attribute.Bool("rpc.error", false), // Will be updated in EndSpan if error
	}

	// Add namespace if present
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("rpc.namespace", meta.Namespace))
	}

	// Add optional attributes if present
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("rpc.version", meta.Version))
	}
	if meta.Category != "" {
		attrs = append(attrs, attribute.String("rpc.category", meta.Category))
	}
	if len(meta.Tags) > 0 {
		attrs = append(attrs, attribute.StringSlice("rpc.tags", meta.Tags))
	}

	ctx, span := t.tracer.Start(ctx, spanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("rpc.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta RPCMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
