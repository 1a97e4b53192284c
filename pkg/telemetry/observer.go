package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cakeflow/cake/pkg/observer"
)

// TelemetryObserver bridges engine events into the Provider's OpenTelemetry
// spans and metrics. Register it with an observer.Manager alongside any
// other observers.
type TelemetryObserver struct {
	provider *Provider

	mu         sync.Mutex
	sinkSpans  map[int]trace.Span
	transSpans map[string]trace.Span
}

// NewTelemetryObserver creates an observer that records to provider.
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:   provider,
		sinkSpans:  make(map[int]trace.Span),
		transSpans: make(map[string]trace.Span),
	}
}

// OnEvent implements observer.Observer.
func (t *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventComputeStart:
		t.handleComputeStart(ctx, event)
	case observer.EventComputeEnd:
		t.handleComputeEnd(ctx, event)
	case observer.EventTransformStart:
		t.handleTransformStart(ctx, event)
	case observer.EventTransformEnd:
		t.handleTransformEnd(ctx, event)
	case observer.EventCacheHit:
		t.provider.RecordCacheHit(ctx)
	case observer.EventCacheMiss:
		t.provider.RecordCacheMiss(ctx)
	}
}

func (t *TelemetryObserver) handleComputeStart(ctx context.Context, event observer.Event) {
	if t.provider.tracer == nil {
		return
	}
	_, span := t.provider.tracer.Start(ctx, "compute",
		trace.WithAttributes(attribute.Int("sink.id", event.SinkID)))

	t.mu.Lock()
	t.sinkSpans[event.SinkID] = span
	t.mu.Unlock()
}

func (t *TelemetryObserver) handleComputeEnd(ctx context.Context, event observer.Event) {
	t.provider.RecordCompute(ctx, event.SinkID, event.Elapsed, event.Err == nil)

	t.mu.Lock()
	span, ok := t.sinkSpans[event.SinkID]
	if ok {
		delete(t.sinkSpans, event.SinkID)
	}
	t.mu.Unlock()
	if !ok {
		return
	}
	if event.Err != nil {
		span.RecordError(event.Err)
		span.SetStatus(codes.Error, event.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (t *TelemetryObserver) handleTransformStart(ctx context.Context, event observer.Event) {
	if t.provider.tracer == nil {
		return
	}
	_, span := t.provider.tracer.Start(ctx, "transform",
		trace.WithAttributes(
			attribute.Int("transform.idx", event.TransformIdx),
			attribute.String("transform.name", event.TransformName),
		))

	t.mu.Lock()
	t.transSpans[transformKey(event.TransformIdx)] = span
	t.mu.Unlock()
}

func (t *TelemetryObserver) handleTransformEnd(ctx context.Context, event observer.Event) {
	t.provider.RecordTransform(ctx, event.TransformIdx, event.TransformName, event.Elapsed)

	key := transformKey(event.TransformIdx)
	t.mu.Lock()
	span, ok := t.transSpans[key]
	if ok {
		delete(t.transSpans, key)
	}
	t.mu.Unlock()
	if !ok {
		return
	}
	if event.Err != nil {
		span.RecordError(event.Err)
		span.SetStatus(codes.Error, event.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func transformKey(idx int) string {
	return fmt.Sprintf("transform:%d", idx)
}
