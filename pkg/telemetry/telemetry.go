// Package telemetry wires the dataflow engine into OpenTelemetry, exposing
// compute/transform/cache metrics through a Prometheus exporter and a
// tracer for per-sink spans, mirroring the Provider pattern used elsewhere
// in this codebase.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "cake-dataflow-engine"

	metricComputeCalls     = "cake.compute.calls.total"
	metricComputeDuration  = "cake.compute.duration"
	metricComputeSuccess   = "cake.compute.success.total"
	metricComputeFailure   = "cake.compute.failure.total"
	metricTransformCalls   = "cake.transform.calls.total"
	metricTransformDuration = "cake.transform.duration"
	metricCacheHits        = "cake.cache.hits.total"
	metricCacheMisses      = "cake.cache.misses.total"
)

// Provider manages OpenTelemetry setup and provides access to tracers and
// meters.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	computeCalls      metric.Int64Counter
	computeDuration   metric.Float64Histogram
	computeSuccess    metric.Int64Counter
	computeFailure    metric.Int64Counter
	transformCalls    metric.Int64Counter
	transformDuration metric.Float64Histogram
	cacheHits         metric.Int64Counter
	cacheMisses       metric.Int64Counter

	mu sync.RWMutex
}

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
}

// DefaultConfig returns default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a telemetry provider with a Prometheus metrics
// exporter, initializing OpenTelemetry with the given configuration.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", config.ServiceName),
			attribute.String("service.version", config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}
	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter(serviceName)

	return p.createMetricInstruments()
}

func (p *Provider) initTracing() {
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

func (p *Provider) createMetricInstruments() error {
	var err error

	if p.computeCalls, err = p.meter.Int64Counter(metricComputeCalls, metric.WithDescription("Total number of Compute calls")); err != nil {
		return err
	}
	if p.computeDuration, err = p.meter.Float64Histogram(metricComputeDuration, metric.WithDescription("Compute call duration"), metric.WithUnit("ms")); err != nil {
		return err
	}
	if p.computeSuccess, err = p.meter.Int64Counter(metricComputeSuccess, metric.WithDescription("Total number of successful Compute calls")); err != nil {
		return err
	}
	if p.computeFailure, err = p.meter.Int64Counter(metricComputeFailure, metric.WithDescription("Total number of failed Compute calls")); err != nil {
		return err
	}
	if p.transformCalls, err = p.meter.Int64Counter(metricTransformCalls, metric.WithDescription("Total number of transform algorithm invocations")); err != nil {
		return err
	}
	if p.transformDuration, err = p.meter.Float64Histogram(metricTransformDuration, metric.WithDescription("Transform algorithm duration"), metric.WithUnit("ms")); err != nil {
		return err
	}
	if p.cacheHits, err = p.meter.Int64Counter(metricCacheHits, metric.WithDescription("Total number of producer-port cache hits")); err != nil {
		return err
	}
	if p.cacheMisses, err = p.meter.Int64Counter(metricCacheMisses, metric.WithDescription("Total number of producer-port cache misses")); err != nil {
		return err
	}
	return nil
}

// Tracer returns the tracer for creating spans.
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics.
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordCompute records metrics for a single Compute call.
func (p *Provider) RecordCompute(ctx context.Context, sinkID int, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.Int("sink.id", sinkID)}
	p.computeCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.computeDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if success {
		p.computeSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.computeFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordTransform records metrics for a single transform algorithm
// invocation.
func (p *Provider) RecordTransform(ctx context.Context, transformIdx int, name string, duration time.Duration) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Int("transform.idx", transformIdx),
		attribute.String("transform.name", name),
	}
	p.transformCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.transformDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordCacheHit records a producer-port cache hit.
func (p *Provider) RecordCacheHit(ctx context.Context) {
	if p.meter == nil {
		return
	}
	p.cacheHits.Add(ctx, 1)
}

// RecordCacheMiss records a producer-port cache miss.
func (p *Provider) RecordCacheMiss(ctx context.Context) {
	if p.meter == nil {
		return
	}
	p.cacheMisses.Add(ctx, 1)
}

// Shutdown gracefully shuts down the telemetry provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}
	return nil
}
