// Package tracing configures OpenTelemetry trace export with lifecycle coordination.
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/JaimeStill/registrar/pkg/lifecycle"
)

// System exposes the service tracer.
type System interface {
	// Tracer returns the named tracer. Disabled systems return a no-op tracer.
	Tracer() trace.Tracer
	// Enabled reports whether spans are exported.
	Enabled() bool
	// Start registers a shutdown hook that flushes pending spans.
	Start(lc *lifecycle.Coordinator) error
}

type otelSystem struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
	name     string
	enabled  bool
	logger   *slog.Logger
}

// New builds the tracer provider. When cfg.Enabled is false the provider is a no-op
// and nothing is registered globally.
func New(ctx context.Context, cfg *Config, version string, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "tracing")

	if !cfg.Enabled {
		return &otelSystem{
			provider: noop.NewTracerProvider(),
			name:     cfg.ServiceName,
			logger:   logger,
		}, nil
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("trace resource: %w", err)
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing initialized", "service", cfg.ServiceName, "endpoint", cfg.Endpoint)

	return &otelSystem{
		provider: tp,
		shutdown: tp.Shutdown,
		name:     cfg.ServiceName,
		enabled:  true,
		logger:   logger,
	}, nil
}

func newExporter(ctx context.Context, cfg *Config) (sdktrace.SpanExporter, error) {
	if cfg.Endpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func (s *otelSystem) Tracer() trace.Tracer {
	return s.provider.Tracer(s.name)
}

func (s *otelSystem) Enabled() bool {
	return s.enabled
}

func (s *otelSystem) Start(lc *lifecycle.Coordinator) error {
	if s.shutdown == nil {
		return nil
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("flushing trace exporter")

		if err := s.shutdown(context.Background()); err != nil {
			s.logger.Error("trace shutdown failed", "error", err)
			return
		}

		s.logger.Info("trace exporter closed")
	})

	return nil
}
