// Package tracing configures OpenTelemetry tracing and propagation.
package tracing

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/GoUserManagement/UserManagement/internal/config"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Init installs the W3C propagators and, if enabled, an OTLP/HTTP tracer provider.
// The returned ShutdownFunc is never nil.
func Init(ctx context.Context, cfg config.Tracing, serviceName string) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, errors.Wrap(err, "tracing: create exporter")
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, errors.Wrap(err, "tracing: create resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	log.Info().Str("endpoint", cfg.Endpoint).Str("service", serviceName).Msg("tracing enabled")

	return tp.Shutdown, nil
}

// exporterOptions accepts host:port or a full URL as endpoint.
func exporterOptions(cfg config.Tracing) []otlptracehttp.Option {
	var opts []otlptracehttp.Option

	parsed, err := url.Parse(cfg.Endpoint)
	if err == nil && parsed.Scheme != "" && parsed.Host != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(parsed.Host))

		if parsed.Path != "" && parsed.Path != "/" {
			opts = append(opts, otlptracehttp.WithURLPath(parsed.Path))
		}

		if parsed.Scheme == "http" {
			opts = append(opts, otlptracehttp.WithInsecure())
		}

		return opts
	}

	opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return opts
}
