// Package telemetry wires OpenTelemetry export: an OTLP trace pipeline
// behind the global tracer provider, and an OTLP log pipeline exposed as
// a slog handler for the logger fanout. Both pipelines share one
// endpoint and shut down together.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/lanternworks/lantern-common/envcfg"
	"github.com/lanternworks/lantern-common/errors"
	"github.com/lanternworks/lantern-common/logger"
)

const (
	defaultServiceVersion = "1.0.0"
	defaultTimeout        = 5 * time.Second
)

var (
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfigFromEnv loads OpenTelemetry configuration from environment
// variables. Export stays disabled unless OTEL_ENABLED is set and an
// endpoint is configured via OTEL_EXPORTER_OTLP_ENDPOINT (or the older
// OTEL_EXPORTER_OTLP_TRACES_ENDPOINT).
func LoadConfigFromEnv(ctx context.Context, runningEnv string) (*Config, error) {
	enabled := envcfg.Bool(ctx, "OTEL_ENABLED",
		envcfg.Default(false)).
		ValueOrElse(false)

	serviceName := logger.GetSubsystem(ctx)

	svcName, err := envcfg.String(ctx, "OTEL_SERVICE_NAME", envcfg.Default(serviceName)).Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envcfg.String(ctx, "OTEL_SERVICE_VERSION",
		envcfg.Default(defaultServiceVersion)).
		Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envcfg.String(ctx, "OTEL_EXPORTER_OTLP_ENDPOINT",
		envcfg.Fallback(envcfg.String(ctx, "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
			envcfg.Default("")))).
		Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envcfg.Duration(ctx, "OTEL_EXPORTER_OTLP_TIMEOUT",
		envcfg.Default(defaultTimeout)).
		Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    runningEnv,
		Endpoint:       endpoint,
		Enabled:        enabled,
		Timeout:        timeout,
	}, nil
}

// Initialize sets up the OTLP trace and log pipelines with the given
// configuration. With export disabled or no endpoint configured it is a
// no-op.
func Initialize(ctx context.Context, config *Config) error {
	log := logger.Get(ctx)

	if !config.Enabled {
		log.InfoContext(ctx, "telemetry export is disabled")

		return nil
	}

	if config.Endpoint == "" {
		log.WarnContext(ctx, "telemetry endpoint not configured, export will be disabled")

		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tracerProvider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logExporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(config.Endpoint),
		otlploghttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	loggerProvider = sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	log.InfoContext(ctx, "telemetry initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
	)

	return nil
}

// LogHandler returns a slog handler that exports records through the
// log pipeline, for wiring into the logger fanout. It reports false
// until Initialize has set the pipeline up.
func LogHandler(name string) (slog.Handler, bool) {
	if loggerProvider == nil {
		return nil, false
	}

	return otelslog.NewHandler(name, otelslog.WithLoggerProvider(loggerProvider)), true
}

// Shutdown flushes and stops both pipelines. Safe to call when
// Initialize never ran or ran disabled.
func Shutdown(ctx context.Context) error {
	collected := &errors.Collection{}

	if tracerProvider != nil {
		collected.Add(tracerProvider.Shutdown(ctx))

		tracerProvider = nil
	}

	if loggerProvider != nil {
		collected.Add(loggerProvider.Shutdown(ctx))

		loggerProvider = nil
	}

	return collected.GetError()
}
