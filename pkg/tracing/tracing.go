package tracing

import (
	"context"
	"strings"

	"videotube/pkg/config"
	"videotube/pkg/logger"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Init installs the global tracer provider. Without an OTLP endpoint the
// default no-op provider stays in place and the returned shutdown is a no-op.
func Init(ctx context.Context, cfg *config.Config, serviceName string, log *logger.Logger) (func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		log.Info("Tracing disabled: OTEL_EXPORTER_OTLP_ENDPOINT is not set")
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(trimScheme(cfg.OTLPEndpoint))}
	if strings.HasPrefix(cfg.OTLPEndpoint, "http://") {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create OTLP exporter")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(provider)
	log.Info("Tracing enabled, exporting to %s", cfg.OTLPEndpoint)

	return provider.Shutdown, nil
}

func trimScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimPrefix(endpoint, "https://")
}
