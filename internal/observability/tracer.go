package observability

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "detective-quest"
	serviceVersion = "1.0.0"
	defaultTarget  = "http://localhost:4318/v1/traces"
)

// Config holds the configuration for OpenTelemetry tracing
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	Endpoint       string
	AuthUser       string
	AuthPassword   string
}

// TracerProvider wraps the OpenTelemetry tracer provider with cleanup
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	enabled  bool
}

// InitTracing sets up OTLP/HTTP export. A disabled config yields a no-op provider.
func InitTracing(ctx context.Context, config Config) (*TracerProvider, error) {
	if !config.Enabled {
		return &TracerProvider{enabled: false}, nil
	}

	exporter, err := createExporter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxExportBatchSize(100),
		),
		sdktrace.WithResource(createResource(config)),
		sdktrace.WithSpanProcessor(sessionInjector{}),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)

	return &TracerProvider{
		provider: tp,
		enabled:  true,
	}, nil
}

// GetTracer returns a tracer for the given name
func (tp *TracerProvider) GetTracer(name string, options ...trace.TracerOption) trace.Tracer {
	if tp == nil || !tp.enabled {
		return noop.NewTracerProvider().Tracer(name, options...)
	}
	return tp.provider.Tracer(name, options...)
}

// Shutdown flushes pending spans and stops the exporter
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp == nil || !tp.enabled || tp.provider == nil {
		return nil
	}
	return tp.provider.Shutdown(ctx)
}

func (tp *TracerProvider) IsEnabled() bool {
	return tp != nil && tp.enabled
}

func createExporter(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithCompression(otlptracehttp.GzipCompression),
		otlptracehttp.WithTimeout(30 * time.Second),
	}
	if strings.HasPrefix(config.Endpoint, "http://") {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if config.AuthUser != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(config.AuthUser + ":" + config.AuthPassword))
		opts = append(opts, otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Basic " + auth,
		}))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
	}

	return exporter, nil
}

func createResource(config Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		attribute.String("deployment.environment", config.Environment),
	)
}

// LoadConfigFromEnv loads tracing configuration from environment variables
func LoadConfigFromEnv() Config {
	return LoadConfig(os.Getenv)
}

// LoadConfig reads tracing settings through getenv.
func LoadConfig(getenv func(string) string) Config {
	config := Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    "development",
		Enabled:        getenv("OTEL_TRACES_ENABLED") == "true",
	}
	if !config.Enabled {
		return config
	}

	if env := getenv("ENVIRONMENT"); env != "" {
		config.Environment = env
	}

	config.Endpoint = getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if config.Endpoint == "" {
		config.Endpoint = defaultTarget
	} else if !strings.HasSuffix(config.Endpoint, "/v1/traces") {
		config.Endpoint = strings.TrimSuffix(config.Endpoint, "/") + "/v1/traces"
	}

	config.AuthUser = getenv("OTEL_AUTH_USER")
	config.AuthPassword = getenv("OTEL_AUTH_PASSWORD")

	return config
}

// SessionAttributes describes a playthrough on a span.
func SessionAttributes(sessionID, scenario string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("game.scenario", scenario),
	}
	if sessionID != "" {
		attrs = append(attrs, attribute.String("session.id", sessionID))
	}
	return attrs
}

type sessionInjector struct{}

func (sessionInjector) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {
	if sid := SessionIDFromContext(ctx); sid != "" {
		s.SetAttributes(attribute.String("session.id", sid))
	}
}

func (sessionInjector) OnEnd(s sdktrace.ReadOnlySpan)    {}
func (sessionInjector) Shutdown(context.Context) error   { return nil }
func (sessionInjector) ForceFlush(context.Context) error { return nil }

type contextKey string

const sessionIDKey contextKey = "session_id"

// WithSessionID tags ctx so every span started from it carries the session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}
