package otel

import (
	"context"
	"sync"

	eventbus "github.com/hanpama/gqlcoerce/internal/eventbus"
	events "github.com/hanpama/gqlcoerce/internal/events"
	reqid "github.com/hanpama/gqlcoerce/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("gqlcoerce")}
	unsubscribe := sub.register()

	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

type subscriber struct {
	tracer      trace.Tracer
	schemaSpans sync.Map // rid -> trace.Span
	coerceSpans sync.Map // rid -> trace.Span
}

func (s *subscriber) register() (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.SchemaLoadStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "gqlcoerce.schema")
			span.SetAttributes(attribute.String("gqlcoerce.schema.source", e.Source))
			s.schemaSpans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.SchemaLoadFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.schemaSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int("gqlcoerce.schema.types", e.Types))
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.CoercionStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "gqlcoerce."+e.Command)
			span.SetAttributes(
				attribute.String("graphql.input.type", e.Type),
				attribute.String("gqlcoerce.input", e.Input),
			)
			s.coerceSpans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.CoercionFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.coerceSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(
				attribute.Int("graphql.error_count", len(e.ErrorKinds)),
				attribute.StringSlice("graphql.error_kinds", e.ErrorKinds),
			)
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
