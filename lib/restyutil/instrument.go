package restyutil

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// InstrumentClient attaches a span to every request made by `client` and
// mirrors request outcomes to slog at debug level. `tracer` can be nil, it
// will default to a library name of "resty".
func InstrumentClient(client *resty.Client, tracer oteltrace.Tracer) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
		slog.DebugContext(ctx, "start request", "method", req.Method, "url", req.URL)
		req.SetContext(ctx)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		ctx := res.Request.Context()
		span := oteltrace.SpanFromContext(ctx)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.url", res.Request.URL),
			attribute.Int("http.status_code", res.StatusCode()),
			attribute.Int("http.response_size", len(res.Body())),
		)
		if res.IsError() {
			span.SetStatus(codes.Error, res.Status())
		}

		slog.DebugContext(
			ctx, "request complete",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"elapsed", res.Time(),
		)
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		span := oteltrace.SpanFromContext(req.Context())
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		span.End()
	})
}
