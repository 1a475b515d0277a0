package observability

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "finitefield.org/hanko-seo/internal/observability"

// TraceMiddleware starts a server span per request. A nil provider uses the
// global one.
func TraceMiddleware(tp trace.TracerProvider) func(http.Handler) http.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			span.SetAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			)

			recorder := newResponseRecorder(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(recorder, r)

			status := recorder.Status()
			span.SetAttributes(
				attribute.String("http.route", routePattern(r)),
				attribute.Int("http.response.status_code", status),
			)
			setSpanStatus(span, status)
		})
	}
}

func setSpanStatus(span trace.Span, status int) {
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
		return
	}
	span.SetStatus(codes.Ok, http.StatusText(status))
}
