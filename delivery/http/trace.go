package http

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span returns the request context and the span started for it by the tracing middleware.
func Span(c echo.Context) (context.Context, trace.Span) {
	ctx := c.Request().Context()
	return ctx, trace.SpanFromContext(ctx)
}

// RecordSpanError records err on the span and marks the span as failed.
// The span itself is ended by the middleware.
func RecordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
