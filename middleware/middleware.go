package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/log"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	corsConfig domain.CORSConfig
	logger     log.Logger
}

const (
	// RequestIDHeader carries the request ID, either given by the caller or generated.
	RequestIDHeader = "X-Request-ID"

	unmatchedRoute = "unmatched"
	redactedValue  = "[redacted]"
)

// redactedParams are query parameters that identify users and must not reach traces.
var redactedParams = map[string]struct{}{
	"destination": {},
	"sender":      {},
}

var (
	// finsdk_requests_total
	//
	// counter of served requests by method, route and status code
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsdk_requests_total",
			Help: "Total number of requests.",
		},
		[]string{"method", "route", "status"},
	)

	// finsdk_request_duration_seconds
	//
	// histogram of request latencies by method and route
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finsdk_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestLatency)
}

// InitMiddleware initialize the middleware
func InitMiddleware(corsConfig *domain.CORSConfig, logger log.Logger) *GoMiddleware {
	m := &GoMiddleware{logger: logger}
	if corsConfig != nil {
		m.corsConfig = *corsConfig
	}
	return m
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		if m.corsConfig.AllowedOrigin != "" {
			header.Set("Access-Control-Allow-Origin", m.corsConfig.AllowedOrigin)
		}
		if m.corsConfig.AllowedHeaders != "" {
			header.Set("Access-Control-Allow-Headers", m.corsConfig.AllowedHeaders)
		}
		if m.corsConfig.AllowedMethods != "" {
			header.Set("Access-Control-Allow-Methods", m.corsConfig.AllowedMethods)
		}

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}
		return next(c)
	}
}

// RequestID echoes the caller's request ID or assigns a new one.
func (m *GoMiddleware) RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Response().Header().Set(RequestIDHeader, requestID)
		return next(c)
	}
}

// Recover turns a panic in a handler into a 500 and reports it to Sentry.
func (m *GoMiddleware) Recover(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				m.logger.Error("panic while serving request",
					zap.String("route", c.Path()),
					zap.String("request_id", c.Response().Header().Get(RequestIDHeader)),
					zap.Any("panic", r),
				)
				err = c.JSON(http.StatusInternalServerError, domain.ResponseError{Message: "internal server error"})
			}
		}()
		return next(c)
	}
}

// InstrumentMiddleware records request counts and latencies. Routes are labeled
// by their registered template so that path parameters do not add label values.
func (m *GoMiddleware) InstrumentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Let echo write the error response so that the status is known.
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request().Method

		requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
		requestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return nil
	}
}

// TraceWithParamsMiddleware starts a server span per request carrying the query parameters.
func (m *GoMiddleware) TraceWithParamsMiddleware(tracerName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tracer := otel.Tracer(tracerName)

			parentCtx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))

			ctx, span := tracer.Start(parentCtx, c.Path(), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.request_id", c.Response().Header().Get(RequestIDHeader)),
			)
			for key, values := range c.QueryParams() {
				value := values[0]
				if _, ok := redactedParams[key]; ok {
					value = redactedValue
				}
				span.SetAttributes(attribute.String("http.query."+key, value))
			}

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			span.SetAttributes(attribute.Int("http.status_code", c.Response().Status))
			return err
		}
	}
}
