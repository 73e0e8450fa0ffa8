package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/log"
	"github.com/rujira-labs/finsdk/middleware"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	m := middleware.InitMiddleware(&domain.CORSConfig{
		AllowedHeaders: "Content-Type",
		AllowedMethods: "GET, POST",
		AllowedOrigin:  "*",
	}, &log.NoOpLogger{})

	e := echo.New()
	e.Use(m.RequestID)
	e.Use(m.Recover)
	e.Use(m.CORS)
	e.Use(m.InstrumentMiddleware)
	e.Use(m.TraceWithParamsMiddleware("test"))

	e.GET("/quote", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	return e
}

func TestMiddleware_CORSAndRequestID(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quote?fromAsset=BTC.BTC&destination=thor1abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	require.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/quote", nil)
	req.Header.Set(middleware.RequestIDHeader, "given-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, "given-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestMiddleware_Preflight(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/quote", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestMiddleware_Recover(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestMiddleware_InstrumentCountsStatus(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "finsdk_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == "404" {
					found = true
				}
			}
		}
	}
	require.True(t, found)
}
