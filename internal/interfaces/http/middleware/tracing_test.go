package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/shop/backend/internal/infrastructure/auth"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	r := gin.New()
	r.Use(Tracing("shop-test", false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_SpanAttributes(t *testing.T) {
	sr := setupTestTracer(t)
	svc := newTestJWTService(time.Hour)

	r := gin.New()
	r.Use(RequestID(), Tracing("shop-test", true))
	r.GET("/api/v1/customer/orders", JWTAuth(JWTConfig{JWTService: svc}), SpanAttributes(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := get(r, "/api/v1/customer/orders", issueToken(t, svc, auth.SubjectCustomer))
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/customer/orders", spans[0].Name())

	v, ok := spanAttr(spans[0], "enduser.id")
	require.True(t, ok)
	assert.Equal(t, "customer:42", v.AsString())

	v, ok = spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, w.Header().Get(RequestIDHeader), v.AsString())
}

func TestSpanAttributes_MarksClientErrors(t *testing.T) {
	sr := setupTestTracer(t)
	r := gin.New()
	r.Use(Tracing("shop-test", true), SpanAttributes())
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	get(r, "/missing", "")

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	v, ok := spanAttr(spans[0], "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusNotFound), v.AsInt64())
}
