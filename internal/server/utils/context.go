package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/trip-planner-app/pkg/logger"
	"go.uber.org/zap"
)

// Keys under which the middlewares store per-request values on the gin context.
const (
	SpanContextKey = "span_context"
	RequestIDKey   = "request_id"
)

// GetContextFromGinContext returns the traced request context set by the
// telemetry middleware, or the plain request context before it has run.
func GetContextFromGinContext(c *gin.Context) context.Context {
	if v, ok := c.Get(SpanContextKey); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

// GetRequestIDFromGinContext returns the request ID, or "" when the
// request-ID middleware is not installed.
func GetRequestIDFromGinContext(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return logger.RequestIDFromContext(c.Request.Context())
}

// RequestLogger scopes base to the current request.
func RequestLogger(c *gin.Context, base *zap.Logger) *zap.Logger {
	if id := GetRequestIDFromGinContext(c); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
