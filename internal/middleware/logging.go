// Package middleware provides request context, logging, tracing and rate limiting middleware.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CorrelationIDHeader carries a caller-chosen id across the web and API hops.
const CorrelationIDHeader = "X-Correlation-ID"

// ContextMiddleware injects request ID and trace ID from Fiber locals into the request context.
// This allows these values to be picked up by the context-aware logger even in deep service layers.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if rid, ok := c.Locals("requestid").(string); ok {
			ctx = context.WithValue(ctx, observability.RequestIDKey, rid)
		}
		if tid, ok := c.Locals("traceID").(string); ok {
			ctx = context.WithValue(ctx, observability.TraceIDKey, tid)
		}

		cid := c.Get(CorrelationIDHeader)
		if cid == "" {
			cid = observability.GenerateCorrelationID()
		}
		ctx = observability.WithCorrelationID(ctx, cid)
		c.Set(CorrelationIDHeader, cid)

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger returns a Fiber middleware for logging requests using slog
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			observability.Logger.ErrorContext(c.UserContext(), "request failed", fields...)
		} else {
			observability.Logger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
