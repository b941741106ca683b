package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/http/server"
	"github.com/rise-and-shine/queuebook/meta"
	"github.com/rise-and-shine/queuebook/observability/tracing"
)

const (
	HeaderTraceID = "X-Trace-ID"

	// HeaderUserID carries the id of the user authenticated upstream.
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// NewMetaInjectMW puts request metadata into the user context and echoes the trace id.
func NewMetaInjectMW(serviceName, serviceVersion string) server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			traceID := tracing.TraceIDFromContext(ctx)

			c.SetUserContext(meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:         traceID,
				meta.IPAddress:       c.IP(),
				meta.UserAgent:       c.Get(fiber.HeaderUserAgent),
				meta.AcceptLanguage:  c.Get(fiber.HeaderAcceptLanguage),
				meta.ServiceName:     serviceName,
				meta.ServiceVersion:  serviceVersion,
				meta.RequestUserID:   c.Get(HeaderUserID),
				meta.RequestUserRole: c.Get(HeaderUserRole),
			}))
			c.Set(HeaderTraceID, traceID)

			return c.Next()
		},
	}
}
