package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/http/server"
)

// NewTimeoutMW bounds the request context by d.
func NewTimeoutMW(d time.Duration) server.Middleware {
	return server.Middleware{
		Priority: 800,
		Handler: func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), d)
			defer cancel()

			c.SetUserContext(ctx)
			return c.Next()
		},
	}
}
