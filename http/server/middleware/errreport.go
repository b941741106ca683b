package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/errkind"
	"github.com/rise-and-shine/queuebook/http/server"
)

// Reporter records unexpected failures. *errkind.Reporter implements it.
type Reporter interface {
	Report(ctx context.Context, err error) errkind.Kind
}

// NewErrorReportMW reports every failed request to r. Only unexpected failures
// end up in the errors collection; auth and throttling rejections do not.
func NewErrorReportMW(r Reporter) server.Middleware {
	return server.Middleware{
		Priority: 600,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err != nil {
				r.Report(c.UserContext(), err)
			}
			return err
		},
	}
}
