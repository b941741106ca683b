package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/http/server"
	"github.com/rise-and-shine/queuebook/observability/logger"
)

// NewLoggerMW logs one entry per request: info below 400, warn below 500, error otherwise.
func NewLoggerMW(log logger.Logger) server.Middleware {
	log = log.Named("http.logger")

	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			status := c.Response().StatusCode()
			l := log.WithContext(c.UserContext()).With(
				"http_status_code", status,
				"http_method", c.Method(),
				"http_path", c.Path(),
				"http_route", c.Route().Path,
				"duration", time.Since(start),
				"request_size", len(c.Body()),
			)

			if err != nil {
				e := errx.AsErrorX(err)
				l = l.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case status >= fiber.StatusInternalServerError:
				l.Error("request failed")
			case status >= fiber.StatusBadRequest:
				l.Warn("request rejected")
			default:
				l.Info("request processed")
			}

			return err
		},
	}
}
