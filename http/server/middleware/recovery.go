package middleware

import (
	"runtime"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/http/server"
	"github.com/rise-and-shine/queuebook/observability/logger"
)

const (
	CodePanicRecovered = "PANIC_RECOVERED"

	stackTraceSize = 4 << 10
)

// NewRecoveryMW turns panics of the handler chain into internal errors.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	log = log.Named("http.recovery")

	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				stack := make([]byte, stackTraceSize)
				stack = stack[:runtime.Stack(stack, false)]

				log.WithContext(c.UserContext()).
					With("stack_trace", string(stack), "panic_message", r).
					Error("recovered from panic")

				err = errx.New(
					"panic recovered",
					errx.WithCode(CodePanicRecovered),
					errx.WithType(errx.T_Internal),
					errx.WithDetails(errx.D{"panic_message": r}),
				)
			}()

			return c.Next()
		},
	}
}
