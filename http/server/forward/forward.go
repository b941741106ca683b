package forward

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/cqrs/query"
)

// Bind completes a decoded input from request state, e.g. the authenticated user.
type Bind[I any] func(c *fiber.Ctx, in I) error

// ToCommand decodes the request into I, applies binds, validates, executes cmd
// and writes its result as JSON with status.
func ToCommand[I command.Input, R command.Result](cmd command.Command[I, R], status int, binds ...Bind[I]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := prepare(c, binds)
		if err != nil {
			return err
		}

		res, err := cmd.Execute(c.UserContext(), in)
		if err != nil {
			return errx.Wrap(err)
		}

		if status == fiber.StatusNoContent {
			return c.SendStatus(status)
		}
		return errx.Wrap(c.Status(status).JSON(res))
	}
}

// ToQuery is ToCommand for read-only handlers, always answering 200.
func ToQuery[I query.Input, R query.Result](q query.Query[I, R], binds ...Bind[I]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := prepare(c, binds)
		if err != nil {
			return err
		}

		res, err := q.Execute(c.UserContext(), in)
		if err != nil {
			return errx.Wrap(err)
		}

		return errx.Wrap(c.JSON(res))
	}
}

func prepare[I any](c *fiber.Ctx, binds []Bind[I]) (I, error) {
	in, err := newInput[I]()
	if err != nil {
		return in, err
	}

	if err = decode(c, in); err != nil {
		return in, err
	}

	return in, bindAndValidate(c, in, binds)
}
