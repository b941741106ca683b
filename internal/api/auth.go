package api

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rise-and-shine/queuebook/http/server/forward"
	"github.com/rise-and-shine/queuebook/internal/domain"
	"github.com/rise-and-shine/queuebook/meta"
)

const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeSuperuserRequired = "SUPERUSER_REQUIRED"

	localsUser = "current_user"
)

// currentUser loads the user authenticated upstream. The result is cached in locals.
func (a *API) currentUser(c *fiber.Ctx) (*domain.User, error) {
	if u, ok := c.Locals(localsUser).(*domain.User); ok {
		return u, nil
	}

	raw := meta.Find(c.UserContext(), meta.RequestUserID)
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errx.New(
			"authentication required",
			errx.WithCode(CodeUnauthenticated),
			errx.WithType(errx.T_Authentication),
		)
	}

	u, err := a.users(a.db).GetByID(c.UserContext(), id)
	if err != nil {
		if errx.GetType(err) == errx.T_NotFound {
			return nil, errx.Wrap(err, errx.WithCode(CodeUnauthenticated), errx.WithType(errx.T_Authentication))
		}
		return nil, errx.Wrap(err)
	}

	c.Locals(localsUser, u)
	return u, nil
}

// withUser stores the current user into the input through set.
func withUser[I any](a *API, set func(I, *domain.User)) forward.Bind[I] {
	return func(c *fiber.Ctx, in I) error {
		u, err := a.currentUser(c)
		if err != nil {
			return err
		}
		set(in, u)
		return nil
	}
}

// superuserOnly rejects requests of users without the superuser flag.
func superuserOnly[I any](a *API) forward.Bind[I] {
	return func(c *fiber.Ctx, _ I) error {
		u, err := a.currentUser(c)
		if err != nil {
			return err
		}
		if !u.IsSuperuser {
			return errx.New(
				"superuser required",
				errx.WithCode(CodeSuperuserRequired),
				errx.WithType(errx.T_Forbidden),
			)
		}
		return nil
	}
}
