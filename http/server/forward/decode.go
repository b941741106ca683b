// Package forward adapts fiber requests to commands and queries.
package forward

import (
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/val"
)

const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeInvalidJSONBody    = "INVALID_JSON_BODY"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	codeInvalidPathParams  = "INVALID_PATH_PARAMS"
)

// newInput allocates the struct behind pointer type I.
func newInput[I any]() (I, error) {
	var in I

	t := reflect.TypeFor[I]()
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return in, errx.New("input type must be a pointer to a struct", errx.WithDetails(errx.D{"type": t.String()}))
	}

	return reflect.New(t.Elem()).Interface().(I), nil //nolint:errcheck // type checked above
}

// decode fills in from path params, query params and the JSON body.
func decode[I any](c *fiber.Ctx, in I) error {
	if len(c.Route().Params) > 0 {
		if err := c.ParamsParser(in); err != nil {
			return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidPathParams))
		}
	}

	if len(c.Queries()) > 0 {
		if err := c.QueryParser(in); err != nil {
			return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidQueryParams))
		}
	}

	if len(c.Body()) > 0 {
		if c.Get(fiber.HeaderContentType) != fiber.MIMEApplicationJSON {
			return errx.New(
				"content type must be application/json",
				errx.WithType(errx.T_Validation),
				errx.WithCode(codeInvalidContentType),
			)
		}
		if err := c.BodyParser(in); err != nil {
			return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidJSONBody))
		}
	}

	return nil
}

// bindAndValidate runs binds on the decoded input and validates the result.
func bindAndValidate[I any](c *fiber.Ctx, in I, binds []Bind[I]) error {
	for _, bind := range binds {
		if err := bind(c, in); err != nil {
			return errx.Wrap(err)
		}
	}
	return errx.Wrap(val.ValidateSchema(in))
}
