package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/queuebook/errkind"
	"github.com/rise-and-shine/queuebook/meta"
)

const codeRouterError = "ROUTER_ERROR"

type errorSchema struct {
	Code    string            `json:"code"`
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// WriteErrorResponse writes err as a JSON error body with the status of its kind.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := mapAnyErrorToErrorX(err)
	kind := errkind.Classify(e)

	resp := errorSchema{
		Code:    e.Code(),
		Kind:    kind.String(),
		Message: e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		resp.Trace = e.Trace()
		resp.Details = e.Details()
	}

	c.Status(StatusCode(kind, e.Type()))
	_ = c.JSON(fiber.Map{
		"trace_id": meta.Find(c.UserContext(), meta.TraceID),
		"error":    resp,
	})

	return e
}

// StatusCode picks the status of a classified kind and falls back to the errx type
// for errors the taxonomy leaves unknown.
func StatusCode(kind errkind.Kind, t errx.Type) int {
	if kind != errkind.Unknown {
		return errkind.HTTPStatus(kind)
	}

	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// customErrorHandler renders errors that reach fiber, unless a response status was already set.
func customErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}
		_ = WriteErrorResponse(c, err, hideDetails)
		return nil
	}
}

func mapAnyErrorToErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return errx.AsErrorX(err)
	}

	var t errx.Type
	switch {
	case fiberErr.Code == fiber.StatusUnauthorized:
		t = errx.T_Authentication
	case fiberErr.Code == fiber.StatusForbidden:
		t = errx.T_Forbidden
	case fiberErr.Code == fiber.StatusNotFound:
		t = errx.T_NotFound
	case fiberErr.Code == fiber.StatusConflict:
		t = errx.T_Conflict
	case fiberErr.Code == fiber.StatusTooManyRequests:
		t = errx.T_Throttling
	case fiberErr.Code >= 400 && fiberErr.Code < 500:
		t = errx.T_Validation
	default:
		t = errx.T_Internal
	}

	return errx.AsErrorX(errx.New(
		fiberErr.Message,
		errx.WithCode(codeRouterError),
		errx.WithType(t),
		errx.WithDetails(errx.D{"fiber_code": fiberErr.Code}),
	))
}
