package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"friendloan-backend/internal/adapter/middleware"
	"friendloan-backend/internal/domain/errs"
	"friendloan-backend/pkg/id"
)

// badRequest is a malformed path or query parameter.
type badRequest string

func (e badRequest) Error() string { return string(e) }

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	var br badRequest
	if errors.As(err, &br) {
		return http.StatusBadRequest
	}
	switch errs.Kind(err) {
	case errs.ErrUnauthorized:
		return http.StatusForbidden
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrInvalidState, errs.ErrCapacityExceeded:
		return http.StatusConflict
	case errs.ErrInvalidArgument:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Internal failures are not echoed
// back to the client.
func fail(c echo.Context, err error) error {
	switch code := statusOf(err); code {
	case http.StatusInternalServerError:
		log.Printf("http: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(code, ErrorResponse{Error: "internal error", Kind: errs.Label(err)})
	case http.StatusBadRequest:
		return c.JSON(code, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(code, ErrorResponse{Error: err.Error(), Kind: errs.Label(err)})
	}
}

// decode binds and validates req. When it returns false the error
// response has already been written and the returned error is the
// handler's result.
func decode(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func loanIDParam(c echo.Context) (uint64, error) {
	n, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	if err != nil {
		return 0, badRequest("loan_id must be an unsigned integer")
	}
	return n, nil
}

func identityParam(c echo.Context) (string, error) {
	s := c.Param("identity")
	if !id.Valid(s) {
		return "", badRequest("identity must be 32-char lowercase hex")
	}
	return s, nil
}

func caller(c echo.Context) string { return middleware.CallerFrom(c) }
