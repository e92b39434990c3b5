package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"friendloan-backend/internal/usecase/audit"
)

type AuditHandler struct{ uc *audit.Usecase }

func NewAuditHandler(uc *audit.Usecase) *AuditHandler { return &AuditHandler{uc: uc} }

// List serves GET /audit?after=<seq>&limit=<n>.
func (h *AuditHandler) List(c echo.Context) error {
	var after uint64
	if raw := c.QueryParam("after"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fail(c, badRequest("after must be an unsigned integer"))
		}
		after = n
	}
	var limit int
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fail(c, badRequest("limit must be a non-negative integer"))
		}
		limit = n
	}

	records, err := h.uc.List(c.Request().Context(), after, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *AuditHandler) Verify(c echo.Context) error {
	res, err := h.uc.Verify(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
