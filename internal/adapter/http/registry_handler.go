package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"friendloan-backend/internal/usecase/access"
)

// RegistryHandler serves the access registry: owner, payment ceiling and
// whitelist.
type RegistryHandler struct{ uc *access.Usecase }

func NewRegistryHandler(uc *access.Usecase) *RegistryHandler { return &RegistryHandler{uc: uc} }

type transferOwnershipReq struct {
	NewOwner string `json:"new_owner" validate:"required,hex32"`
}

type maxNbPaymentsReq struct {
	// a pointer so that an explicit 0 (disable creation) passes "required"
	MaxNbPayments *uint32 `json:"max_nb_payments" validate:"required"`
}

func (h *RegistryHandler) Get(c echo.Context) error {
	dto, err := h.uc.Registry(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RegistryHandler) TransferOwnership(c echo.Context) error {
	var req transferOwnershipReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.TransferOwnership(c.Request().Context(), caller(c), req.NewOwner); err != nil {
		return fail(c, err)
	}
	return h.Get(c)
}

func (h *RegistryHandler) SetMaxNbPayments(c echo.Context) error {
	var req maxNbPaymentsReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.SetMaxNbPayments(c.Request().Context(), caller(c), *req.MaxNbPayments); err != nil {
		return fail(c, err)
	}
	return h.Get(c)
}

func (h *RegistryHandler) IsWhitelisted(c echo.Context) error {
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	ok, err := h.uc.IsWhitelisted(c.Request().Context(), identity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"identity": identity, "whitelisted": ok})
}

func (h *RegistryHandler) AddToWhitelist(c echo.Context) error { return h.setWhitelisted(c, true) }

func (h *RegistryHandler) RemoveFromWhitelist(c echo.Context) error {
	return h.setWhitelisted(c, false)
}

func (h *RegistryHandler) setWhitelisted(c echo.Context, whitelisted bool) error {
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.SetWhitelisted(c.Request().Context(), caller(c), identity, whitelisted); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"identity": identity, "whitelisted": whitelisted})
}
