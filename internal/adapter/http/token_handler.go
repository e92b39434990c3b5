package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"friendloan-backend/internal/usecase/token"
)

type TokenHandler struct{ uc *token.Usecase }

func NewTokenHandler(uc *token.Usecase) *TokenHandler { return &TokenHandler{uc: uc} }

type supplyReq struct {
	Identity string `json:"identity" validate:"required,hex32"`
	Amount   uint64 `json:"amount"   validate:"required"`
}

func (h *TokenHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Info())
}

func (h *TokenHandler) BalanceOf(c echo.Context) error {
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := h.uc.BalanceOf(c.Request().Context(), identity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"identity": identity, "balance": b})
}

func (h *TokenHandler) Mint(c echo.Context) error {
	var req supplyReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.Mint(c.Request().Context(), caller(c), req.Identity, req.Amount); err != nil {
		return fail(c, err)
	}
	return h.balance(c, req.Identity)
}

func (h *TokenHandler) Burn(c echo.Context) error {
	var req supplyReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.Burn(c.Request().Context(), caller(c), req.Identity, req.Amount); err != nil {
		return fail(c, err)
	}
	return h.balance(c, req.Identity)
}

func (h *TokenHandler) balance(c echo.Context, identity string) error {
	b, err := h.uc.BalanceOf(c.Request().Context(), identity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"identity": identity, "balance": b})
}
