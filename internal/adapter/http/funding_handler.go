package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"friendloan-backend/internal/usecase/funding"
)

// FundingHandler serves the guarantor and lender ledgers of a loan.
type FundingHandler struct{ uc *funding.Usecase }

func NewFundingHandler(uc *funding.Usecase) *FundingHandler { return &FundingHandler{uc: uc} }

type guaranteeReq struct {
	Amount uint64 `json:"amount" validate:"required"`
}

type replaceGuarantorReq struct {
	Outgoing string `json:"outgoing" validate:"required,hex32"`
	// zero keeps the outgoing commitment amount
	Amount uint64 `json:"amount"`
}

type offerReq struct {
	Amount       uint64 `json:"amount"        validate:"required"`
	InterestRate uint64 `json:"interest_rate"`
}

func (h *FundingHandler) AppendGuarantor(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	var req guaranteeReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.AppendGuarantor(c.Request().Context(), caller(c), loanID, req.Amount); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusCreated)
}

func (h *FundingHandler) RemoveGuarantor(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.RemoveGuarantor(c.Request().Context(), caller(c), loanID); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

func (h *FundingHandler) ForceRemoveGuarantor(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.ForceRemoveGuarantor(c.Request().Context(), caller(c), loanID, identity); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

func (h *FundingHandler) ReplaceGuarantor(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	var req replaceGuarantorReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.ReplaceGuarantor(c.Request().Context(), caller(c), loanID, req.Outgoing, req.Amount); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

func (h *FundingHandler) GuarantorsCount(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	n, err := h.uc.GuarantorsCount(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": loanID, "count": n})
}

func (h *FundingHandler) IsGuarantorEngaged(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	engaged, err := h.uc.IsGuarantorEngaged(c.Request().Context(), loanID, identity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": loanID, "identity": identity, "engaged": engaged})
}

func (h *FundingHandler) AppendLender(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	var req offerReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.AppendLender(c.Request().Context(), caller(c), loanID, req.Amount, req.InterestRate); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusCreated)
}

func (h *FundingHandler) RemoveLender(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.RemoveLender(c.Request().Context(), caller(c), loanID); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

func (h *FundingHandler) PendingLenders(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.uc.PendingLenders(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FundingHandler) ApprovedLenders(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.uc.ApprovedLenders(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FundingHandler) ApproveLender(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.ApproveLender(c.Request().Context(), caller(c), loanID, identity); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

func (h *FundingHandler) RemoveApprovedLender(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	identity, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.RemoveApprovedLender(c.Request().Context(), caller(c), loanID, identity); err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

func (h *FundingHandler) Summary(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	return h.summary(c, loanID, http.StatusOK)
}

// summary answers a successful mutation with the loan's funding position.
func (h *FundingHandler) summary(c echo.Context, loanID uint64, code int) error {
	sum, err := h.uc.Summary(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(code, sum)
}
