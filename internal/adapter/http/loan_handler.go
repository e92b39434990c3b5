package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"friendloan-backend/internal/usecase/activation"
	"friendloan-backend/internal/usecase/loan"
)

type LoanHandler struct {
	uc     *loan.Usecase
	starts *activation.Usecase
}

func NewLoanHandler(uc *loan.Usecase, starts *activation.Usecase) *LoanHandler {
	return &LoanHandler{uc: uc, starts: starts}
}

type createLoanReq struct {
	TotalAmount     uint64 `json:"total_amount"      validate:"required"`
	MaxInterestRate uint64 `json:"max_interest_rate"`
	NbPayments      uint32 `json:"nb_payments"       validate:"required"`
	PaymentType     uint8  `json:"payment_type"      validate:"paymenttype"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), caller(c), loan.CreateLoanInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint64{"loans_count": n})
}

func (h *LoanHandler) IsStarted(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	started, err := h.uc.IsStarted(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": loanID, "started": started})
}

func (h *LoanHandler) Start(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	ctx := c.Request().Context()
	if err := h.starts.Start(ctx, caller(c), loanID); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Get(ctx, loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListByBorrower(c echo.Context) error {
	borrower, err := identityParam(c)
	if err != nil {
		return fail(c, err)
	}
	loans, err := h.uc.ListByBorrower(c.Request().Context(), borrower)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}
