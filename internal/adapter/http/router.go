package http

import "github.com/labstack/echo/v4"

// Handlers groups every handler Register mounts.
type Handlers struct {
	Health   *Handler
	Registry *RegistryHandler
	Loans    *LoanHandler
	Funding  *FundingHandler
	Token    *TokenHandler
	Audit    *AuditHandler
}

// Register mounts /health on e and the ledger API under /api/v1 with mw
// applied to the API group only.
func Register(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api/v1", mw...)

	api.GET("/registry", h.Registry.Get)
	api.PUT("/registry/owner", h.Registry.TransferOwnership)
	api.PUT("/registry/max-nb-payments", h.Registry.SetMaxNbPayments)
	api.GET("/whitelist/:identity", h.Registry.IsWhitelisted)
	api.PUT("/whitelist/:identity", h.Registry.AddToWhitelist)
	api.DELETE("/whitelist/:identity", h.Registry.RemoveFromWhitelist)

	api.POST("/loans", h.Loans.CreateLoan)
	api.GET("/loans/count", h.Loans.Count)
	api.GET("/loans/:loan_id", h.Loans.GetLoan)
	api.GET("/loans/:loan_id/started", h.Loans.IsStarted)
	api.POST("/loans/:loan_id/start", h.Loans.Start)
	api.GET("/borrowers/:identity/loans", h.Loans.ListByBorrower)

	api.GET("/loans/:loan_id/funding", h.Funding.Summary)
	api.POST("/loans/:loan_id/guarantor", h.Funding.AppendGuarantor)
	api.DELETE("/loans/:loan_id/guarantor", h.Funding.RemoveGuarantor)
	api.POST("/loans/:loan_id/guarantor/replace", h.Funding.ReplaceGuarantor)
	api.GET("/loans/:loan_id/guarantors/count", h.Funding.GuarantorsCount)
	api.GET("/loans/:loan_id/guarantors/:identity", h.Funding.IsGuarantorEngaged)
	api.DELETE("/loans/:loan_id/guarantors/:identity", h.Funding.ForceRemoveGuarantor)
	api.POST("/loans/:loan_id/lenders", h.Funding.AppendLender)
	api.DELETE("/loans/:loan_id/lenders", h.Funding.RemoveLender)
	api.GET("/loans/:loan_id/lenders/pending", h.Funding.PendingLenders)
	api.GET("/loans/:loan_id/lenders/approved", h.Funding.ApprovedLenders)
	api.POST("/loans/:loan_id/lenders/:identity/approval", h.Funding.ApproveLender)
	api.DELETE("/loans/:loan_id/lenders/:identity/approval", h.Funding.RemoveApprovedLender)

	api.GET("/token", h.Token.Info)
	api.POST("/token/mint", h.Token.Mint)
	api.POST("/token/burn", h.Token.Burn)
	api.GET("/balances/:identity", h.Token.BalanceOf)

	api.GET("/audit", h.Audit.List)
	api.GET("/audit/verify", h.Audit.Verify)
}
