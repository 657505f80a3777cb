package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService   services.AccountSvcFacade
	reportingService services.ReportingService
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as services.AccountSvcFacade, rs services.ReportingService) *accountHandler {
	return &accountHandler{
		accountService:   as,
		reportingService: rs,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, write gin.HandlersChain, accountService services.AccountSvcFacade, reportingService services.ReportingService) {
	h := newAccountHandler(accountService, reportingService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.Group("", write...).POST("", h.createAccount)
		accounts.GET("/:ref", h.getAccount)
		accounts.GET("/:ref/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a ledger account. Codes are unique.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security ApiKeyAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account by code, or by numeric ID when no code matches
// @Tags accounts
// @Produce  json
// @Param   ref path string true "Account code or ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{ref} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.ResolveAccount(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts ordered by code, optionally filtered by type
// @Tags accounts
// @Produce  json
// @Param   type query string false "Account type" Enums(Asset, Liability, Equity, Revenue, Expense)
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid type"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	var accountType *domain.AccountType
	if params.Type != "" {
		t := domain.AccountType(params.Type)
		accountType = &t
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), accountType)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Returns debits, credits and debits minus credits, optionally as of a date (inclusive)
// @Tags accounts
// @Produce  json
// @Param   ref path string true "Account code or ID"
// @Param   as_of query string false "Cut-off date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]interface{} "Invalid as_of"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Router /accounts/{ref}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	var params dto.AccountBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	var asOf *time.Time
	if params.AsOf != "" {
		t, err := time.Parse(domain.DateLayout, params.AsOf)
		if err != nil {
			respondError(c, apperrors.NewValidationError("as_of must be a date in YYYY-MM-DD format"), "")
			return
		}
		asOf = &t
	}

	balance, err := h.reportingService.GetAccountBalance(c.Request.Context(), c.Param("ref"), asOf)
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}
