package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yangsb/account-ledger/internal/apperrors"
	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/dto"
	"github.com/yangsb/account-ledger/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvc
}

func newAccountHandler(as portssvc.AccountSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers all account-related routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvc) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/account")
	{
		accounts.POST("", h.createAccount)
		accounts.DELETE("", h.deleteAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.UserID, req.InitialBalance)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account registered",
		slog.String("user_id", account.OwnerUserID),
		slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToCreateAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.DeleteAccount(c.Request.Context(), req.UserID, req.AccountNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account unregistered",
		slog.String("user_id", account.OwnerUserID),
		slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusOK, dto.ToDeleteAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		respondBindError(c, apperrors.ErrInvalidRequest)
		return
	}

	accounts, err := h.accountService.ListActiveAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountInfos(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
