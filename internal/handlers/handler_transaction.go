package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/dto"
	"github.com/yangsb/account-ledger/internal/middleware"
)

// transactionHandler handles HTTP requests for balance movement.
type transactionHandler struct {
	transactionService portssvc.TransactionSvc
}

func newTransactionHandler(ts portssvc.TransactionSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers all transaction-related routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvc) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transaction")
	{
		transactions.POST("/use", h.useBalance)
		transactions.POST("/cancel", h.cancelBalance)
		transactions.GET("/:transactionId", h.getTransaction)
	}
}

func (h *transactionHandler) useBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UseBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.UseBalance(c.Request.Context(), req.UserID, req.AccountNumber, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Balance used",
		slog.String("account_number", txn.AccountNumber),
		slog.String("transaction_id", txn.TransactionID),
		slog.Int64("amount", txn.Amount))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) cancelBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CancelBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.CancelBalance(c.Request.Context(), req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Balance use canceled",
		slog.String("account_number", txn.AccountNumber),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("canceled_transaction_id", req.TransactionID),
		slog.Int64("amount", txn.Amount))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID := c.Param("transactionId")

	txn, err := h.transactionService.QueryTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQueryTransactionResponse(txn))
}
