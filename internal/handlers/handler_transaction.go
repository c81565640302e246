package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles ledger entries that are not driven by the dues calendar.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers ledger CRUD routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.DELETE("/:entryID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a ledger entry
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Entry details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Referenced player not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.transactionService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(entry))
}

// listTransactions godoc
// @Summary List ledger entries, newest first
// @Tags transactions
// @Produce  json
// @Param   month query string false "YYYY-MM"
// @Param   kind query string false "REVENUE or EXPENSE"
// @Param   category query string false "Category"
// @Param   playerId query string false "Player ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Tags transactions
// @Param   entryID path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{entryID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), entryID, userID); err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
