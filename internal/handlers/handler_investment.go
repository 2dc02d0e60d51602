package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// investmentHandler handles HTTP requests related to investments, SIP
// installments and withdrawals.
type investmentHandler struct {
	investmentService portssvc.InvestmentSvcFacade
	withdrawalService portssvc.WithdrawalSvcFacade
}

// newInvestmentHandler creates a new investmentHandler.
func newInvestmentHandler(is portssvc.InvestmentSvcFacade, ws portssvc.WithdrawalSvcFacade) *investmentHandler {
	return &investmentHandler{
		investmentService: is,
		withdrawalService: ws,
	}
}

// registerInvestmentRoutes registers routes related to investments.
func registerInvestmentRoutes(rg *gin.RouterGroup, investmentService portssvc.InvestmentSvcFacade, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := newInvestmentHandler(investmentService, withdrawalService)

	investments := rg.Group("/investments")
	{
		investments.POST("", h.createInvestment)
		investments.GET("/:id", h.getInvestment)
		investments.GET("", h.listInvestments)
		investments.PUT("/:id", h.updateInvestment)
		investments.DELETE("/:id", h.deleteInvestment)

		investments.POST("/:id/installments", h.processSIPInstallment)
		investments.GET("/:id/sip-transactions", h.listSIPTransactions)
		investments.POST("/:id/withdraw", h.withdrawInvestment)
	}
}

// createInvestment godoc
// @Summary Create an investment
// @Description Creates a one-time, existing or SIP investment. Existing holdings leave every balance untouched; funded ones debit the source account atomically with their ledger entry
// @Tags investments
// @Accept  json
// @Produce  json
// @Param   investment body dto.CreateInvestmentRequest true "Investment details"
// @Success 201 {object} dto.InvestmentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create investment"
// @Security BearerAuth
// @Router /investments [post]
func (h *investmentHandler) createInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvestment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	investment, err := h.investmentService.CreateInvestment(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create investment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvestmentResponse(investment))
}

// getInvestment godoc
// @Summary Get an investment by ID
// @Tags investments
// @Produce  json
// @Param   id path string true "Investment ID"
// @Success 200 {object} dto.InvestmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Investment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve investment"
// @Security BearerAuth
// @Router /investments/{id} [get]
func (h *investmentHandler) getInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(c.Request.Context(), userID, investmentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve investment")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvestmentResponse(investment))
}

// listInvestments godoc
// @Summary List investments
// @Tags investments
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.InvestmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list investments"
// @Security BearerAuth
// @Router /investments [get]
func (h *investmentHandler) listInvestments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter"})
		return
	}

	investments, err := h.investmentService.ListInvestments(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list investments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvestmentResponse(investments))
}

// updateInvestment godoc
// @Summary Update an investment
// @Description Edits an active investment. An amount change on a funded one-time investment reverts the original debit and applies the new one atomically
// @Tags investments
// @Accept  json
// @Produce  json
// @Param   id path string true "Investment ID"
// @Param   investment body dto.UpdateInvestmentRequest true "Fields to update"
// @Success 200 {object} dto.InvestmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Investment not found"
// @Failure 409 {object} map[string]string "Investment is not active"
// @Failure 500 {object} map[string]string "Failed to update investment"
// @Security BearerAuth
// @Router /investments/{id} [put]
func (h *investmentHandler) updateInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("id")

	var req dto.UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvestment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	investment, err := h.investmentService.UpdateInvestment(c.Request.Context(), userID, investmentID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update investment")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvestmentResponse(investment))
}

// deleteInvestment godoc
// @Summary Delete an investment
// @Description Soft deletes an investment, crediting back its unwithdrawn remainder and retiring its ledger entries
// @Tags investments
// @Produce  json
// @Param   id path string true "Investment ID"
// @Success 204 "Investment deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Investment not found"
// @Failure 500 {object} map[string]string "Failed to delete investment"
// @Security BearerAuth
// @Router /investments/{id} [delete]
func (h *investmentHandler) deleteInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.investmentService.DeleteInvestment(c.Request.Context(), userID, investmentID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete investment")
		return
	}

	c.Status(http.StatusNoContent)
}

// processSIPInstallment godoc
// @Summary Run a SIP installment
// @Description Applies one installment for the given date: records the SIP transaction, debits the linked account and grows the invested amount atomically. No-ops when the plan's cap is reached or the date is past its end
// @Tags investments
// @Accept  json
// @Produce  json
// @Param   id path string true "Investment ID"
// @Param   installment body dto.ProcessSIPInstallmentRequest true "Installment date"
// @Success 200 {object} dto.SIPInstallmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Investment not found"
// @Failure 409 {object} map[string]string "Installment already recorded for this date"
// @Failure 500 {object} map[string]string "Failed to process installment"
// @Security BearerAuth
// @Router /investments/{id}/installments [post]
func (h *investmentHandler) processSIPInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("id")

	var req dto.ProcessSIPInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessSIPInstallment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	investment, sipTxn, err := h.investmentService.ProcessSIPInstallment(c.Request.Context(), userID, investmentID, req.TransactionDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to process installment")
		return
	}

	resp := dto.SIPInstallmentResponse{Investment: dto.ToInvestmentResponse(investment)}
	if sipTxn != nil {
		txnResp := dto.ToSIPTransactionResponse(sipTxn)
		resp.SIPTransaction = &txnResp
	}

	c.JSON(http.StatusOK, resp)
}

// listSIPTransactions godoc
// @Summary List an investment's SIP transactions
// @Tags investments
// @Produce  json
// @Param   id path string true "Investment ID"
// @Success 200 {array} dto.SIPTransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Investment not found"
// @Failure 500 {object} map[string]string "Failed to list SIP transactions"
// @Security BearerAuth
// @Router /investments/{id}/sip-transactions [get]
func (h *investmentHandler) listSIPTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.investmentService.ListSIPTransactions(c.Request.Context(), userID, investmentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list SIP transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToSIPTransactionResponses(txns))
}

// withdrawInvestment godoc
// @Summary Withdraw from an investment
// @Description Converts part or all of an investment into an income on the target account. An over-request is clamped to what remains; status flips to WITHDRAWN only when fully exhausted
// @Tags investments
// @Accept  json
// @Produce  json
// @Param   id path string true "Investment ID"
// @Param   withdrawal body dto.WithdrawInvestmentRequest true "Withdrawal details"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Investment or account not found"
// @Failure 409 {object} map[string]string "Nothing left to withdraw"
// @Failure 500 {object} map[string]string "Failed to withdraw investment"
// @Security BearerAuth
// @Router /investments/{id}/withdraw [post]
func (h *investmentHandler) withdrawInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("id")

	var req dto.WithdrawInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for WithdrawInvestment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	income, investment, err := h.withdrawalService.WithdrawInvestment(c.Request.Context(), userID, investmentID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to withdraw investment")
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawalResponse{
		Income:     dto.ToIncomeResponse(income),
		Investment: dto.ToInvestmentResponse(investment),
	})
}
