package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// incomeHandler handles HTTP requests related to incomes.
type incomeHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newIncomeHandler creates a new incomeHandler.
func newIncomeHandler(ts portssvc.TransactionSvcFacade) *incomeHandler {
	return &incomeHandler{
		transactionService: ts,
	}
}

// registerIncomeRoutes registers routes related to incomes.
func registerIncomeRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newIncomeHandler(transactionService)

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("/:id", h.getIncome)
		incomes.GET("", h.listIncomes)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
	}
}

// createIncome godoc
// @Summary Record an income
// @Description Records an income, crediting the owning account (available credit for credit cards) atomically with its ledger entry
// @Tags incomes
// @Accept  json
// @Produce  json
// @Param   income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record income"
// @Security BearerAuth
// @Router /incomes [post]
func (h *incomeHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	income, err := h.transactionService.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record income")
		return
	}

	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// getIncome godoc
// @Summary Get an income by ID
// @Tags incomes
// @Produce  json
// @Param   id path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 500 {object} map[string]string "Failed to retrieve income"
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	income, err := h.transactionService.GetIncomeByID(c.Request.Context(), userID, incomeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve income")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List incomes
// @Description Lists the user's incomes with token-based pagination, newest first
// @Tags incomes
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Opaque pagination token from a previous page"
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list incomes"
// @Security BearerAuth
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListIncomes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListIncomes(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list incomes")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateIncome godoc
// @Summary Update an income
// @Description Edits an income; the original balance effect is reverted and the new one applied atomically
// @Tags incomes
// @Accept  json
// @Produce  json
// @Param   id path string true "Income ID"
// @Param   income body dto.UpdateIncomeRequest true "Fields to update"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 500 {object} map[string]string "Failed to update income"
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("id")

	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	income, err := h.transactionService.UpdateIncome(c.Request.Context(), userID, incomeID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update income")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete an income
// @Description Soft deletes an income, reverting its balance effect and retiring its ledger entries
// @Tags incomes
// @Produce  json
// @Param   id path string true "Income ID"
// @Success 204 "Income deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 500 {object} map[string]string "Failed to delete income"
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transactionService.DeleteIncome(c.Request.Context(), userID, incomeID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete income")
		return
	}

	c.Status(http.StatusNoContent)
}
