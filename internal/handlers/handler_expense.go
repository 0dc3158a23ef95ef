package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for the expense ledger of an application.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes nests the expense routes under a specific application.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	items := rg.Group("/expense-items")
	{
		items.POST("", h.addItem)
		items.GET("", h.listItems)
		items.POST("/:expense_id/approve", h.approveItem)
	}
	rg.GET("/totals", h.totals)
}

func (h *expenseHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.CreateExpenseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	item, err := h.expenseService.AddItem(c.Request.Context(), applicationID, req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Expense item added",
		slog.String("application_id", applicationID),
		slog.String("expense_id", item.ExpenseID))
	c.JSON(http.StatusCreated, item)
}

func (h *expenseHandler) listItems(c *gin.Context) {
	applicationID := c.Param("application_id")

	items, err := h.expenseService.ListItems(c.Request.Context(), applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *expenseHandler) totals(c *gin.Context) {
	applicationID := c.Param("application_id")

	totals, err := h.expenseService.Totals(c.Request.Context(), applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *expenseHandler) approveItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expense_id")

	var req dto.ApproveExpenseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	item, err := h.expenseService.ApproveItem(c.Request.Context(), expenseID, req.Amount, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Expense item approved",
		slog.String("expense_id", expenseID),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, item)
}
