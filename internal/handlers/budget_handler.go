package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"spendwise/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// UpdateBudgetRequest replaces the budget. The value may be a JSON number
// or a numeric string.
type UpdateBudgetRequest struct {
	CurrentBudget json.RawMessage `json:"currentBudget" binding:"required" swaggertype:"number"`
}

// BudgetResponse carries the user's current budget.
type BudgetResponse struct {
	Message       string          `json:"message,omitempty"`
	CurrentBudget decimal.Decimal `json:"currentBudget" swaggertype:"number"`
}

// JoinDateResponse carries the user's registration time.
type JoinDateResponse struct {
	JoinDate time.Time `json:"joinDate"`
}

// UpdateBudget handles replacing the authenticated user's budget.
// @Summary     Set budget
// @Description Replace the current budget with an absolute non-negative value
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateBudgetRequest true "New budget"
// @Success     200 {object} BudgetResponse "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/budget [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	raw := strings.Trim(strings.TrimSpace(string(req.CurrentBudget)), `"`)
	budget, err := h.budgetService.UpdateBudget(userID, raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpdateBudget, "user", userID, c.ClientIP(),
		map[string]interface{}{"currentBudget": budget.String()})

	c.JSON(http.StatusOK, BudgetResponse{
		Message:       "Budget updated successfully",
		CurrentBudget: budget,
	})
}

// GetCurrentBudget returns the authenticated user's budget.
// @Summary     Get current budget
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BudgetResponse "Current budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/budget/current [get]
func (h *BudgetHandler) GetCurrentBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetCurrentBudget(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{CurrentBudget: budget})
}

// GetJoinDate returns when the authenticated user registered.
// @Summary     Get join date
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} JoinDateResponse "Join date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/joinDate [get]
func (h *BudgetHandler) GetJoinDate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	joinDate, err := h.budgetService.GetJoinDate(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, JoinDateResponse{JoinDate: joinDate})
}
