package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// SpendingHandler handles spending record requests.
type SpendingHandler struct {
	spendingService services.SpendingServicer
	auditService    services.AuditServicer
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(spendingService services.SpendingServicer, auditService services.AuditServicer) *SpendingHandler {
	return &SpendingHandler{spendingService: spendingService, auditService: auditService}
}

// SpendingRequest is the payload for creating or replacing a spending record.
type SpendingRequest struct {
	Date         string           `json:"date" binding:"required,flexible_date" example:"2024-01-15"`
	Product      string           `json:"product" binding:"required,not_blank,max=255"`
	Price        *decimal.Decimal `json:"price" binding:"required" swaggertype:"number"`
	PrimaryTag   string           `json:"primaryTag" binding:"max=100"`
	SecondaryTag string           `json:"secondaryTag" binding:"max=100"`
}

func (r SpendingRequest) toInput() (services.SpendingInput, error) {
	date, err := parseFlexibleTime(r.Date)
	if err != nil {
		return services.SpendingInput{}, apperrors.WithFields(apperrors.ErrInvalidInput, "Invalid input",
			map[string]string{"date": "must be a date in YYYY-MM-DD or RFC 3339 format"})
	}
	return services.SpendingInput{
		Date:         date,
		Product:      r.Product,
		Price:        *r.Price,
		PrimaryTag:   r.PrimaryTag,
		SecondaryTag: r.SecondaryTag,
	}, nil
}

// SpendingResponse carries a single spending record.
type SpendingResponse struct {
	Message  string                `json:"message"`
	Spending models.SpendingRecord `json:"spending"`
}

// SpendingListResponse carries a list of spending records.
type SpendingListResponse struct {
	SpendingRecords []models.SpendingRecord `json:"spendingRecords"`
}

// CreateSpending handles recording a new purchase.
// @Summary     Create a spending record
// @Description Record a purchase and debit its price from the budget
// @Tags        spending
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SpendingRequest true "Spending record"
// @Success     201 {object} SpendingResponse "Spending record created"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending [post]
func (h *SpendingHandler) CreateSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SpendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.spendingService.CreateSpending(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionCreateSpending, "spending", record.ID, c.ClientIP(),
		map[string]interface{}{"product": record.Product, "price": record.Price.String()})

	c.JSON(http.StatusCreated, SpendingResponse{
		Message:  "Spending record created successfully",
		Spending: *record,
	})
}

// UpdateSpending handles replacing an existing record.
// @Summary     Update a spending record
// @Description Replace a record's fields and move the price difference through the budget
// @Tags        spending
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Spending record ID"
// @Param       request body SpendingRequest true "Spending record"
// @Success     200 {object} SpendingResponse "Spending record updated"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Spending record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending/{id} [put]
func (h *SpendingHandler) UpdateSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SpendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordID := c.Param("id")
	record, err := h.spendingService.UpdateSpending(userID, recordID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpdateSpending, "spending", record.ID, c.ClientIP(),
		map[string]interface{}{"product": record.Product, "price": record.Price.String()})

	c.JSON(http.StatusOK, SpendingResponse{
		Message:  "Spending record updated successfully",
		Spending: *record,
	})
}

// DeleteSpending handles removing a record.
// @Summary     Delete a spending record
// @Description Remove a record and credit its price back to the budget
// @Tags        spending
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Spending record ID"
// @Success     200 {object} MessageResponse "Spending record deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Spending record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending/{id} [delete]
func (h *SpendingHandler) DeleteSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordID := c.Param("id")
	if err := h.spendingService.DeleteSpending(userID, recordID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionDeleteSpending, "spending", recordID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Spending record deleted successfully"})
}

// GetSpending lists every record of the authenticated user.
// @Summary     List spending records
// @Tags        spending
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SpendingListResponse "Spending records in insertion order"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending [get]
func (h *SpendingHandler) GetSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.spendingService.GetUserSpending(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingListResponse{SpendingRecords: records})
}

// GetSpendingInRange lists records dated within an inclusive day range.
// @Summary     List spending records by date range
// @Tags        spending
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string true "First day (YYYY-MM-DD or RFC 3339)"
// @Param       endDate   query string true "Last day, inclusive (YYYY-MM-DD or RFC 3339)"
// @Success     200 {object} SpendingListResponse "Matching spending records"
// @Failure     400 {object} ErrorResponse "Invalid dates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending/range [get]
func (h *SpendingHandler) GetSpendingInRange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := map[string]string{}
	startDate, err := parseFlexibleTime(c.Query("startDate"))
	if err != nil {
		fields["startDate"] = "must be a date in YYYY-MM-DD or RFC 3339 format"
	}
	endDate, err := parseFlexibleTime(c.Query("endDate"))
	if err != nil {
		fields["endDate"] = "must be a date in YYYY-MM-DD or RFC 3339 format"
	}
	if len(fields) > 0 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrInvalidInput, "Invalid date range", fields))
		return
	}

	records, err := h.spendingService.GetSpendingInRange(userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingListResponse{SpendingRecords: records})
}

// GetSpendingByPrimaryTag lists records whose primary tag matches.
// @Summary     List spending records by primary tag
// @Tags        spending
// @Produce     json
// @Security    BearerAuth
// @Param       primaryTag query string true "Primary tag, case-insensitive"
// @Success     200 {object} SpendingListResponse "Matching spending records"
// @Failure     400 {object} ErrorResponse "Missing tag"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No matching records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending/primary-tag [get]
func (h *SpendingHandler) GetSpendingByPrimaryTag(c *gin.Context) {
	h.getByTag(c, models.TagKindPrimary, c.Query("primaryTag"))
}

// GetSpendingBySecondaryTag lists records whose secondary tag matches.
// @Summary     List spending records by secondary tag
// @Tags        spending
// @Produce     json
// @Security    BearerAuth
// @Param       secondaryTag query string true "Secondary tag, case-insensitive"
// @Success     200 {object} SpendingListResponse "Matching spending records"
// @Failure     400 {object} ErrorResponse "Missing tag"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No matching records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending/secondary-tag [get]
func (h *SpendingHandler) GetSpendingBySecondaryTag(c *gin.Context) {
	h.getByTag(c, models.TagKindSecondary, c.Query("secondaryTag"))
}

func (h *SpendingHandler) getByTag(c *gin.Context, kind models.TagKind, tag string) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.spendingService.GetSpendingByTag(userID, kind, tag)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingListResponse{SpendingRecords: records})
}
