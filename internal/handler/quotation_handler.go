package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/service"
)

// QuotationHandler handles quotation endpoints.
type QuotationHandler struct {
	quotationService service.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler.
func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create handles POST /api/v1/quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.CreatedBy = userID

	quotation, err := h.quotationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, quotation)
}

// List handles GET /api/v1/quotations
func (h *QuotationHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	var patientID *uuid.UUID
	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
			return
		}
		patientID = &id
	}

	quotations, total, err := h.quotationService.List(c.Request.Context(), patientID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, quotations, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotations/:id
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, quotation)
}

// Convert handles POST /api/v1/quotations/:id/convert
// @Summary Convert a quotation to an invoice
// @Description Issue a tax invoice from a live quotation; fails if the
// @Description quotation has expired or was already converted
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice issued"
// @Failure 409 {object} ErrorResponseBody "Expired or already converted"
// @Security BearerAuth
// @Router /quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	invoice, err := h.quotationService.Convert(c.Request.Context(), id, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}
