package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/service"
)

// LeadHandler handles CRM lead endpoints.
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create handles POST /api/v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.CreatedBy = userID

	lead, err := h.leadService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, lead)
}

// List handles GET /api/v1/leads
func (h *LeadHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	status := domain.LeadStatus(c.Query("status"))

	leads, total, err := h.leadService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, leads, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/leads/:id
func (h *LeadHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid lead ID")
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lead)
}

// Update handles PUT /api/v1/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid lead ID")
		return
	}

	var input service.UpdateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lead)
}

// Delete handles DELETE /api/v1/leads/:id
func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid lead ID")
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "lead deleted"})
}

// AddFollowUp handles POST /api/v1/leads/:id/follow-ups
func (h *LeadHandler) AddFollowUp(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid lead ID")
		return
	}

	var input service.AddFollowUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.CreatedBy = userID

	followUp, err := h.leadService.AddFollowUp(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, followUp)
}

// Convert handles POST /api/v1/leads/:id/convert
// @Summary Convert a lead to a patient
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 201 {object} Response{data=domain.Patient} "Patient created"
// @Failure 409 {object} ErrorResponseBody "Lead already converted"
// @Security BearerAuth
// @Router /leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid lead ID")
		return
	}

	patient, err := h.leadService.ConvertToPatient(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, patient)
}
