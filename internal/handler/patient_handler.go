package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/service"
)

// PatientHandler handles patient record endpoints.
type PatientHandler struct {
	patientService service.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create handles POST /api/v1/patients
// @Summary Create a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param request body service.CreatePatientInput true "Patient details"
// @Success 201 {object} Response{data=domain.Patient} "Patient created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /patients [post]
func (h *PatientHandler) Create(c *gin.Context) {
	var input service.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, patient)
}

// List handles GET /api/v1/patients
// @Summary List patients
// @Description List patients, optionally filtered by a name/phone search term
// @Tags patients
// @Produce json
// @Param search query string false "Search by name or phone"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Patient,meta=PagMeta} "List of patients"
// @Security BearerAuth
// @Router /patients [get]
func (h *PatientHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	search := c.Query("search")

	patients, total, err := h.patientService.List(c.Request.Context(), search, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, patients, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/patients/:id
func (h *PatientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, patient)
}

// Update handles PUT /api/v1/patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	var input service.UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, patient)
}

// Delete handles DELETE /api/v1/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "patient deleted"})
}
