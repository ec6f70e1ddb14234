package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/service"
)

// AttachmentHandler handles patient file endpoints.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload handles POST /api/v1/patients/:id/attachments
// @Summary Upload a patient file
// @Description Upload an audiogram, prescription or ID proof (pdf, jpg, png)
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Patient ID (UUID)"
// @Param file formData file true "File to upload"
// @Success 201 {object} Response{data=domain.Attachment} "File uploaded"
// @Failure 400 {object} ErrorResponseBody "Unsupported file type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /patients/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer file.Close()

	att, err := h.attachmentService.Upload(c.Request.Context(), service.AttachmentUploadInput{
		PatientID:  patientID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// ListByPatient handles GET /api/v1/patients/:id/attachments
func (h *AttachmentHandler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	offset, limit := parsePagination(c)
	attachments, total, err := h.attachmentService.ListByPatient(c.Request.Context(), patientID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, attachments, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Download handles GET /api/v1/attachments/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid attachment ID")
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// Delete handles DELETE /api/v1/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid attachment ID")
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}
