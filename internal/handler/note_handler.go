package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/service"
)

// NoteHandler handles credit/debit note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// Create handles POST /api/v1/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.CreatedBy = userID

	note, err := h.noteService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, note)
}

// List handles GET /api/v1/notes
func (h *NoteHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	noteType := domain.NoteType(c.Query("type"))

	notes, total, err := h.noteService.List(c.Request.Context(), noteType, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, notes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/notes/:id
func (h *NoteHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid note ID")
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, note)
}

// ListByInvoice handles GET /api/v1/invoices/:id/notes
func (h *NoteHandler) ListByInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	notes, err := h.noteService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, notes)
}
