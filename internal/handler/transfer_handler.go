package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/service"
)

// TransferHandler handles device transfer endpoints.
type TransferHandler struct {
	logisticsService service.LogisticsService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(logisticsService service.LogisticsService) *TransferHandler {
	return &TransferHandler{logisticsService: logisticsService}
}

// Dispatch handles POST /api/v1/transfers
func (h *TransferHandler) Dispatch(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.DispatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.CreatedBy = userID

	transfer, err := h.logisticsService.Dispatch(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, transfer)
}

// List handles GET /api/v1/transfers
func (h *TransferHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	status := domain.TransferStatus(c.Query("status"))

	transfers, total, err := h.logisticsService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, transfers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/transfers/:id
func (h *TransferHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid transfer ID")
		return
	}

	transfer, err := h.logisticsService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, transfer)
}

// Receive handles POST /api/v1/transfers/:id/receive
func (h *TransferHandler) Receive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid transfer ID")
		return
	}

	transfer, err := h.logisticsService.Receive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, transfer)
}

// Cancel handles POST /api/v1/transfers/:id/cancel
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid transfer ID")
		return
	}

	transfer, err := h.logisticsService.Cancel(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, transfer)
}
