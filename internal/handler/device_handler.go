package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/service"
)

// DeviceHandler handles device inventory endpoints.
type DeviceHandler struct {
	inventoryService service.InventoryService
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(inventoryService service.InventoryService) *DeviceHandler {
	return &DeviceHandler{inventoryService: inventoryService}
}

// Create handles POST /api/v1/devices
// @Summary Register a device
// @Description Add a serialized hearing-aid unit to inventory
// @Tags devices
// @Accept json
// @Produce json
// @Param request body service.CreateDeviceInput true "Device details"
// @Success 201 {object} Response{data=domain.Device} "Device created"
// @Failure 409 {object} ErrorResponseBody "Serial number already exists"
// @Security BearerAuth
// @Router /devices [post]
func (h *DeviceHandler) Create(c *gin.Context) {
	var input service.CreateDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	device, err := h.inventoryService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, device)
}

// List handles GET /api/v1/devices
func (h *DeviceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	status := domain.DeviceStatus(c.Query("status"))
	location := c.Query("location")

	devices, total, err := h.inventoryService.List(c.Request.Context(), status, location, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, devices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/devices/:id
func (h *DeviceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid device ID")
		return
	}

	device, err := h.inventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, device)
}

// GetBySerial handles GET /api/v1/devices/serial/:serial
func (h *DeviceHandler) GetBySerial(c *gin.Context) {
	device, err := h.inventoryService.GetBySerial(c.Request.Context(), c.Param("serial"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, device)
}

// Update handles PUT /api/v1/devices/:id
func (h *DeviceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid device ID")
		return
	}

	var input service.UpdateDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	device, err := h.inventoryService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, device)
}

// Delete handles DELETE /api/v1/devices/:id
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid device ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "device deleted"})
}

// Summary handles GET /api/v1/devices/summary
func (h *DeviceHandler) Summary(c *gin.Context) {
	summary, err := h.inventoryService.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
