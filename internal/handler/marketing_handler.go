package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hearbill/internal/service"
)

// MarketingHandler handles AI-assisted marketing endpoints.
type MarketingHandler struct {
	marketingService service.MarketingService
}

// NewMarketingHandler creates a new MarketingHandler.
func NewMarketingHandler(marketingService service.MarketingService) *MarketingHandler {
	return &MarketingHandler{marketingService: marketingService}
}

// PromoCopy handles POST /api/v1/marketing/promo-copy
// @Summary Generate promotional copy for a product
// @Tags marketing
// @Accept json
// @Produce json
// @Param input body service.PromoCopyInput true "Product and audience details"
// @Success 200 {object} Response{data=CopyResponse} "Generated copy"
// @Failure 503 {object} ErrorResponseBody "Copywriter not configured"
// @Security BearerAuth
// @Router /marketing/promo-copy [post]
func (h *MarketingHandler) PromoCopy(c *gin.Context) {
	var input service.PromoCopyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	text, err := h.marketingService.PromoCopy(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CopyResponse{Text: text})
}

// StockTrends handles GET /api/v1/marketing/stock-trends
func (h *MarketingHandler) StockTrends(c *gin.Context) {
	text, err := h.marketingService.StockTrendSummary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CopyResponse{Text: text})
}
