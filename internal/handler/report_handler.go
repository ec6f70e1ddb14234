package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hearbill/internal/csvexport"
	"hearbill/internal/service"
)

// ReportHandler handles financial report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseWindow reads the from/to query params, defaulting to the current
// month.
func parseWindow(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now().UTC()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = now

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "from must be YYYY-MM-DD")
			return from, to, false
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "to must be YYYY-MM-DD")
			return from, to, false
		}
		// Inclusive end of day.
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}

// SalesRegisterCSV handles GET /api/v1/reports/sales-register.csv
// @Summary Export the GST sales register as CSV
// @Tags reports
// @Produce text/csv
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /reports/sales-register.csv [get]
func (h *ReportHandler) SalesRegisterCSV(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	filename := csvexport.BuildFilename("sales_register")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.SalesRegisterCSV(c.Request.Context(), from, to, c.Writer); err != nil {
		HandleError(c, err)
		return
	}
}

// SalesRegisterExcel handles GET /api/v1/reports/sales-register.xlsx
func (h *ReportHandler) SalesRegisterExcel(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	f, err := h.reportService.SalesWorkbook(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("sales_register_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		HandleError(c, err)
		return
	}
}

// MonthlySummary handles GET /api/v1/reports/monthly-summary
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	summary, err := h.reportService.MonthlySummary(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
