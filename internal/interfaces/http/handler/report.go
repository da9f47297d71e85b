package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festivo/backend/internal/application/report"
	"github.com/festivo/backend/internal/domain/ledger"
)

// ReportHandler serves the read-side report endpoints
type ReportHandler struct {
	BaseHandler
	reports *report.ReportService
}

// NewReportHandler creates the report handler
func NewReportHandler(reports *report.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// saleFilterFromQuery binds the optional sales query parameters
func (h *ReportHandler) saleFilterFromQuery(c *gin.Context) (ledger.SaleFilter, bool) {
	var filter ledger.SaleFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return filter, false
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}
	if category := c.Query("category"); category != "" {
		cat := ledger.ItemCategory(category)
		if cat != ledger.CategoryTicket && cat != ledger.CategoryFB {
			h.BadRequest(c, "Invalid category, expected ticket or fb")
			return filter, false
		}
		filter.Category = &cat
	}
	if channel := c.Query("channel"); channel != "" {
		ch := ledger.SaleChannel(channel)
		if ch != ledger.ChannelWeb && ch != ledger.ChannelPOS {
			h.BadRequest(c, "Invalid channel, expected web or pos")
			return filter, false
		}
		filter.Channel = &ch
	}
	return filter, true
}

// SalesSummary returns the dashboard summary
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := h.saleFilterFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.reports.SalesSummary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// VATReport returns the VAT buckets per source collection
func (h *ReportHandler) VATReport(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	resp, err := h.reports.VATReport(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Economy returns budget versus actuals with the bottom line
func (h *ReportHandler) Economy(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	resp, err := h.reports.Economy(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SyncHistory lists recent sync runs
func (h *ReportHandler) SyncHistory(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	logs, err := h.reports.SyncHistory(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// RegisterRoutes mounts the report endpoints
func (h *ReportHandler) RegisterRoutes(r gin.IRouter) {
	reports := r.Group("/reports")
	{
		reports.GET("/sales", h.SalesSummary)
		reports.GET("/vat", h.VATReport)
		reports.GET("/economy", h.Economy)
		reports.GET("/sync-history", h.SyncHistory)
	}
}
