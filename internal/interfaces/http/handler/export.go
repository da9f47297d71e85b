package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/festivo/backend/internal/application/export"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/shared"
)

// ExportHandler serves CSV and PDF downloads
type ExportHandler struct {
	BaseHandler
	exports *export.ExportService
}

// NewExportHandler creates the export handler
func NewExportHandler(exports *export.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type exportFunc func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error)

// serve runs the generator and streams the artifact as an attachment
func (h *ExportHandler) serve(c *gin.Context, generate exportFunc) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	artifact, err := generate(c, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// SalesCSV downloads the raw sales ledger
func (h *ExportHandler) SalesCSV(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		filter, err := saleFilterFromDates(c.Query("from"), c.Query("to"))
		if err != nil {
			return nil, err
		}
		return h.exports.SalesCSV(c.Request.Context(), tenantID, filter)
	})
}

// AccountingCSV downloads ticket revenue per item
func (h *ExportHandler) AccountingCSV(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		return h.exports.AccountingCSV(c.Request.Context(), tenantID)
	})
}

// VATCSV downloads the VAT summary
func (h *ExportHandler) VATCSV(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		return h.exports.VATCSV(c.Request.Context(), tenantID)
	})
}

// EconomyCSV downloads budget versus actuals
func (h *ExportHandler) EconomyCSV(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		return h.exports.EconomyCSV(c.Request.Context(), tenantID)
	})
}

// FullSummaryCSV downloads the full economy with the result line
func (h *ExportHandler) FullSummaryCSV(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		return h.exports.FullSummaryCSV(c.Request.Context(), tenantID)
	})
}

// SponsorPDF downloads the sponsor pipeline report
func (h *ExportHandler) SponsorPDF(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		return h.exports.SponsorPDF(c.Request.Context(), tenantID)
	})
}

// AnnualPDF downloads the year-end report
func (h *ExportHandler) AnnualPDF(c *gin.Context) {
	h.serve(c, func(c *gin.Context, tenantID uuid.UUID) (*export.Artifact, error) {
		return h.exports.AnnualPDF(c.Request.Context(), tenantID)
	})
}

// saleFilterFromDates parses optional from/to date bounds
func saleFilterFromDates(from, to string) (ledger.SaleFilter, error) {
	var filter ledger.SaleFilter
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "invalid to date, expected YYYY-MM-DD")
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}
	return filter, nil
}

// RegisterRoutes mounts the export endpoints
func (h *ExportHandler) RegisterRoutes(r gin.IRouter) {
	exports := r.Group("/exports")
	{
		exports.GET("/sales.csv", h.SalesCSV)
		exports.GET("/accounting.csv", h.AccountingCSV)
		exports.GET("/vat.csv", h.VATCSV)
		exports.GET("/economy.csv", h.EconomyCSV)
		exports.GET("/full-summary.csv", h.FullSummaryCSV)
		exports.GET("/sponsors.pdf", h.SponsorPDF)
		exports.GET("/annual.pdf", h.AnnualPDF)
	}
}
