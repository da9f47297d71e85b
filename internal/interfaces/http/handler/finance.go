package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appfinance "github.com/festivo/backend/internal/application/finance"
	"github.com/festivo/backend/internal/domain/finance"
)

// FinanceHandler serves CRUD over budget and actual entries
type FinanceHandler struct {
	BaseHandler
	entries *appfinance.EntryService
}

// NewFinanceHandler creates the finance handler
func NewFinanceHandler(entries *appfinance.EntryService) *FinanceHandler {
	return &FinanceHandler{entries: entries}
}

// Create adds a new entry
func (h *FinanceHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	var input appfinance.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// List returns entries matching the optional filters
func (h *FinanceHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	var filter finance.EntryFilter
	if kind := c.Query("kind"); kind != "" {
		k := finance.EntryKind(kind)
		if !k.IsValid() {
			h.BadRequest(c, "Invalid kind, expected income or expense")
			return
		}
		filter.Kind = &k
	}
	filter.Category = c.Query("category")
	if raw := c.Query("is_budget"); raw != "" {
		isBudget := raw == "true"
		filter.IsBudget = &isBudget
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}

	entries, err := h.entries.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Get returns one entry
func (h *FinanceHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.entries.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Update applies partial changes to an entry
func (h *FinanceHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var input appfinance.UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entries.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Delete removes an entry
func (h *FinanceHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.entries.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes mounts the finance endpoints. The write routes carry the
// finance editor role check; reads are open to every authenticated role.
func (h *FinanceHandler) RegisterRoutes(r gin.IRouter, requireEditor gin.HandlerFunc) {
	entries := r.Group("/finance/entries")
	{
		entries.GET("", h.List)
		entries.GET("/:id", h.Get)
		entries.POST("", requireEditor, h.Create)
		entries.PUT("/:id", requireEditor, h.Update)
		entries.DELETE("/:id", requireEditor, h.Delete)
	}
}
