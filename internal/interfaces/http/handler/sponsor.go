package handler

import (
	"github.com/gin-gonic/gin"

	appsponsor "github.com/festivo/backend/internal/application/sponsor"
	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/sponsor"
	"github.com/festivo/backend/internal/interfaces/http/middleware"
)

// SponsorHandler serves the sponsor pipeline endpoints
type SponsorHandler struct {
	BaseHandler
	sponsors *appsponsor.SponsorService
}

// NewSponsorHandler creates the sponsor handler
func NewSponsorHandler(sponsors *appsponsor.SponsorService) *SponsorHandler {
	return &SponsorHandler{sponsors: sponsors}
}

// List returns the tenant's sponsors. The sponsor role only sees its own
// record, matched by contact email.
func (h *SponsorHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)

	if claims.GetRole() == identity.RoleSponsor {
		own, err := h.sponsors.GetOwn(c.Request.Context(), tenantID, claims.Email)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, []sponsor.Sponsor{*own})
		return
	}

	list, err := h.sponsors.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Get returns one sponsor
func (h *SponsorHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	sp, err := h.sponsors.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// the sponsor role may only read its own record
	claims := middleware.GetClaims(c)
	if claims.GetRole() == identity.RoleSponsor && !equalFold(sp.ContactEmail, claims.Email) {
		h.Forbidden(c, "Sponsors may only access their own record")
		return
	}
	h.Success(c, sp)
}

// Create adds a sponsor
func (h *SponsorHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	var input appsponsor.CreateSponsorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sp, err := h.sponsors.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sp)
}

// Update applies partial changes to a sponsor
func (h *SponsorHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var input appsponsor.UpdateSponsorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sp, err := h.sponsors.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sp)
}

type advanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// Advance moves a sponsor forward in the pipeline
func (h *SponsorHandler) Advance(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sp, err := h.sponsors.Advance(c.Request.Context(), tenantID, id, sponsor.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sp)
}

type addDeliverableRequest struct {
	Description string `json:"description" binding:"required"`
}

// AddDeliverable appends one promise to a sponsor
func (h *SponsorHandler) AddDeliverable(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req addDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sp, err := h.sponsors.AddDeliverable(c.Request.Context(), tenantID, id, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sp)
}

// MarkDelivered flags one deliverable as done
func (h *SponsorHandler) MarkDelivered(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	deliverableID, err := parseUUIDParam(c, "deliverable_id")
	if err != nil {
		h.BadRequest(c, "Invalid deliverable_id parameter")
		return
	}

	sp, err := h.sponsors.MarkDelivered(c.Request.Context(), tenantID, id, deliverableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sp)
}

// Delete removes a sponsor and its deliverables
func (h *SponsorHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.sponsors.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes mounts the sponsor endpoints. Write routes carry the
// sponsor manager role check.
func (h *SponsorHandler) RegisterRoutes(r gin.IRouter, requireManager gin.HandlerFunc) {
	sponsors := r.Group("/sponsors")
	{
		sponsors.GET("", h.List)
		sponsors.GET("/:id", h.Get)
		sponsors.POST("", requireManager, h.Create)
		sponsors.PUT("/:id", requireManager, h.Update)
		sponsors.POST("/:id/advance", requireManager, h.Advance)
		sponsors.POST("/:id/deliverables", requireManager, h.AddDeliverable)
		sponsors.POST("/:id/deliverables/:deliverable_id/delivered", requireManager, h.MarkDelivered)
		sponsors.DELETE("/:id", requireManager, h.Delete)
	}
}
