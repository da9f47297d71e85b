package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/festivo/backend/internal/application/ticketsync"
)

// SyncHandler exposes the manual sync trigger
type SyncHandler struct {
	BaseHandler
	sync *ticketsync.SyncService
}

// NewSyncHandler creates the sync handler
func NewSyncHandler(sync *ticketsync.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Trigger runs the caller's tenant sync immediately
func (h *SyncHandler) Trigger(c *gin.Context) {
	tenantID, ok := h.tenantFromContext(c)
	if !ok {
		return
	}

	records, err := h.sync.SyncTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"records_synced": records})
}

// RegisterRoutes mounts the sync trigger behind the admin role check
func (h *SyncHandler) RegisterRoutes(r gin.IRouter, requireTrigger gin.HandlerFunc) {
	r.POST("/sync", requireTrigger, h.Trigger)
}
