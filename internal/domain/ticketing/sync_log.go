package ticketing

import (
	"context"
	"time"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SyncStatus is the outcome of one sync run
type SyncStatus string

const (
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// WatermarkEpoch is the since-cursor used when a tenant has never had a
// successful sync.
var WatermarkEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// SyncLog records one provider sync run for a tenant. Failed runs keep the
// error message; only successful runs advance the incremental watermark.
type SyncLog struct {
	shared.BaseEntity
	TenantID      uuid.UUID  `json:"tenant_id"`
	SyncedAt      time.Time  `json:"synced_at"`
	RecordsSynced int        `json:"records_synced"`
	Status        SyncStatus `json:"status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
}

// NewSyncLog records the outcome of a run that started at startedAt
func NewSyncLog(tenantID uuid.UUID, startedAt time.Time, records int, status SyncStatus, errMsg string) *SyncLog {
	return &SyncLog{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		SyncedAt:      startedAt,
		RecordsSynced: records,
		Status:        status,
		ErrorMessage:  errMsg,
	}
}

// SyncLogRepository defines persistence operations for sync run records
type SyncLogRepository interface {
	Append(ctx context.Context, log *SyncLog) error
	// LastSuccessfulAt returns the SyncedAt of the most recent successful
	// run, or WatermarkEpoch when the tenant has never synced.
	LastSuccessfulAt(ctx context.Context, tenantID uuid.UUID) (time.Time, error)
	FindRecentForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]SyncLog, error)
}
