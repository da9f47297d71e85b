package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/festivo/backend/internal/domain/ticketing"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
)

// GormSyncLogRepository implements SyncLogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Append records one sync run
func (r *GormSyncLogRepository) Append(ctx context.Context, log *ticketing.SyncLog) error {
	var row models.SyncLogModel
	row.FromDomain(log)
	return r.db.WithContext(ctx).Create(&row).Error
}

// LastSuccessfulAt returns the start time of the most recent successful run,
// or the epoch watermark when the tenant has never synced successfully.
func (r *GormSyncLogRepository) LastSuccessfulAt(ctx context.Context, tenantID uuid.UUID) (time.Time, error) {
	var row models.SyncLogModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, string(ticketing.SyncSuccess)).
		Order("synced_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticketing.WatermarkEpoch, nil
		}
		return time.Time{}, err
	}
	return row.SyncedAt, nil
}

// FindRecentForTenant returns the most recent sync runs, newest first
func (r *GormSyncLogRepository) FindRecentForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]ticketing.SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.SyncLogModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("synced_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]ticketing.SyncLog, len(rows))
	for i := range rows {
		logs[i] = rows[i].ToDomain()
	}
	return logs, nil
}
