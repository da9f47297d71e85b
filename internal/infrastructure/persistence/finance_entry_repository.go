package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/festivo/backend/internal/domain/finance"
	"github.com/festivo/backend/internal/domain/shared"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
)

// GormFinanceEntryRepository implements EntryRepository using GORM
type GormFinanceEntryRepository struct {
	db *gorm.DB
}

// NewGormFinanceEntryRepository creates a new GormFinanceEntryRepository
func NewGormFinanceEntryRepository(db *gorm.DB) *GormFinanceEntryRepository {
	return &GormFinanceEntryRepository{db: db}
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormFinanceEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Entry, error) {
	var row models.FinanceEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	entry := row.ToDomain()
	return &entry, nil
}

// FindAllForTenant returns entries for a tenant matching the filter
func (r *GormFinanceEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.EntryFilter) ([]finance.Entry, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FinanceEntryModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsBudget != nil {
		query = query.Where("is_budget = ?", *filter.IsBudget)
	}
	if filter.From != nil {
		query = query.Where("occurred_on >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_on < ?", *filter.To)
	}

	var rows []models.FinanceEntryModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates an entry
func (r *GormFinanceEntryRepository) Save(ctx context.Context, entry *finance.Entry) error {
	var row models.FinanceEntryModel
	row.FromDomain(entry)
	return r.db.WithContext(ctx).Save(&row).Error
}

// DeleteForTenant removes an entry within a tenant
func (r *GormFinanceEntryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.FinanceEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
