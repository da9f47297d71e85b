package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
)

// GormTicketSaleRepository implements TicketSaleRepository using GORM
type GormTicketSaleRepository struct {
	db *gorm.DB
}

// NewGormTicketSaleRepository creates a new GormTicketSaleRepository
func NewGormTicketSaleRepository(db *gorm.DB) *GormTicketSaleRepository {
	return &GormTicketSaleRepository{db: db}
}

// FindAllForTenant returns ledger rows for a tenant matching the filter,
// ordered by sale time
func (r *GormTicketSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.SaleFilter) ([]ledger.TicketSale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TicketSaleModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.From != nil {
		query = query.Where("sold_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sold_at < ?", *filter.To)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Channel != nil {
		query = query.Where("channel = ?", string(*filter.Channel))
	}

	var rows []models.TicketSaleModel
	if err := query.Order("sold_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]ledger.TicketSale, len(rows))
	for i := range rows {
		sales[i] = rows[i].ToDomain()
	}
	return sales, nil
}

// CountForTenant returns the number of ledger rows for a tenant
func (r *GormTicketSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TicketSaleModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertBatch merges sale lines keyed on (tenant_id, external_id).
// Conflicting rows are overwritten field by field, so re-importing the same
// provider page is a no-op apart from the synced_at timestamp.
func (r *GormTicketSaleRepository) UpsertBatch(ctx context.Context, sales []ledger.TicketSale) error {
	if len(sales) == 0 {
		return nil
	}

	rows := make([]models.TicketSaleModel, len(sales))
	now := time.Now()
	for i := range sales {
		rows[i].FromDomain(&sales[i])
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = now
		}
		rows[i].UpdatedAt = now
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"item_name", "category", "quantity",
				"price_ex_vat", "vat_rate", "vat_amount", "price_inc_vat",
				"channel", "sold_at", "synced_at", "updated_at",
			}),
		}).
		Create(&rows).Error
}
