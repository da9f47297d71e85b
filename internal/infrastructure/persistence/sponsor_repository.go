package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/festivo/backend/internal/domain/sponsor"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
)

// GormSponsorRepository implements SponsorRepository using GORM
type GormSponsorRepository struct {
	db *gorm.DB
}

// NewGormSponsorRepository creates a new GormSponsorRepository
func NewGormSponsorRepository(db *gorm.DB) *GormSponsorRepository {
	return &GormSponsorRepository{db: db}
}

// FindByIDForTenant finds a sponsor with its deliverables within a tenant
func (r *GormSponsorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sponsor.Sponsor, error) {
	var row models.SponsorModel
	if err := r.db.WithContext(ctx).
		Preload("Deliverables").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindAllForTenant returns all sponsors for a tenant ordered by name
func (r *GormSponsorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]sponsor.Sponsor, error) {
	var rows []models.SponsorModel
	if err := r.db.WithContext(ctx).
		Preload("Deliverables").
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sponsors := make([]sponsor.Sponsor, len(rows))
	for i := range rows {
		sponsors[i] = *rows[i].ToDomain()
	}
	return sponsors, nil
}

// FindByContactEmail finds a sponsor by contact email, case-insensitively
func (r *GormSponsorRepository) FindByContactEmail(ctx context.Context, tenantID uuid.UUID, email string) (*sponsor.Sponsor, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var row models.SponsorModel
	if err := r.db.WithContext(ctx).
		Preload("Deliverables").
		Where("tenant_id = ? AND LOWER(contact_email) = ?", tenantID, strings.ToLower(email)).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Save creates or updates a sponsor and replaces its deliverables
func (r *GormSponsorRepository) Save(ctx context.Context, s *sponsor.Sponsor) error {
	var row models.SponsorModel
	row.FromDomain(s)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deliverables are replaced wholesale; the set is small per sponsor.
		if err := tx.Where("sponsor_id = ?", row.ID).
			Delete(&models.SponsorDeliverableModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&row).Error
	})
}

// DeleteForTenant removes a sponsor and cascades to its deliverables
func (r *GormSponsorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sponsor_id = ?", id).
			Delete(&models.SponsorDeliverableModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).
			Delete(&models.SponsorModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
