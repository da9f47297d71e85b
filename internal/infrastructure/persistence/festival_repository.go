package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/shared"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
)

// GormFestivalRepository implements FestivalRepository using GORM
type GormFestivalRepository struct {
	db *gorm.DB
}

// NewGormFestivalRepository creates a new GormFestivalRepository
func NewGormFestivalRepository(db *gorm.DB) *GormFestivalRepository {
	return &GormFestivalRepository{db: db}
}

// FindByID finds a festival by its ID
func (r *GormFestivalRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Festival, error) {
	var row models.FestivalModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindAll returns all festivals ordered by name
func (r *GormFestivalRepository) FindAll(ctx context.Context) ([]identity.Festival, error) {
	var rows []models.FestivalModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	festivals := make([]identity.Festival, len(rows))
	for i := range rows {
		festivals[i] = *rows[i].ToDomain()
	}
	return festivals, nil
}

// FindWithTicketProvider returns festivals with provider credentials set
func (r *GormFestivalRepository) FindWithTicketProvider(ctx context.Context) ([]identity.Festival, error) {
	var rows []models.FestivalModel
	if err := r.db.WithContext(ctx).
		Where("ticket_provider_token <> ''").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	festivals := make([]identity.Festival, len(rows))
	for i := range rows {
		festivals[i] = *rows[i].ToDomain()
	}
	return festivals, nil
}

// Save creates or updates a festival
func (r *GormFestivalRepository) Save(ctx context.Context, festival *identity.Festival) error {
	var row models.FestivalModel
	row.FromDomain(festival)
	return r.db.WithContext(ctx).Save(&row).Error
}
