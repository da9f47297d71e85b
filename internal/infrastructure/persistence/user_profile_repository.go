package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/shared"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
)

// GormUserProfileRepository implements UserProfileRepository using GORM
type GormUserProfileRepository struct {
	db *gorm.DB
}

// NewGormUserProfileRepository creates a new GormUserProfileRepository
func NewGormUserProfileRepository(db *gorm.DB) *GormUserProfileRepository {
	return &GormUserProfileRepository{db: db}
}

// FindByID finds a user profile by its ID
func (r *GormUserProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.UserProfile, error) {
	var row models.UserProfileModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindByEmailForTenant finds a user profile by email within a tenant,
// case-insensitively
func (r *GormUserProfileRepository) FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*identity.UserProfile, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var row models.UserProfileModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(email) = ?", tenantID, strings.ToLower(email)).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Save creates or updates a user profile
func (r *GormUserProfileRepository) Save(ctx context.Context, profile *identity.UserProfile) error {
	var row models.UserProfileModel
	row.FromDomain(profile)
	return r.db.WithContext(ctx).Save(&row).Error
}
