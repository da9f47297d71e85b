package identity

import (
	"context"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the closed set of portal roles. A user profile carries exactly one.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleBoard      Role = "board"
	RoleCrew       Role = "crew"
	RoleSponsor    Role = "sponsor"
	RoleAccountant Role = "accountant"
)

// IsValid checks if the role is part of the closed set
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBoard, RoleCrew, RoleSponsor, RoleAccountant:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// CanManageFinance reports whether the role may create or edit income and
// expense entries.
func (r Role) CanManageFinance() bool {
	return r == RoleAdmin || r == RoleBoard
}

// CanExport reports whether the role may download CSV/PDF artifacts.
func (r Role) CanExport() bool {
	return r == RoleAdmin || r == RoleBoard || r == RoleAccountant
}

// CanManageSponsors reports whether the role may edit sponsor records.
func (r Role) CanManageSponsors() bool {
	return r == RoleAdmin || r == RoleBoard
}

// CanTriggerSync reports whether the role may trigger a manual ticket sync.
func (r Role) CanTriggerSync() bool {
	return r == RoleAdmin
}

// UserProfile links an authenticated user to a tenant and a role.
// The sponsor role is additionally restricted to the sponsor row whose
// contact email matches the profile email.
type UserProfile struct {
	shared.TenantEntity
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// NewUserProfile creates a new user profile for a tenant
func NewUserProfile(tenantID uuid.UUID, email, displayName string, role Role) (*UserProfile, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "unknown role: "+string(role))
	}
	return &UserProfile{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Email:        email,
		DisplayName:  displayName,
		Role:         role,
	}, nil
}

// UserProfileRepository defines persistence operations for user profiles
type UserProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*UserProfile, error)
	Save(ctx context.Context, profile *UserProfile) error
}
