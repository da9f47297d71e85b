package models

import (
	"time"

	"github.com/festivo/backend/internal/domain/identity"
)

// FestivalModel is the persistence model for festival tenants
type FestivalModel struct {
	BaseModel
	Name                string     `gorm:"not null"`
	Slug                string     `gorm:"not null;uniqueIndex"`
	CurrencyCode        string     `gorm:"not null;size:3"`
	Locale              string     `gorm:"not null;default:'nb'"`
	StartsAt            *time.Time `gorm:"index"`
	EndsAt              *time.Time
	TicketProviderToken string
}

// TableName returns the table name for FestivalModel
func (FestivalModel) TableName() string {
	return "festivals"
}

// ToDomain converts the model to a domain festival
func (m *FestivalModel) ToDomain() *identity.Festival {
	return &identity.Festival{
		BaseEntity:          m.BaseModel.ToDomain(),
		Name:                m.Name,
		Slug:                m.Slug,
		CurrencyCode:        m.CurrencyCode,
		Locale:              m.Locale,
		StartsAt:            m.StartsAt,
		EndsAt:              m.EndsAt,
		TicketProviderToken: m.TicketProviderToken,
	}
}

// FromDomain populates the model from a domain festival
func (m *FestivalModel) FromDomain(f *identity.Festival) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.Name = f.Name
	m.Slug = f.Slug
	m.CurrencyCode = f.CurrencyCode
	m.Locale = f.Locale
	m.StartsAt = f.StartsAt
	m.EndsAt = f.EndsAt
	m.TicketProviderToken = f.TicketProviderToken
}

// UserProfileModel is the persistence model for portal user profiles
type UserProfileModel struct {
	TenantModel
	Email       string `gorm:"not null;index"`
	DisplayName string
	Role        string `gorm:"not null"`
}

// TableName returns the table name for UserProfileModel
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// ToDomain converts the model to a domain user profile
func (m *UserProfileModel) ToDomain() *identity.UserProfile {
	return &identity.UserProfile{
		TenantEntity: m.ToDomainTenantEntity(),
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		Role:         identity.Role(m.Role),
	}
}

// FromDomain populates the model from a domain user profile
func (m *UserProfileModel) FromDomain(u *identity.UserProfile) {
	m.FromDomainTenantEntity(u.TenantEntity)
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.Role = string(u.Role)
}
