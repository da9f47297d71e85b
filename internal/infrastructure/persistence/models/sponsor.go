package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/festivo/backend/internal/domain/sponsor"
)

// SponsorModel is the persistence model for sponsors
type SponsorModel struct {
	TenantModel
	Name         string `gorm:"not null"`
	Tier         string
	ContactName  string
	ContactEmail string          `gorm:"index"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Status       string          `gorm:"not null;default:'contacted'"`
	Notes        string
	Deliverables []SponsorDeliverableModel `gorm:"foreignKey:SponsorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for SponsorModel
func (SponsorModel) TableName() string {
	return "sponsors"
}

// SponsorDeliverableModel is the persistence model for sponsor deliverables
type SponsorDeliverableModel struct {
	BaseModel
	SponsorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"not null"`
	Delivered   bool      `gorm:"not null;default:false"`
	DeliveredAt *time.Time
}

// TableName returns the table name for SponsorDeliverableModel
func (SponsorDeliverableModel) TableName() string {
	return "sponsor_deliverables"
}

// ToDomain converts the model to a domain sponsor with its deliverables
func (m *SponsorModel) ToDomain() *sponsor.Sponsor {
	deliverables := make([]sponsor.Deliverable, len(m.Deliverables))
	for i := range m.Deliverables {
		deliverables[i] = m.Deliverables[i].ToDomainDeliverable()
	}
	return &sponsor.Sponsor{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Tier:         m.Tier,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		Amount:       m.Amount,
		Status:       sponsor.Status(m.Status),
		Notes:        m.Notes,
		Deliverables: deliverables,
	}
}

// FromDomain populates the model from a domain sponsor
func (m *SponsorModel) FromDomain(s *sponsor.Sponsor) {
	m.FromDomainTenantEntity(s.TenantEntity)
	m.Name = s.Name
	m.Tier = s.Tier
	m.ContactName = s.ContactName
	m.ContactEmail = s.ContactEmail
	m.Amount = s.Amount
	m.Status = string(s.Status)
	m.Notes = s.Notes
	m.Deliverables = make([]SponsorDeliverableModel, len(s.Deliverables))
	for i := range s.Deliverables {
		m.Deliverables[i].FromDomainDeliverable(&s.Deliverables[i])
	}
}

// ToDomainDeliverable converts the model to a domain deliverable
func (m *SponsorDeliverableModel) ToDomainDeliverable() sponsor.Deliverable {
	return sponsor.Deliverable{
		BaseEntity:  m.ToDomain(),
		SponsorID:   m.SponsorID,
		Description: m.Description,
		Delivered:   m.Delivered,
		DeliveredAt: m.DeliveredAt,
	}
}

// FromDomainDeliverable populates the model from a domain deliverable
func (m *SponsorDeliverableModel) FromDomainDeliverable(d *sponsor.Deliverable) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.SponsorID = d.SponsorID
	m.Description = d.Description
	m.Delivered = d.Delivered
	m.DeliveredAt = d.DeliveredAt
}
