package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/festivo/backend/internal/domain/ledger"
)

// TicketSaleModel is the persistence model for synced ticket sale lines.
// The (tenant_id, external_id) pair is the merge key for the provider sync:
// re-importing the same line updates it in place.
type TicketSaleModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
	TenantID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_sales_tenant_external"`
	ExternalID  string           `gorm:"not null;uniqueIndex:idx_ticket_sales_tenant_external"`
	ItemName    string           `gorm:"not null"`
	Category    string           `gorm:"not null;index"`
	Quantity    int64            `gorm:"not null"`
	PriceExVAT  decimal.Decimal  `gorm:"type:numeric(14,4);not null"`
	VATRate     *decimal.Decimal `gorm:"type:numeric(6,4)"`
	VATAmount   *decimal.Decimal `gorm:"type:numeric(14,4)"`
	PriceIncVAT decimal.Decimal  `gorm:"type:numeric(14,4);not null"`
	Channel     string           `gorm:"not null;default:'web'"`
	SoldAt      time.Time        `gorm:"not null;index"`
	SyncedAt    time.Time        `gorm:"not null"`
}

// TableName returns the table name for TicketSaleModel
func (TicketSaleModel) TableName() string {
	return "ticket_sales"
}

// ToDomain converts the model to a domain ticket sale
func (m *TicketSaleModel) ToDomain() ledger.TicketSale {
	return ledger.TicketSale{
		TenantEntity: tenantEntityFromParts(m.ID, m.CreatedAt, m.UpdatedAt, m.TenantID),
		ExternalID:   m.ExternalID,
		ItemName:     m.ItemName,
		Category:     ledger.ItemCategory(m.Category),
		Quantity:     m.Quantity,
		PriceExVAT:   m.PriceExVAT,
		VATRate:      m.VATRate,
		VATAmount:    m.VATAmount,
		PriceIncVAT:  m.PriceIncVAT,
		Channel:      ledger.SaleChannel(m.Channel),
		SoldAt:       m.SoldAt,
		SyncedAt:     m.SyncedAt,
	}
}

// FromDomain populates the model from a domain ticket sale
func (m *TicketSaleModel) FromDomain(s *ledger.TicketSale) {
	m.ID = s.ID
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
	m.TenantID = s.TenantID
	m.ExternalID = s.ExternalID
	m.ItemName = s.ItemName
	m.Category = string(s.Category)
	m.Quantity = s.Quantity
	m.PriceExVAT = s.PriceExVAT
	m.VATRate = s.VATRate
	m.VATAmount = s.VATAmount
	m.PriceIncVAT = s.PriceIncVAT
	m.Channel = string(s.Channel)
	m.SoldAt = s.SoldAt
	m.SyncedAt = s.SyncedAt
}
