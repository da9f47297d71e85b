package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/festivo/backend/internal/domain/finance"
)

// FinanceEntryModel is the persistence model for budget and actual entries
type FinanceEntryModel struct {
	TenantModel
	Kind        string `gorm:"not null;index"`
	Category    string `gorm:"not null;index"`
	Description string
	AmountExVAT decimal.Decimal  `gorm:"type:numeric(14,4);not null"`
	VATRate     *decimal.Decimal `gorm:"type:numeric(6,4)"`
	VATAmount   *decimal.Decimal `gorm:"type:numeric(14,4)"`
	Source      string
	IsBudget    bool `gorm:"not null;default:false;index"`
	OccurredOn  *time.Time
}

// TableName returns the table name for FinanceEntryModel
func (FinanceEntryModel) TableName() string {
	return "finance_entries"
}

// ToDomain converts the model to a domain finance entry
func (m *FinanceEntryModel) ToDomain() finance.Entry {
	return finance.Entry{
		TenantEntity: m.ToDomainTenantEntity(),
		Kind:         finance.EntryKind(m.Kind),
		Category:     m.Category,
		Description:  m.Description,
		AmountExVAT:  m.AmountExVAT,
		VATRate:      m.VATRate,
		VATAmount:    m.VATAmount,
		Source:       m.Source,
		IsBudget:     m.IsBudget,
		OccurredOn:   m.OccurredOn,
	}
}

// FromDomain populates the model from a domain finance entry
func (m *FinanceEntryModel) FromDomain(e *finance.Entry) {
	m.FromDomainTenantEntity(e.TenantEntity)
	m.Kind = string(e.Kind)
	m.Category = e.Category
	m.Description = e.Description
	m.AmountExVAT = e.AmountExVAT
	m.VATRate = e.VATRate
	m.VATAmount = e.VATAmount
	m.Source = e.Source
	m.IsBudget = e.IsBudget
	m.OccurredOn = e.OccurredOn
}
