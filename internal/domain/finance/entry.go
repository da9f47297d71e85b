package finance

import (
	"context"
	"time"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind separates income from expenses. The two kinds are never merged,
// even when category labels collide.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// IsValid checks if the kind is known
func (k EntryKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// Entry is one financial record, either planned (budget) or actual, entered
// by privileged roles through the portal.
type Entry struct {
	shared.TenantEntity
	Kind        EntryKind        `json:"kind"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	AmountExVAT decimal.Decimal  `json:"amount_ex_vat"`
	VATRate     *decimal.Decimal `json:"vat_rate"`   // fraction
	VATAmount   *decimal.Decimal `json:"vat_amount"` // nil derives AmountExVAT × VATRate
	Source      string           `json:"source"`     // supplier or payer, free text
	IsBudget    bool             `json:"is_budget"`
	OccurredOn  *time.Time       `json:"occurred_on"`
}

// NewEntry creates a new financial entry for a tenant
func NewEntry(tenantID uuid.UUID, kind EntryKind, category string, amountExVAT decimal.Decimal) (*Entry, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_KIND", "unknown entry kind: "+string(kind))
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "entry category is required")
	}
	return &Entry{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Kind:         kind,
		Category:     category,
		AmountExVAT:  amountExVAT,
	}, nil
}

// VAT returns the entry's VAT amount, derived from rate when absent
func (e *Entry) VAT() decimal.Decimal {
	if e.VATAmount != nil {
		return *e.VATAmount
	}
	if e.VATRate != nil {
		return e.AmountExVAT.Mul(*e.VATRate)
	}
	return decimal.Zero
}

// AmountIncVAT returns the VAT-inclusive amount
func (e *Entry) AmountIncVAT() decimal.Decimal {
	return e.AmountExVAT.Add(e.VAT())
}

// EntryFilter narrows entry queries
type EntryFilter struct {
	Kind     *EntryKind
	Category string
	IsBudget *bool
	From     *time.Time
	To       *time.Time
}

// EntryRepository defines persistence operations for financial entries
type EntryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Entry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter EntryFilter) ([]Entry, error)
	Save(ctx context.Context, entry *Entry) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
