// Package finance exposes CRUD over budget and actual entries.
package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/domain/finance"
)

// EntryService manages a tenant's financial entries. Role enforcement lives
// in the HTTP middleware; the service trusts the tenant id it is given.
type EntryService struct {
	entryRepo finance.EntryRepository
	logger    *zap.Logger
}

// NewEntryService creates the finance entry service
func NewEntryService(entryRepo finance.EntryRepository, logger *zap.Logger) *EntryService {
	return &EntryService{entryRepo: entryRepo, logger: logger}
}

// CreateEntryInput carries the fields for a new entry
type CreateEntryInput struct {
	Kind        finance.EntryKind `json:"kind"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	AmountExVAT decimal.Decimal   `json:"amount_ex_vat"`
	VATRate     *decimal.Decimal  `json:"vat_rate"`
	VATAmount   *decimal.Decimal  `json:"vat_amount"`
	Source      string            `json:"source"`
	IsBudget    bool              `json:"is_budget"`
	OccurredOn  *time.Time        `json:"occurred_on"`
}

// Create adds a new entry for the tenant
func (s *EntryService) Create(ctx context.Context, tenantID uuid.UUID, input CreateEntryInput) (*finance.Entry, error) {
	entry, err := finance.NewEntry(tenantID, input.Kind, input.Category, input.AmountExVAT)
	if err != nil {
		return nil, err
	}
	entry.Description = input.Description
	entry.VATRate = input.VATRate
	entry.VATAmount = input.VATAmount
	entry.Source = input.Source
	entry.IsBudget = input.IsBudget
	entry.OccurredOn = input.OccurredOn

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info("Finance entry created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entry_id", entry.ID.String()),
		zap.String("kind", string(entry.Kind)),
		zap.String("category", entry.Category),
	)
	return entry, nil
}

// UpdateEntryInput carries the changeable fields; nil fields stay untouched
type UpdateEntryInput struct {
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	AmountExVAT *decimal.Decimal `json:"amount_ex_vat"`
	VATRate     *decimal.Decimal `json:"vat_rate"`
	VATAmount   *decimal.Decimal `json:"vat_amount"`
	Source      *string          `json:"source"`
	OccurredOn  *time.Time       `json:"occurred_on"`
}

// Update applies partial changes to an existing entry
func (s *EntryService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateEntryInput) (*finance.Entry, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Category != nil && *input.Category != "" {
		entry.Category = *input.Category
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.AmountExVAT != nil {
		entry.AmountExVAT = *input.AmountExVAT
	}
	if input.VATRate != nil {
		entry.VATRate = input.VATRate
	}
	if input.VATAmount != nil {
		entry.VATAmount = input.VATAmount
	}
	if input.Source != nil {
		entry.Source = *input.Source
	}
	if input.OccurredOn != nil {
		entry.OccurredOn = input.OccurredOn
	}
	entry.UpdatedAt = time.Now()

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns one entry scoped to the tenant
func (s *EntryService) Get(ctx context.Context, tenantID, id uuid.UUID) (*finance.Entry, error) {
	return s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
}

// List returns the tenant's entries matching the filter
func (s *EntryService) List(ctx context.Context, tenantID uuid.UUID, filter finance.EntryFilter) ([]finance.Entry, error) {
	return s.entryRepo.FindAllForTenant(ctx, tenantID, filter)
}

// Delete removes one entry scoped to the tenant
func (s *EntryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.entryRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Finance entry deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entry_id", id.String()),
	)
	return nil
}
