// Package sponsor manages the sponsor pipeline.
package sponsor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/festivo/backend/internal/domain/sponsor"
)

// SponsorService manages sponsors and their deliverables for one tenant at a
// time. The sponsor role only ever sees its own record, matched by contact
// email.
type SponsorService struct {
	sponsorRepo sponsor.SponsorRepository
	logger      *zap.Logger
}

// NewSponsorService creates the sponsor service
func NewSponsorService(sponsorRepo sponsor.SponsorRepository, logger *zap.Logger) *SponsorService {
	return &SponsorService{sponsorRepo: sponsorRepo, logger: logger}
}

// CreateSponsorInput carries the fields for a new sponsor
type CreateSponsorInput struct {
	Name         string          `json:"name"`
	Tier         string          `json:"tier"`
	ContactName  string          `json:"contact_name"`
	ContactEmail string          `json:"contact_email"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes"`
	Deliverables []string        `json:"deliverables"`
}

// Create adds a sponsor in the contacted state, with optional deliverables
func (s *SponsorService) Create(ctx context.Context, tenantID uuid.UUID, input CreateSponsorInput) (*sponsor.Sponsor, error) {
	sp, err := sponsor.NewSponsor(tenantID, input.Name, input.Amount)
	if err != nil {
		return nil, err
	}
	sp.Tier = input.Tier
	sp.ContactName = input.ContactName
	sp.ContactEmail = input.ContactEmail
	sp.Notes = input.Notes
	for _, desc := range input.Deliverables {
		if desc == "" {
			continue
		}
		sp.Deliverables = append(sp.Deliverables, sponsor.Deliverable{
			BaseEntity:  shared.NewBaseEntity(),
			SponsorID:   sp.ID,
			Description: desc,
		})
	}

	if err := s.sponsorRepo.Save(ctx, sp); err != nil {
		return nil, err
	}
	s.logger.Info("Sponsor created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sponsor_id", sp.ID.String()),
		zap.String("name", sp.Name),
	)
	return sp, nil
}

// UpdateSponsorInput carries the changeable fields; nil fields stay untouched
type UpdateSponsorInput struct {
	Name         *string          `json:"name"`
	Tier         *string          `json:"tier"`
	ContactName  *string          `json:"contact_name"`
	ContactEmail *string          `json:"contact_email"`
	Amount       *decimal.Decimal `json:"amount"`
	Notes        *string          `json:"notes"`
}

// Update applies partial changes to a sponsor
func (s *SponsorService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateSponsorInput) (*sponsor.Sponsor, error) {
	sp, err := s.sponsorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		sp.Name = *input.Name
	}
	if input.Tier != nil {
		sp.Tier = *input.Tier
	}
	if input.ContactName != nil {
		sp.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		sp.ContactEmail = *input.ContactEmail
	}
	if input.Amount != nil {
		sp.Amount = *input.Amount
	}
	if input.Notes != nil {
		sp.Notes = *input.Notes
	}
	sp.UpdatedAt = time.Now()

	if err := s.sponsorRepo.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Advance moves a sponsor forward in the pipeline
func (s *SponsorService) Advance(ctx context.Context, tenantID, id uuid.UUID, next sponsor.Status) (*sponsor.Sponsor, error) {
	sp, err := s.sponsorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := sp.Advance(next); err != nil {
		return nil, err
	}
	if err := s.sponsorRepo.Save(ctx, sp); err != nil {
		return nil, err
	}
	s.logger.Info("Sponsor advanced",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sponsor_id", sp.ID.String()),
		zap.String("status", string(sp.Status)),
	)
	return sp, nil
}

// AddDeliverable appends one promise to a sponsor
func (s *SponsorService) AddDeliverable(ctx context.Context, tenantID, id uuid.UUID, description string) (*sponsor.Sponsor, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "deliverable description is required")
	}
	sp, err := s.sponsorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	sp.Deliverables = append(sp.Deliverables, sponsor.Deliverable{
		BaseEntity:  shared.NewBaseEntity(),
		SponsorID:   sp.ID,
		Description: description,
	})
	if err := s.sponsorRepo.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// MarkDelivered flags one deliverable as done
func (s *SponsorService) MarkDelivered(ctx context.Context, tenantID, sponsorID, deliverableID uuid.UUID) (*sponsor.Sponsor, error) {
	sp, err := s.sponsorRepo.FindByIDForTenant(ctx, tenantID, sponsorID)
	if err != nil {
		return nil, err
	}
	if err := sp.MarkDelivered(deliverableID, time.Now()); err != nil {
		return nil, err
	}
	if err := s.sponsorRepo.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Get returns one sponsor scoped to the tenant
func (s *SponsorService) Get(ctx context.Context, tenantID, id uuid.UUID) (*sponsor.Sponsor, error) {
	return s.sponsorRepo.FindByIDForTenant(ctx, tenantID, id)
}

// GetOwn returns the sponsor record matching the caller's email, used for
// the sponsor role's restricted portal view
func (s *SponsorService) GetOwn(ctx context.Context, tenantID uuid.UUID, email string) (*sponsor.Sponsor, error) {
	return s.sponsorRepo.FindByContactEmail(ctx, tenantID, email)
}

// List returns all sponsors for the tenant
func (s *SponsorService) List(ctx context.Context, tenantID uuid.UUID) ([]sponsor.Sponsor, error) {
	return s.sponsorRepo.FindAllForTenant(ctx, tenantID)
}

// Delete removes a sponsor and its deliverables
func (s *SponsorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.sponsorRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Sponsor deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sponsor_id", id.String()),
	)
	return nil
}
