package sponsor

import (
	"context"
	"time"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status tracks a sponsor through the pipeline from first contact to
// invoiced. Transitions only move forward.
type Status string

const (
	StatusContacted Status = "contacted"
	StatusAgreed    Status = "agreed"
	StatusSigned    Status = "signed"
	StatusDelivered Status = "delivered"
	StatusInvoiced  Status = "invoiced"
)

var statusOrder = map[Status]int{
	StatusContacted: 0,
	StatusAgreed:    1,
	StatusSigned:    2,
	StatusDelivered: 3,
	StatusInvoiced:  4,
}

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Sponsor is a company or person backing the festival, with its agreed
// amount and promised deliverables.
type Sponsor struct {
	shared.TenantEntity
	Name         string          `json:"name"`
	Tier         string          `json:"tier"`
	ContactName  string          `json:"contact_name"`
	ContactEmail string          `json:"contact_email"`
	Amount       decimal.Decimal `json:"amount"`
	Status       Status          `json:"status"`
	Notes        string          `json:"notes"`
	Deliverables []Deliverable   `json:"deliverables"`
}

// Deliverable is one promise made to a sponsor, such as logo placement or
// festival passes.
type Deliverable struct {
	shared.BaseEntity
	SponsorID   uuid.UUID  `json:"sponsor_id"`
	Description string     `json:"description"`
	Delivered   bool       `json:"delivered"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

// NewSponsor creates a sponsor in the contacted state
func NewSponsor(tenantID uuid.UUID, name string, amount decimal.Decimal) (*Sponsor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "sponsor name is required")
	}
	return &Sponsor{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Amount:       amount,
		Status:       StatusContacted,
	}, nil
}

// Advance moves the sponsor to a later pipeline status. Moving backwards or
// to an unknown status is rejected.
func (s *Sponsor) Advance(next Status) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_SPONSOR_STATUS", "unknown sponsor status: "+string(next))
	}
	if statusOrder[next] <= statusOrder[s.Status] {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"cannot move sponsor from "+string(s.Status)+" to "+string(next))
	}
	s.Status = next
	s.UpdatedAt = time.Now()
	return nil
}

// MarkDelivered flags one deliverable as done, stamping the delivery time
func (s *Sponsor) MarkDelivered(deliverableID uuid.UUID, at time.Time) error {
	for i := range s.Deliverables {
		if s.Deliverables[i].ID == deliverableID {
			s.Deliverables[i].Delivered = true
			s.Deliverables[i].DeliveredAt = &at
			return nil
		}
	}
	return shared.ErrNotFound
}

// SponsorRepository defines persistence operations for sponsors
type SponsorRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sponsor, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Sponsor, error)
	// FindByContactEmail matches case-insensitively, used to scope the
	// sponsor role's portal view to its own record.
	FindByContactEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Sponsor, error)
	Save(ctx context.Context, sponsor *Sponsor) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
