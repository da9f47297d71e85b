package identity

import (
	"context"
	"strings"
	"time"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Festival is the tenant aggregate. All business data in the portal is
// scoped to exactly one festival.
type Festival struct {
	shared.BaseEntity
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	CurrencyCode string     `json:"currency_code"` // ISO 4217, e.g. "NOK"
	Locale       string     `json:"locale"`        // BCP 47, e.g. "nb"
	StartsAt     *time.Time `json:"starts_at"`     // first festival day, drives the ticket forecast
	EndsAt       *time.Time `json:"ends_at"`

	// TicketProviderToken authenticates the external ticketing API for this
	// tenant. Empty means the tenant has no provider configured and the sync
	// job skips it.
	TicketProviderToken string `json:"-"`
}

// NewFestival creates a new festival tenant
func NewFestival(name, slug, currencyCode string) *Festival {
	return &Festival{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Slug:         slug,
		CurrencyCode: currencyCode,
		Locale:       "nb",
	}
}

// HasTicketProvider reports whether the tenant has ticketing credentials configured
func (f *Festival) HasTicketProvider() bool {
	return strings.TrimSpace(f.TicketProviderToken) != ""
}

// FestivalRepository defines persistence operations for festivals
type FestivalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Festival, error)
	FindAll(ctx context.Context) ([]Festival, error)
	// FindWithTicketProvider returns all festivals that have provider
	// credentials configured, for the scheduled sync sweep.
	FindWithTicketProvider(ctx context.Context) ([]Festival, error)
	Save(ctx context.Context, festival *Festival) error
}
