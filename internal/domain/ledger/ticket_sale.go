package ledger

import (
	"context"
	"time"

	"github.com/festivo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleChannel is where a ticket line was sold
type SaleChannel string

const (
	ChannelWeb SaleChannel = "web"
	ChannelPOS SaleChannel = "pos"
)

// OrDefault returns the channel, falling back to web when unset
func (c SaleChannel) OrDefault() SaleChannel {
	if c == "" {
		return ChannelWeb
	}
	return c
}

// ItemCategory classifies a sale line as a ticket or food/beverage
type ItemCategory string

const (
	CategoryTicket ItemCategory = "ticket"
	CategoryFB     ItemCategory = "fb"
)

// TicketSale is one line item of an order synced from the external ticketing
// provider. Rows are created and overwritten only by the sync job; every
// other component reads them.
type TicketSale struct {
	shared.TenantEntity
	// ExternalID is the provider's "orderID-lineID" composite. It is unique
	// per tenant and is the upsert key that makes the sync idempotent.
	ExternalID  string           `json:"external_id"`
	ItemName    string           `json:"item_name"`
	Category    ItemCategory     `json:"category"`
	Quantity    int64            `json:"quantity"`
	PriceExVAT  decimal.Decimal  `json:"price_ex_vat"` // unit price excl. VAT
	VATRate     *decimal.Decimal `json:"vat_rate"`     // fraction, e.g. 0.25
	VATAmount   *decimal.Decimal `json:"vat_amount"`   // unit VAT amount
	PriceIncVAT decimal.Decimal  `json:"price_inc_vat"`
	Channel     SaleChannel      `json:"channel"`
	SoldAt      time.Time        `json:"sold_at"`
	SyncedAt    time.Time        `json:"synced_at"`
}

// UnitVAT returns the unit VAT amount, deriving it from the ex-VAT price and
// rate when the provider did not send one. A missing rate counts as zero VAT.
func (s *TicketSale) UnitVAT() decimal.Decimal {
	if s.VATAmount != nil {
		return *s.VATAmount
	}
	if s.VATRate != nil {
		return s.PriceExVAT.Mul(*s.VATRate)
	}
	return decimal.Zero
}

// LineExVAT returns quantity × unit ex-VAT price
func (s *TicketSale) LineExVAT() decimal.Decimal {
	return s.PriceExVAT.Mul(decimal.NewFromInt(s.Quantity))
}

// LineVAT returns quantity × unit VAT amount, with the derivation fallback
func (s *TicketSale) LineVAT() decimal.Decimal {
	return s.UnitVAT().Mul(decimal.NewFromInt(s.Quantity))
}

// LineIncVAT returns quantity × unit inc-VAT price
func (s *TicketSale) LineIncVAT() decimal.Decimal {
	return s.PriceIncVAT.Mul(decimal.NewFromInt(s.Quantity))
}

// SaleDay returns the calendar day of the sale as YYYY-MM-DD
func (s *TicketSale) SaleDay() string {
	return s.SoldAt.Format("2006-01-02")
}

// SaleFilter narrows ledger queries
type SaleFilter struct {
	From     *time.Time
	To       *time.Time
	Category *ItemCategory
	Channel  *SaleChannel
}

// TicketSaleRepository defines persistence operations for the sales ledger
type TicketSaleRepository interface {
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) ([]TicketSale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	// UpsertBatch merges the given rows into the ledger keyed on
	// (tenant_id, external_id). Existing rows are overwritten field by field
	// (last-write-wins); re-running a sync never duplicates rows.
	UpsertBatch(ctx context.Context, sales []TicketSale) error
}
