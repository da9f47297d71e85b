package ticketing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderOrder is one order as returned by the external ticket provider.
// An order groups one or more sold lines under a shared channel and time.
type ProviderOrder struct {
	ID        string              `json:"id"`
	Channel   string              `json:"channel"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Lines     []ProviderOrderLine `json:"lines"`
}

// ProviderOrderLine is one sold item within a provider order. Amounts are
// gross; the portal derives the ex-VAT price from gross minus VAT.
type ProviderOrderLine struct {
	ID         string           `json:"id"`
	ItemName   string           `json:"item_name"`
	Category   string           `json:"category"` // provider's free-text category, may be empty
	Quantity   int64            `json:"quantity"`
	UnitGross  decimal.Decimal  `json:"unit_gross"`
	UnitVAT    decimal.Decimal  `json:"unit_vat"`
	VATRatePct *decimal.Decimal `json:"vat_rate_pct"` // percent, e.g. 25
}

// OrderClient fetches orders from the external ticket provider. Pages are
// 1-based; an empty page signals the end of the result set.
type OrderClient interface {
	FetchOrders(ctx context.Context, token string, since time.Time, page, perPage int) ([]ProviderOrder, error)
}
