package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxLine is one monetary record entering VAT bucketing. Sales, income and
// expense records are adapted to this shape so every caller shares the same
// fallback rules.
type TaxLine struct {
	ExVAT     decimal.Decimal
	Rate      *decimal.Decimal // fraction; nil buckets under rate 0
	VATAmount *decimal.Decimal // nil derives ExVAT × Rate
	Count     int64
}

// VAT returns the line's VAT amount with the derivation fallback applied
func (l TaxLine) VAT() decimal.Decimal {
	if l.VATAmount != nil {
		return *l.VATAmount
	}
	if l.Rate != nil {
		return l.ExVAT.Mul(*l.Rate)
	}
	return decimal.Zero
}

// VATBucket groups monetary records sharing one tax rate
type VATBucket struct {
	Rate      decimal.Decimal `json:"rate"`
	ExVAT     decimal.Decimal `json:"ex_vat"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	IncVAT    decimal.Decimal `json:"inc_vat"`
	Count     int64           `json:"count"`
}

// VATBuckets partitions tax lines by VAT rate, sorted descending by rate.
// Lines without a rate land in the zero bucket.
func VATBuckets(lines []TaxLine) []VATBucket {
	byRate := make(map[string]*VATBucket)
	for _, l := range lines {
		rate := decimal.Zero
		if l.Rate != nil {
			rate = *l.Rate
		}
		key := rate.String()
		b, ok := byRate[key]
		if !ok {
			b = &VATBucket{Rate: rate, ExVAT: decimal.Zero, VATAmount: decimal.Zero, IncVAT: decimal.Zero}
			byRate[key] = b
		}
		vat := l.VAT()
		b.ExVAT = b.ExVAT.Add(l.ExVAT)
		b.VATAmount = b.VATAmount.Add(vat)
		b.IncVAT = b.IncVAT.Add(l.ExVAT).Add(vat)
		b.Count += l.Count
	}

	buckets := make([]VATBucket, 0, len(byRate))
	for _, b := range byRate {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Rate.GreaterThan(buckets[j].Rate)
	})
	return buckets
}

// TaxLinesFromSales adapts ticket sales to tax lines. Quantities multiply
// into the amounts and into the bucket count, so a line with quantity 2
// counts as two items.
func TaxLinesFromSales(sales []TicketSale) []TaxLine {
	lines := make([]TaxLine, 0, len(sales))
	for i := range sales {
		s := &sales[i]
		vat := s.LineVAT()
		lines = append(lines, TaxLine{
			ExVAT:     s.LineExVAT(),
			Rate:      s.VATRate,
			VATAmount: &vat,
			Count:     s.Quantity,
		})
	}
	return lines
}
