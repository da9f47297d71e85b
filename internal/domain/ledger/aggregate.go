package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateBucket is the per-day summary of a sales collection
type DateBucket struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"` // VAT inclusive
}

// ItemBucket is the per-item summary of a sales collection
type ItemBucket struct {
	Item     string          `json:"item"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ChannelBucket is the per-channel summary of a sales collection
type ChannelBucket struct {
	Channel  SaleChannel     `json:"channel"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// GroupByDate sums quantity and VAT-inclusive revenue per calendar day,
// ordered chronologically ascending.
func GroupByDate(sales []TicketSale) []DateBucket {
	byDay := make(map[string]*DateBucket)
	for i := range sales {
		s := &sales[i]
		day := s.SaleDay()
		b, ok := byDay[day]
		if !ok {
			b = &DateBucket{Date: day, Revenue: decimal.Zero}
			byDay[day] = b
		}
		b.Quantity += s.Quantity
		b.Revenue = b.Revenue.Add(s.LineIncVAT())
	}

	buckets := make([]DateBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

// GroupByItem sums quantity and revenue per item name, ordered descending by
// quantity. Ties break on item name so the output is deterministic.
func GroupByItem(sales []TicketSale) []ItemBucket {
	byItem := make(map[string]*ItemBucket)
	for i := range sales {
		s := &sales[i]
		b, ok := byItem[s.ItemName]
		if !ok {
			b = &ItemBucket{Item: s.ItemName, Revenue: decimal.Zero}
			byItem[s.ItemName] = b
		}
		b.Quantity += s.Quantity
		b.Revenue = b.Revenue.Add(s.LineIncVAT())
	}

	buckets := make([]ItemBucket, 0, len(byItem))
	for _, b := range byItem {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Quantity != buckets[j].Quantity {
			return buckets[i].Quantity > buckets[j].Quantity
		}
		return buckets[i].Item < buckets[j].Item
	})
	return buckets
}

// GroupByChannel sums quantity and revenue per sale channel in first-seen
// order. A sale without a channel counts as web.
func GroupByChannel(sales []TicketSale) []ChannelBucket {
	byChannel := make(map[SaleChannel]*ChannelBucket)
	order := make([]SaleChannel, 0, 2)
	for i := range sales {
		s := &sales[i]
		ch := s.Channel.OrDefault()
		b, ok := byChannel[ch]
		if !ok {
			b = &ChannelBucket{Channel: ch, Revenue: decimal.Zero}
			byChannel[ch] = b
			order = append(order, ch)
		}
		b.Quantity += s.Quantity
		b.Revenue = b.Revenue.Add(s.LineIncVAT())
	}

	buckets := make([]ChannelBucket, 0, len(order))
	for _, ch := range order {
		buckets = append(buckets, *byChannel[ch])
	}
	return buckets
}

// SalesTotals aggregates a whole sales collection
type SalesTotals struct {
	Tickets   int64           `json:"tickets"`
	Revenue   decimal.Decimal `json:"revenue"` // VAT inclusive
	VAT       decimal.Decimal `json:"vat"`
	SoldToday int64           `json:"sold_today"`
}

// Totals computes total quantity, VAT-inclusive revenue, VAT collected and
// the quantity sold on the calendar day of now.
func Totals(sales []TicketSale, now time.Time) SalesTotals {
	t := SalesTotals{Revenue: decimal.Zero, VAT: decimal.Zero}
	today := now.Format("2006-01-02")
	for i := range sales {
		s := &sales[i]
		t.Tickets += s.Quantity
		t.Revenue = t.Revenue.Add(s.LineIncVAT())
		t.VAT = t.VAT.Add(s.LineVAT())
		if s.SaleDay() == today {
			t.SoldToday += s.Quantity
		}
	}
	return t
}
