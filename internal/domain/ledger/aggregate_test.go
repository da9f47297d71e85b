package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sale(day string, item string, category ItemCategory, channel SaleChannel, qty int64, exVAT, incVAT string) TicketSale {
	soldAt, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return TicketSale{
		ItemName:    item,
		Category:    category,
		Channel:     channel,
		Quantity:    qty,
		PriceExVAT:  dec(exVAT),
		PriceIncVAT: dec(incVAT),
		SoldAt:      soldAt,
	}
}

func TestGroupByDate(t *testing.T) {
	t.Run("orders days chronologically ascending", func(t *testing.T) {
		sales := []TicketSale{
			sale("2026-07-02", "Dagspass", CategoryTicket, ChannelWeb, 1, "100", "125"),
			sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 2, "100", "125"),
		}

		buckets := GroupByDate(sales)
		require.Len(t, buckets, 2)
		assert.Equal(t, "2026-07-01", buckets[0].Date)
		assert.Equal(t, "2026-07-02", buckets[1].Date)
		assert.Equal(t, int64(2), buckets[0].Quantity)
		assert.True(t, buckets[0].Revenue.Equal(dec("250")))
	})

	t.Run("sums quantity and inc-VAT revenue per day", func(t *testing.T) {
		sales := []TicketSale{
			sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 2, "80", "100"),
			sale("2026-07-01", "Festivalpass", CategoryTicket, ChannelPOS, 1, "400", "500"),
		}

		buckets := GroupByDate(sales)
		require.Len(t, buckets, 1)
		assert.Equal(t, int64(3), buckets[0].Quantity)
		assert.True(t, buckets[0].Revenue.Equal(dec("700")), "got %s", buckets[0].Revenue)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, GroupByDate(nil))
	})
}

func TestGroupByItem(t *testing.T) {
	sales := []TicketSale{
		sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 1, "100", "125"),
		sale("2026-07-01", "Festivalpass", CategoryTicket, ChannelWeb, 5, "400", "500"),
		sale("2026-07-02", "Dagspass", CategoryTicket, ChannelWeb, 2, "100", "125"),
	}

	buckets := GroupByItem(sales)
	require.Len(t, buckets, 2)
	assert.Equal(t, "Festivalpass", buckets[0].Item)
	assert.Equal(t, int64(5), buckets[0].Quantity)
	assert.Equal(t, "Dagspass", buckets[1].Item)
	assert.Equal(t, int64(3), buckets[1].Quantity)
}

func TestGroupByChannel(t *testing.T) {
	t.Run("keeps first-seen order", func(t *testing.T) {
		sales := []TicketSale{
			sale("2026-07-01", "Dagspass", CategoryTicket, ChannelPOS, 1, "100", "125"),
			sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 2, "100", "125"),
			sale("2026-07-01", "Dagspass", CategoryTicket, ChannelPOS, 3, "100", "125"),
		}

		buckets := GroupByChannel(sales)
		require.Len(t, buckets, 2)
		assert.Equal(t, ChannelPOS, buckets[0].Channel)
		assert.Equal(t, int64(4), buckets[0].Quantity)
		assert.Equal(t, ChannelWeb, buckets[1].Channel)
	})

	t.Run("missing channel defaults to web", func(t *testing.T) {
		sales := []TicketSale{
			sale("2026-07-01", "Dagspass", CategoryTicket, "", 1, "100", "125"),
			sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 1, "100", "125"),
		}

		buckets := GroupByChannel(sales)
		require.Len(t, buckets, 1)
		assert.Equal(t, ChannelWeb, buckets[0].Channel)
		assert.Equal(t, int64(2), buckets[0].Quantity)
	})
}

func TestTotals(t *testing.T) {
	now, err := time.Parse("2006-01-02", "2026-07-02")
	require.NoError(t, err)

	s1 := sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 2, "80", "100")
	s1.VATRate = decPtr("0.25")
	s1.VATAmount = decPtr("20")
	s2 := sale("2026-07-02", "Dagspass", CategoryTicket, ChannelWeb, 1, "80", "100")
	s2.VATRate = decPtr("0.25") // no explicit VAT amount: derived as 80 × 0.25

	totals := Totals([]TicketSale{s1, s2}, now)
	assert.Equal(t, int64(3), totals.Tickets)
	assert.True(t, totals.Revenue.Equal(dec("300")))
	assert.True(t, totals.VAT.Equal(dec("60")), "VAT fallback must match explicit amounts, got %s", totals.VAT)
	assert.Equal(t, int64(1), totals.SoldToday)
}
