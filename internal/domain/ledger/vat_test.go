package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVATBuckets(t *testing.T) {
	t.Run("sums sales lines sharing a rate", func(t *testing.T) {
		s1 := sale("2026-07-01", "Dagspass", CategoryTicket, ChannelWeb, 2, "80", "100")
		s1.VATRate = decPtr("0.25")
		s1.VATAmount = decPtr("20")
		s2 := sale("2026-07-01", "Festivalpass", CategoryTicket, ChannelWeb, 1, "100", "125")
		s2.VATRate = decPtr("0.25")
		s2.VATAmount = decPtr("25")

		buckets := VATBuckets(TaxLinesFromSales([]TicketSale{s1, s2}))
		require.Len(t, buckets, 1)
		b := buckets[0]
		assert.True(t, b.Rate.Equal(dec("0.25")))
		assert.True(t, b.ExVAT.Equal(dec("260")), "exVAT got %s", b.ExVAT)
		assert.True(t, b.VATAmount.Equal(dec("65")), "vat got %s", b.VATAmount)
		assert.True(t, b.IncVAT.Equal(dec("325")), "incVAT got %s", b.IncVAT)
		assert.Equal(t, int64(3), b.Count)
	})

	t.Run("sorts buckets descending by rate", func(t *testing.T) {
		lines := []TaxLine{
			{ExVAT: dec("100"), Rate: decPtr("0.12"), Count: 1},
			{ExVAT: dec("100"), Rate: decPtr("0.25"), Count: 1},
			{ExVAT: dec("100"), Rate: decPtr("0"), Count: 1},
		}

		buckets := VATBuckets(lines)
		require.Len(t, buckets, 3)
		assert.True(t, buckets[0].Rate.Equal(dec("0.25")))
		assert.True(t, buckets[1].Rate.Equal(dec("0.12")))
		assert.True(t, buckets[2].Rate.Equal(dec("0")))
	})

	t.Run("nil rate buckets under zero", func(t *testing.T) {
		lines := []TaxLine{
			{ExVAT: dec("100"), Count: 1},
			{ExVAT: dec("50"), Rate: decPtr("0"), Count: 1},
		}

		buckets := VATBuckets(lines)
		require.Len(t, buckets, 1)
		assert.True(t, buckets[0].Rate.IsZero())
		assert.True(t, buckets[0].ExVAT.Equal(dec("150")))
		assert.True(t, buckets[0].VATAmount.IsZero())
	})

	t.Run("derives missing VAT amount from rate", func(t *testing.T) {
		lines := []TaxLine{
			{ExVAT: dec("100"), Rate: decPtr("0.25"), Count: 1},
		}

		buckets := VATBuckets(lines)
		require.Len(t, buckets, 1)
		assert.True(t, buckets[0].VATAmount.Equal(dec("25")))
		assert.True(t, buckets[0].IncVAT.Equal(dec("125")))
	})
}
