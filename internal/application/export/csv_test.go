package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivo/backend/internal/domain/finance"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/sponsor"
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

func sale(item string, category ledger.ItemCategory, qty int64, exVAT, incVAT string, rate *decimal.Decimal) ledger.TicketSale {
	return ledger.TicketSale{
		ItemName:    item,
		Category:    category,
		Quantity:    qty,
		PriceExVAT:  dec(exVAT),
		VATRate:     rate,
		PriceIncVAT: dec(incVAT),
		Channel:     ledger.ChannelWeb,
		SoldAt:      time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")
	r := csv.NewReader(bytes.NewReader(data[3:]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formula equals", "=1+2", "'=1+2"},
		{"formula plus", "+47 99", "'+47 99"},
		{"formula minus", "-100", "'-100"},
		{"formula at", "@cmd", "'@cmd"},
		{"tab", "\tx", "'\tx"},
		{"plain", "Dagspass", "Dagspass"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeCell(tt.in))
		})
	}
}

func TestSalesCSV(t *testing.T) {
	sales := []ledger.TicketSale{
		sale("Dagspass lørdag", ledger.CategoryTicket, 2, "480", "600", decPtr("0.25")),
		sale("=SUM(A1)", ledger.CategoryFB, 1, "100", "115", decPtr("0.15")),
	}

	data, err := SalesCSV(sales)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Dato", "Vare", "Kategori", "Antall", "Pris eks. mva", "Mva-sats", "Mva", "Pris inkl. mva", "Kanal"}, rows[0])

	assert.Equal(t, "2026-07-01", rows[1][0])
	assert.Equal(t, "Dagspass lørdag", rows[1][1])
	assert.Equal(t, "ticket", rows[1][2])
	assert.Equal(t, "2", rows[1][3])
	assert.Equal(t, "960.00", rows[1][4])
	assert.Equal(t, "25", rows[1][5])
	assert.Equal(t, "240.00", rows[1][6])
	assert.Equal(t, "1200.00", rows[1][7])
	assert.Equal(t, "web", rows[1][8])

	// malicious item name survives round-trip with the formula guard
	assert.Equal(t, "'=SUM(A1)", rows[2][1])
}

func TestSalesCSVEmpty(t *testing.T) {
	data, err := SalesCSV(nil)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 1)
}

func TestAccountingTicketsCSV(t *testing.T) {
	sales := []ledger.TicketSale{
		sale("Dagspass", ledger.CategoryTicket, 2, "480", "600", decPtr("0.25")),
		sale("Dagspass", ledger.CategoryTicket, 1, "480", "600", decPtr("0.25")),
		sale("Festivalpass", ledger.CategoryTicket, 1, "1200", "1500", decPtr("0.25")),
	}

	data, err := AccountingTicketsCSV(sales)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Dagspass", "3", "1440.00", "360.00", "1800.00"}, rows[1])
	assert.Equal(t, []string{"Festivalpass", "1", "1200.00", "300.00", "1500.00"}, rows[2])
	assert.Equal(t, []string{"SUM", "4", "2640.00", "660.00", "3300.00"}, rows[3])
}

func TestVATSummaryCSV(t *testing.T) {
	buckets := ledger.VATBuckets([]ledger.TaxLine{
		{ExVAT: dec("1000"), Rate: decPtr("0.25"), Count: 2},
		{ExVAT: dec("200"), Rate: decPtr("0.15"), Count: 1},
	})

	data, err := VATSummaryCSV(buckets)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"25 %", "1000.00", "250.00", "1250.00", "2"}, rows[1])
	assert.Equal(t, []string{"15 %", "200.00", "30.00", "230.00", "1"}, rows[2])
}

func TestEconomyCSV(t *testing.T) {
	lines := []finance.CategoryLine{
		{Kind: finance.KindIncome, Category: "Billetter", Budget: dec("100000"), Actual: dec("112000")},
		{Kind: finance.KindExpense, Category: "Artister", Budget: dec("80000"), Actual: dec("75000")},
	}

	data, err := EconomyCSV(lines)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Inntekt", "Billetter", "100000.00", "112000.00", "12000.00"}, rows[1])
	assert.Equal(t, []string{"Kostnad", "Artister", "80000.00", "75000.00", "'-5000.00"}, rows[2])
}

func TestFullSummaryCSV(t *testing.T) {
	data, err := FullSummaryCSV(FullSummaryData{
		Categories: []finance.CategoryLine{
			{Kind: finance.KindIncome, Category: "Billetter", Budget: dec("1000"), Actual: dec("1100")},
			{Kind: finance.KindExpense, Category: "Leie", Budget: dec("500"), Actual: dec("600")},
		},
		Sponsors: []sponsor.Sponsor{
			{Name: "Fjellbanken ASA", Status: sponsor.StatusSigned, Amount: dec("250000")},
			{Name: "Bryggeriet AS", Status: sponsor.StatusContacted, Amount: dec("80000")},
		},
		Summary: finance.EconomySummary{
			IncomeTotal:  dec("1100"),
			ExpenseTotal: dec("600"),
			Result:       dec("500"),
		},
	})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	last := rows[len(rows)-1]
	assert.Equal(t, "RESULTAT", last[1])
	assert.Equal(t, "500.00", last[3])

	// sponsor block sits between the categories and the totals
	assert.Equal(t, []string{"Sponsor", "Status", "", "Beløp"}, rows[4])
	assert.Equal(t, []string{"Fjellbanken ASA", "Signert", "", "250000.00"}, rows[5])
	assert.Equal(t, []string{"Bryggeriet AS", "Kontaktet", "", "80000.00"}, rows[6])
}

func TestFullSummaryCSVWithoutSponsors(t *testing.T) {
	data, err := FullSummaryCSV(FullSummaryData{
		Summary: finance.EconomySummary{
			IncomeTotal:  dec("0"),
			ExpenseTotal: dec("0"),
			Result:       dec("0"),
		},
	})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	for _, row := range rows {
		assert.NotEqual(t, "Sponsor", row[0], "sponsor block must be omitted when there are none")
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 7, 1, 10, 30, 0, 0, time.UTC)
	got := Filename("salgsrapport", "storefjell", at, "csv")
	assert.Equal(t, "salgsrapport-storefjell-2026-07-01.csv", got)
	assert.False(t, strings.Contains(got, " "))
}
