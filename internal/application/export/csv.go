// Package export renders report data as downloadable CSV and PDF files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/festivo/backend/internal/domain/finance"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/sponsor"
)

// utf8BOM makes Excel detect UTF-8 encoding; Norwegian item names break
// without it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// escapeCell neutralizes spreadsheet formula injection. A leading =, +, -,
// @, tab or carriage return gets a single-quote prefix BEFORE the value is
// handed to the CSV writer for quoting.
func escapeCell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + value
	}
	return value
}

// money renders a decimal with exactly two fraction digits
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ratePct renders an optional VAT fraction as a percent figure, e.g. "25"
func ratePct(r *decimal.Decimal) string {
	if r == nil {
		return ""
	}
	return r.Mul(decimal.NewFromInt(100)).String()
}

// csvWriter wraps encoding/csv with the BOM prefix and cell escaping
type csvWriter struct {
	buf *bytes.Buffer
	w   *csv.Writer
}

func newCSVWriter() *csvWriter {
	buf := &bytes.Buffer{}
	buf.Write(utf8BOM)
	return &csvWriter{buf: buf, w: csv.NewWriter(buf)}
}

func (cw *csvWriter) row(cells ...string) error {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c)
	}
	return cw.w.Write(escaped)
}

func (cw *csvWriter) bytes() ([]byte, error) {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return cw.buf.Bytes(), nil
}

// SalesCSV renders the raw sales ledger, one row per sale line
func SalesCSV(sales []ledger.TicketSale) ([]byte, error) {
	cw := newCSVWriter()
	if err := cw.row("Dato", "Vare", "Kategori", "Antall", "Pris eks. mva", "Mva-sats", "Mva", "Pris inkl. mva", "Kanal"); err != nil {
		return nil, err
	}
	for i := range sales {
		s := &sales[i]
		vat := s.LineVAT()
		if err := cw.row(
			s.SaleDay(),
			s.ItemName,
			string(s.Category),
			fmt.Sprintf("%d", s.Quantity),
			money(s.LineExVAT()),
			ratePct(s.VATRate),
			money(vat),
			money(s.LineIncVAT()),
			string(s.Channel.OrDefault()),
		); err != nil {
			return nil, err
		}
	}
	return cw.bytes()
}

// accountingRow is one per-item line of the accountant export
type accountingRow struct {
	item     string
	quantity int64
	exVAT    decimal.Decimal
	vat      decimal.Decimal
	incVAT   decimal.Decimal
}

// accountingRows groups sales per item name with full VAT detail, ordered by
// item name ascending
func accountingRows(sales []ledger.TicketSale) []accountingRow {
	byItem := make(map[string]*accountingRow)
	names := make([]string, 0)
	for i := range sales {
		s := &sales[i]
		r, ok := byItem[s.ItemName]
		if !ok {
			r = &accountingRow{item: s.ItemName, exVAT: decimal.Zero, vat: decimal.Zero, incVAT: decimal.Zero}
			byItem[s.ItemName] = r
			names = append(names, s.ItemName)
		}
		r.quantity += s.Quantity
		r.exVAT = r.exVAT.Add(s.LineExVAT())
		r.vat = r.vat.Add(s.LineVAT())
		r.incVAT = r.incVAT.Add(s.LineIncVAT())
	}
	sort.Strings(names)

	rows := make([]accountingRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, *byItem[name])
	}
	return rows
}

// AccountingTicketsCSV renders ticket revenue grouped per item with a SUM
// row, shaped for handing to the accountant.
func AccountingTicketsCSV(sales []ledger.TicketSale) ([]byte, error) {
	cw := newCSVWriter()
	if err := cw.row("Vare", "Antall", "Omsetning eks. mva", "Mva", "Omsetning inkl. mva"); err != nil {
		return nil, err
	}

	rows := accountingRows(sales)
	totalQty := int64(0)
	totalEx, totalVAT, totalInc := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range rows {
		r := &rows[i]
		if err := cw.row(r.item, fmt.Sprintf("%d", r.quantity), money(r.exVAT), money(r.vat), money(r.incVAT)); err != nil {
			return nil, err
		}
		totalQty += r.quantity
		totalEx = totalEx.Add(r.exVAT)
		totalVAT = totalVAT.Add(r.vat)
		totalInc = totalInc.Add(r.incVAT)
	}

	if err := cw.row("SUM", fmt.Sprintf("%d", totalQty), money(totalEx), money(totalVAT), money(totalInc)); err != nil {
		return nil, err
	}
	return cw.bytes()
}

// VATSummaryCSV renders one row per VAT rate bucket, highest rate first
func VATSummaryCSV(buckets []ledger.VATBucket) ([]byte, error) {
	cw := newCSVWriter()
	if err := cw.row("Mva-sats", "Grunnlag eks. mva", "Mva", "Sum inkl. mva", "Antall linjer"); err != nil {
		return nil, err
	}
	for i := range buckets {
		b := &buckets[i]
		rate := b.Rate
		if err := cw.row(
			rate.Mul(decimal.NewFromInt(100)).String()+" %",
			money(b.ExVAT),
			money(b.VATAmount),
			money(b.IncVAT),
			fmt.Sprintf("%d", b.Count),
		); err != nil {
			return nil, err
		}
	}
	return cw.bytes()
}

// EconomyCSV renders budget against actuals per category, income first
func EconomyCSV(lines []finance.CategoryLine) ([]byte, error) {
	cw := newCSVWriter()
	if err := cw.row("Type", "Kategori", "Budsjett", "Regnskap", "Avvik"); err != nil {
		return nil, err
	}
	for i := range lines {
		l := &lines[i]
		kind := "Inntekt"
		if l.Kind == finance.KindExpense {
			kind = "Kostnad"
		}
		if err := cw.row(kind, l.Category, money(l.Budget), money(l.Actual), money(l.Actual.Sub(l.Budget))); err != nil {
			return nil, err
		}
	}
	return cw.bytes()
}

// FullSummaryData is the input to the combined annual export
type FullSummaryData struct {
	Categories []finance.CategoryLine
	Sponsors   []sponsor.Sponsor
	Summary    finance.EconomySummary
}

// FullSummaryCSV renders the full economy, the sponsor agreements and the
// RESULTAT bottom line
func FullSummaryCSV(data FullSummaryData) ([]byte, error) {
	cw := newCSVWriter()
	if err := cw.row("Type", "Kategori", "Budsjett", "Regnskap"); err != nil {
		return nil, err
	}
	for i := range data.Categories {
		l := &data.Categories[i]
		kind := "Inntekt"
		if l.Kind == finance.KindExpense {
			kind = "Kostnad"
		}
		if err := cw.row(kind, l.Category, money(l.Budget), money(l.Actual)); err != nil {
			return nil, err
		}
	}

	if len(data.Sponsors) > 0 {
		if err := cw.row("", "", "", ""); err != nil {
			return nil, err
		}
		if err := cw.row("Sponsor", "Status", "", "Beløp"); err != nil {
			return nil, err
		}
		for i := range data.Sponsors {
			sp := &data.Sponsors[i]
			if err := cw.row(sp.Name, statusLabel(sp.Status), "", money(sp.Amount)); err != nil {
				return nil, err
			}
		}
	}

	if err := cw.row("", "", "", ""); err != nil {
		return nil, err
	}
	if err := cw.row("", "Sum inntekter", "", money(data.Summary.IncomeTotal)); err != nil {
		return nil, err
	}
	if err := cw.row("", "Sum kostnader", "", money(data.Summary.ExpenseTotal)); err != nil {
		return nil, err
	}
	if err := cw.row("", "RESULTAT", "", money(data.Summary.Result)); err != nil {
		return nil, err
	}
	return cw.bytes()
}

// Filename builds a download filename like "salgsrapport-storefjell-2026-07-01.csv"
func Filename(kind, tenantSlug string, at time.Time, ext string) string {
	return strings.Join([]string{kind, tenantSlug, at.Format("2006-01-02")}, "-") + "." + ext
}
