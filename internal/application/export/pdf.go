package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/festivo/backend/internal/domain/finance"
	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/sponsor"
)

var nbPrinter = message.NewPrinter(language.Norwegian)

// amount renders a monetary value with Norwegian digit grouping and no
// fraction digits, e.g. "1 250 000 NOK"
func amount(d decimal.Decimal, currencyCode string) string {
	f, _ := d.Round(0).Float64()
	return nbPrinter.Sprintf("%v %s", number.Decimal(f, number.MaxFractionDigits(0)), currencyCode)
}

var statusLabels = map[sponsor.Status]string{
	sponsor.StatusContacted: "Kontaktet",
	sponsor.StatusAgreed:    "Avtalt",
	sponsor.StatusSigned:    "Signert",
	sponsor.StatusDelivered: "Levert",
	sponsor.StatusInvoiced:  "Fakturert",
}

func statusLabel(s sponsor.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// pdfDoc wraps fpdf with the shared page setup and the cp1252 translator
// needed for æ, ø and å in the core fonts.
type pdfDoc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFDoc(title string) *pdfDoc {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	return &pdfDoc{pdf: pdf, tr: tr}
}

// ensureSpace starts a new page when fewer than needed millimeters remain
func (d *pdfDoc) ensureSpace(needed float64) {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+needed > pageH-bottom {
		d.pdf.AddPage()
	}
}

func (d *pdfDoc) sectionHeading(text string) {
	d.ensureSpace(18)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(0, 8, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

func (d *pdfDoc) tableHeader(widths []float64, labels []string) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(235, 235, 235)
	for i, label := range labels {
		d.pdf.CellFormat(widths[i], 7, d.tr(label), "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetFont("Helvetica", "", 9)
}

func (d *pdfDoc) tableRow(widths []float64, cells []string, aligns []string) {
	d.ensureSpace(8)
	for i, cell := range cells {
		align := "L"
		if aligns != nil {
			align = aligns[i]
		}
		d.pdf.CellFormat(widths[i], 6, d.tr(cell), "1", 0, align, false, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *pdfDoc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// SponsorReportPDF renders the sponsor pipeline for board meetings: one row
// per sponsor with status and amount, deliverable checklists underneath, and
// a committed total covering agreements at signed or later.
func SponsorReportPDF(festival identity.Festival, sponsors []sponsor.Sponsor) ([]byte, error) {
	doc := newPDFDoc(fmt.Sprintf("Sponsorrapport – %s", festival.Name))

	widths := []float64{55, 25, 30, 35, 35}
	doc.tableHeader(widths, []string{"Sponsor", "Nivå", "Status", "Beløp", "Kontakt"})

	committed := decimal.Zero
	for i := range sponsors {
		s := &sponsors[i]
		doc.tableRow(widths, []string{
			s.Name,
			s.Tier,
			statusLabel(s.Status),
			amount(s.Amount, festival.CurrencyCode),
			s.ContactName,
		}, []string{"L", "L", "L", "R", "L"})

		if s.Status == sponsor.StatusSigned || s.Status == sponsor.StatusDelivered || s.Status == sponsor.StatusInvoiced {
			committed = committed.Add(s.Amount)
		}
	}

	doc.ensureSpace(10)
	doc.pdf.SetFont("Helvetica", "B", 9)
	doc.pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, doc.tr("Signert totalt"), "1", 0, "L", false, 0, "")
	doc.pdf.CellFormat(widths[3], 7, doc.tr(amount(committed, festival.CurrencyCode)), "1", 0, "R", false, 0, "")
	doc.pdf.CellFormat(widths[4], 7, "", "1", 1, "L", false, 0, "")
	doc.pdf.Ln(4)

	for i := range sponsors {
		s := &sponsors[i]
		if len(s.Deliverables) == 0 {
			continue
		}
		doc.sectionHeading(fmt.Sprintf("Motytelser – %s", s.Name))
		doc.pdf.SetFont("Helvetica", "", 9)
		for j := range s.Deliverables {
			dl := &s.Deliverables[j]
			mark := "[ ]"
			line := dl.Description
			if dl.Delivered {
				mark = "[x]"
				if dl.DeliveredAt != nil {
					line = fmt.Sprintf("%s (levert %s)", dl.Description, dl.DeliveredAt.Format("02.01.2006"))
				}
			}
			doc.ensureSpace(7)
			doc.pdf.CellFormat(0, 5, doc.tr(fmt.Sprintf("%s %s", mark, line)), "", 1, "L", false, 0, "")
		}
		doc.pdf.Ln(2)
	}

	return doc.bytes()
}

// AnnualReportData collects everything the year-end report prints
type AnnualReportData struct {
	Totals       ledger.SalesTotals
	TicketTotals ledger.SalesTotals
	FBTotals     ledger.SalesTotals
	ByItem       []ledger.ItemBucket
	VATBuckets   []ledger.VATBucket
	Categories   []finance.CategoryLine
	Summary      finance.EconomySummary
	Sponsors     []sponsor.Sponsor
}

// AnnualReportPDF renders the year-end report: the ticket and food/beverage
// sales summary, the per-item breakdown, the VAT summary, the
// budget-versus-actual economy with the bottom line and the sponsor table.
func AnnualReportPDF(festival identity.Festival, data AnnualReportData) ([]byte, error) {
	doc := newPDFDoc(fmt.Sprintf("Årsrapport – %s", festival.Name))
	cur := festival.CurrencyCode

	doc.sectionHeading("Salg")
	doc.pdf.SetFont("Helvetica", "", 10)
	doc.pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Billetter: %d stk, %s inkl. mva",
		data.TicketTotals.Tickets, amount(data.TicketTotals.Revenue, cur))), "", 1, "L", false, 0, "")
	doc.pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Mat og drikke: %d stk, %s inkl. mva",
		data.FBTotals.Tickets, amount(data.FBTotals.Revenue, cur))), "", 1, "L", false, 0, "")
	doc.pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Totalt: %d stk, %s inkl. mva",
		data.Totals.Tickets, amount(data.Totals.Revenue, cur))), "", 1, "L", false, 0, "")
	doc.pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Herav mva: %s", amount(data.Totals.VAT, cur))), "", 1, "L", false, 0, "")
	doc.pdf.Ln(4)

	if len(data.ByItem) > 0 {
		doc.sectionHeading("Salg per vare")
		widths := []float64{90, 40, 50}
		doc.tableHeader(widths, []string{"Vare", "Antall", "Omsetning inkl. mva"})
		for i := range data.ByItem {
			b := &data.ByItem[i]
			doc.tableRow(widths, []string{
				b.Item,
				fmt.Sprintf("%d", b.Quantity),
				amount(b.Revenue, cur),
			}, []string{"L", "R", "R"})
		}
		doc.pdf.Ln(4)
	}

	if len(data.VATBuckets) > 0 {
		doc.sectionHeading("Mva-oppsummering")
		widths := []float64{35, 50, 45, 50}
		doc.tableHeader(widths, []string{"Sats", "Grunnlag eks. mva", "Mva", "Sum inkl. mva"})
		for i := range data.VATBuckets {
			b := &data.VATBuckets[i]
			doc.tableRow(widths, []string{
				b.Rate.Mul(decimal.NewFromInt(100)).String() + " %",
				amount(b.ExVAT, cur),
				amount(b.VATAmount, cur),
				amount(b.IncVAT, cur),
			}, []string{"L", "R", "R", "R"})
		}
		doc.pdf.Ln(4)
	}

	doc.sectionHeading("Økonomi")
	widths := []float64{30, 60, 45, 45}
	doc.tableHeader(widths, []string{"Type", "Kategori", "Budsjett", "Regnskap"})
	for i := range data.Categories {
		l := &data.Categories[i]
		kind := "Inntekt"
		if l.Kind == finance.KindExpense {
			kind = "Kostnad"
		}
		doc.tableRow(widths, []string{kind, l.Category, amount(l.Budget, cur), amount(l.Actual, cur)},
			[]string{"L", "L", "R", "R"})
	}

	doc.ensureSpace(24)
	doc.pdf.Ln(2)
	doc.pdf.SetFont("Helvetica", "", 10)
	doc.pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Sum inntekter: %s", amount(data.Summary.IncomeTotal, cur))), "", 1, "L", false, 0, "")
	doc.pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Sum kostnader: %s", amount(data.Summary.ExpenseTotal, cur))), "", 1, "L", false, 0, "")
	doc.pdf.SetFont("Helvetica", "B", 11)
	doc.pdf.CellFormat(0, 8, doc.tr(fmt.Sprintf("RESULTAT: %s", amount(data.Summary.Result, cur))), "", 1, "L", false, 0, "")

	if len(data.Sponsors) > 0 {
		doc.pdf.Ln(4)
		doc.sectionHeading("Sponsorer")
		widths := []float64{75, 40, 65}
		doc.tableHeader(widths, []string{"Sponsor", "Status", "Beløp"})
		for i := range data.Sponsors {
			sp := &data.Sponsors[i]
			doc.tableRow(widths, []string{
				sp.Name,
				statusLabel(sp.Status),
				amount(sp.Amount, cur),
			}, []string{"L", "L", "R"})
		}
	}

	return doc.bytes()
}
