package export

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/domain/finance"
	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/sponsor"
	"github.com/festivo/backend/internal/infrastructure/storage"
	"github.com/festivo/backend/internal/infrastructure/telemetry"
)

const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

// Artifact is one generated download
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService generates downloadable reports and archives a copy of each
// artifact when a bucket is configured. Archive failures are logged and
// never fail the download.
type ExportService struct {
	saleRepo     ledger.TicketSaleRepository
	entryRepo    finance.EntryRepository
	sponsorRepo  sponsor.SponsorRepository
	festivalRepo identity.FestivalRepository
	artifacts    storage.ArtifactStore
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService creates the export service with its dependencies
func NewExportService(
	saleRepo ledger.TicketSaleRepository,
	entryRepo finance.EntryRepository,
	sponsorRepo sponsor.SponsorRepository,
	festivalRepo identity.FestivalRepository,
	artifacts storage.ArtifactStore,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		saleRepo:     saleRepo,
		entryRepo:    entryRepo,
		sponsorRepo:  sponsorRepo,
		festivalRepo: festivalRepo,
		artifacts:    artifacts,
		logger:       logger,
		now:          time.Now,
	}
}

// SalesCSV exports the raw sales ledger for the tenant
func (s *ExportService) SalesCSV(ctx context.Context, tenantID uuid.UUID, filter ledger.SaleFilter) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "sales_csv",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data, err := SalesCSV(sales)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "salgsrapport", "csv", ContentTypeCSV, data), nil
}

// AccountingCSV exports ticket revenue per item with the SUM row
func (s *ExportService) AccountingCSV(ctx context.Context, tenantID uuid.UUID) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "accounting_csv",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	category := ledger.CategoryTicket
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, ledger.SaleFilter{Category: &category})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data, err := AccountingTicketsCSV(sales)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "billettregnskap", "csv", ContentTypeCSV, data), nil
}

// VATCSV exports the VAT summary across sales, income and expenses
func (s *ExportService) VATCSV(ctx context.Context, tenantID uuid.UUID) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "vat_csv",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, ledger.SaleFilter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, finance.EntryFilter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	lines := ledger.TaxLinesFromSales(sales)
	lines = append(lines, finance.TaxLines(entries, finance.KindIncome)...)
	lines = append(lines, finance.TaxLines(entries, finance.KindExpense)...)

	data, err := VATSummaryCSV(ledger.VATBuckets(lines))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "mva-oppsummering", "csv", ContentTypeCSV, data), nil
}

// EconomyCSV exports budget versus actuals per category
func (s *ExportService) EconomyCSV(ctx context.Context, tenantID uuid.UUID) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "economy_csv",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, entries, err := s.loadEconomy(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data, err := EconomyCSV(finance.BudgetActualByCategory(entries))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "budsjett-regnskap", "csv", ContentTypeCSV, data), nil
}

// FullSummaryCSV exports the full economy with the RESULTAT row
func (s *ExportService) FullSummaryCSV(ctx context.Context, tenantID uuid.UUID) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "full_summary_csv",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, entries, err := s.loadEconomy(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sponsors, err := s.sponsorRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data, err := FullSummaryCSV(FullSummaryData{
		Categories: finance.BudgetActualByCategory(entries),
		Sponsors:   sponsors,
		Summary:    finance.ComputeEconomySummary(entries),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "aarsoppsummering", "csv", ContentTypeCSV, data), nil
}

// SponsorPDF exports the sponsor pipeline report
func (s *ExportService) SponsorPDF(ctx context.Context, tenantID uuid.UUID) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "sponsor_pdf",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sponsors, err := s.sponsorRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data, err := SponsorReportPDF(*festival, sponsors)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "sponsorrapport", "pdf", ContentTypePDF, data), nil
}

// AnnualPDF exports the year-end report
func (s *ExportService) AnnualPDF(ctx context.Context, tenantID uuid.UUID) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "annual_pdf",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, ledger.SaleFilter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, finance.EntryFilter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	sponsors, err := s.sponsorRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	tickets := make([]ledger.TicketSale, 0, len(sales))
	fb := make([]ledger.TicketSale, 0)
	for i := range sales {
		if sales[i].Category == ledger.CategoryFB {
			fb = append(fb, sales[i])
		} else {
			tickets = append(tickets, sales[i])
		}
	}

	now := s.now()
	data, err := AnnualReportPDF(*festival, AnnualReportData{
		Totals:       ledger.Totals(sales, now),
		TicketTotals: ledger.Totals(tickets, now),
		FBTotals:     ledger.Totals(fb, now),
		ByItem:       ledger.GroupByItem(sales),
		VATBuckets:   ledger.VATBuckets(ledger.TaxLinesFromSales(sales)),
		Categories:   finance.BudgetActualByCategory(entries),
		Summary:      finance.ComputeEconomySummary(entries),
		Sponsors:     sponsors,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.finish(ctx, festival, "aarsrapport", "pdf", ContentTypePDF, data), nil
}

func (s *ExportService) loadEconomy(ctx context.Context, tenantID uuid.UUID) (*identity.Festival, []finance.Entry, error) {
	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, finance.EntryFilter{})
	if err != nil {
		return nil, nil, err
	}
	return festival, entries, nil
}

// finish names the artifact and archives a copy. The download succeeds even
// when the archive upload does not.
func (s *ExportService) finish(ctx context.Context, festival *identity.Festival, kind, ext, contentType string, data []byte) *Artifact {
	artifact := &Artifact{
		Filename:    Filename(kind, festival.Slug, s.now(), ext),
		ContentType: contentType,
		Data:        data,
	}

	if s.artifacts != nil {
		if location, err := s.artifacts.Put(ctx, festival.Slug, artifact.Filename, data, contentType); err != nil {
			s.logger.Warn("Export archive upload failed",
				zap.String("tenant_slug", festival.Slug),
				zap.String("filename", artifact.Filename),
				zap.Error(err),
			)
		} else if location != "" {
			s.logger.Debug("Export archived",
				zap.String("location", location),
			)
		}
	}
	return artifact
}
