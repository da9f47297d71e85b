// Package report assembles the read-side summaries the portal serves.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/domain/finance"
	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/ticketing"
	"github.com/festivo/backend/internal/infrastructure/cache"
	"github.com/festivo/backend/internal/infrastructure/telemetry"
)

const (
	salesSummaryKey = "sales-summary"
	vatReportKey    = "vat-report"
)

// ReportService computes tenant-scoped summaries over the sales ledger and
// the finance entries. Heavy summaries are cached with a short TTL; the sync
// job invalidates the tenant's prefix after each run.
type ReportService struct {
	saleRepo     ledger.TicketSaleRepository
	entryRepo    finance.EntryRepository
	festivalRepo identity.FestivalRepository
	syncLogRepo  ticketing.SyncLogRepository
	cacheStore   cache.Store
	cacheTTL     time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates the report service with its dependencies
func NewReportService(
	saleRepo ledger.TicketSaleRepository,
	entryRepo finance.EntryRepository,
	festivalRepo identity.FestivalRepository,
	syncLogRepo ticketing.SyncLogRepository,
	cacheStore cache.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		entryRepo:    entryRepo,
		festivalRepo: festivalRepo,
		syncLogRepo:  syncLogRepo,
		cacheStore:   cacheStore,
		cacheTTL:     cacheTTL,
		logger:       logger,
		now:          time.Now,
	}
}

// ===================== Sales Summary =====================

// SalesSummaryResponse is the dashboard payload
type SalesSummaryResponse struct {
	Totals    ledger.SalesTotals     `json:"totals"`
	ByDate    []ledger.DateBucket    `json:"by_date"`
	ByItem    []ledger.ItemBucket    `json:"by_item"`
	ByChannel []ledger.ChannelBucket `json:"by_channel"`
	Forecast  *ledger.Forecast       `json:"forecast,omitempty"`
	LastSync  *time.Time             `json:"last_sync,omitempty"`
}

// SalesSummary returns the dashboard summary for a tenant. The unfiltered
// summary is served from cache when present; filtered queries always hit the
// database.
func (s *ReportService) SalesSummary(ctx context.Context, tenantID uuid.UUID, filter ledger.SaleFilter) (*SalesSummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "sales_summary",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	unfiltered := filter == (ledger.SaleFilter{})
	key := cache.ReportKey(tenantID, salesSummaryKey)

	if unfiltered {
		if cached := s.fromCache(ctx, key, &SalesSummaryResponse{}); cached != nil {
			return cached.(*SalesSummaryResponse), nil
		}
	}

	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	now := s.now()
	byDate := ledger.GroupByDate(sales)
	resp := &SalesSummaryResponse{
		Totals:    ledger.Totals(sales, now),
		ByDate:    byDate,
		ByItem:    ledger.GroupByItem(sales),
		ByChannel: ledger.GroupByChannel(sales),
		Forecast:  ledger.ComputeForecast(byDate, festival.StartsAt, now),
	}

	if lastSync, err := s.syncLogRepo.LastSuccessfulAt(ctx, tenantID); err == nil && lastSync.After(ticketing.WatermarkEpoch) {
		resp.LastSync = &lastSync
	}

	if unfiltered {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// ===================== VAT Report =====================

// VATReportResponse splits the VAT position per source collection
type VATReportResponse struct {
	Sales    []ledger.VATBucket `json:"sales"`
	Income   []ledger.VATBucket `json:"income"`
	Expenses []ledger.VATBucket `json:"expenses"`
}

// VATReport buckets sales, income and expense records by VAT rate
func (s *ReportService) VATReport(ctx context.Context, tenantID uuid.UUID) (*VATReportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "vat_report",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	key := cache.ReportKey(tenantID, vatReportKey)
	if cached := s.fromCache(ctx, key, &VATReportResponse{}); cached != nil {
		return cached.(*VATReportResponse), nil
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

	resp := &VATReportResponse{
		Sales:    ledger.VATBuckets(ledger.TaxLinesFromSales(sales)),
		Income:   ledger.VATBuckets(finance.TaxLines(entries, finance.KindIncome)),
		Expenses: ledger.VATBuckets(finance.TaxLines(entries, finance.KindExpense)),
	}

	s.toCache(ctx, key, resp)
	return resp, nil
}

// ===================== Economy =====================

// EconomyResponse pairs the per-category breakdown with the bottom line
type EconomyResponse struct {
	Categories []finance.CategoryLine `json:"categories"`
	Summary    finance.EconomySummary `json:"summary"`
}

// Economy returns budget versus actuals per category plus totals
func (s *ReportService) Economy(ctx context.Context, tenantID uuid.UUID) (*EconomyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "economy",
		attribute.String("tenant.id", tenantID.String()),
	)
	defer span.End()

	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, finance.EntryFilter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &EconomyResponse{
		Categories: finance.BudgetActualByCategory(entries),
		Summary:    finance.ComputeEconomySummary(entries),
	}, nil
}

// ===================== Sync History =====================

// SyncHistory lists the most recent sync runs for the tenant, newest first
func (s *ReportService) SyncHistory(ctx context.Context, tenantID uuid.UUID, limit int) ([]ticketing.SyncLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.syncLogRepo.FindRecentForTenant(ctx, tenantID, limit)
}

// ===================== Cache plumbing =====================

// fromCache returns the decoded value or nil on miss or decode failure.
// Cache trouble never fails a report; it only costs the recomputation.
func (s *ReportService) fromCache(ctx context.Context, key string, target any) any {
	if s.cacheStore == nil {
		return nil
	}
	data, err := s.cacheStore.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn("Report cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return target
}

func (s *ReportService) toCache(ctx context.Context, key string, value any) {
	if s.cacheStore == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cacheStore.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
