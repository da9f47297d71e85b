// Package ticketsync pulls orders from the external ticket provider into the
// local sales ledger.
package ticketsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/festivo/backend/internal/domain/shared"
	"github.com/festivo/backend/internal/domain/ticketing"
	"github.com/festivo/backend/internal/infrastructure/cache"
	"github.com/festivo/backend/internal/infrastructure/config"
	"github.com/festivo/backend/internal/infrastructure/logger"
	"github.com/festivo/backend/internal/infrastructure/telemetry"
)

var hundred = decimal.NewFromInt(100)

// fbKeywords classify a sale line as food/beverage
var fbKeywords = []string{"food", "mat", "drikke", "beverage"}

// classifyLine buckets a line as fb or ticket by the provider's category
// text. Lines without a category fall back to the item name, so "Matbillett"
// still lands in fb when the provider sends no category at all.
func classifyLine(category, itemName string) ledger.ItemCategory {
	text := category
	if text == "" {
		text = itemName
	}
	lower := strings.ToLower(text)
	for _, kw := range fbKeywords {
		if strings.Contains(lower, kw) {
			return ledger.CategoryFB
		}
	}
	return ledger.CategoryTicket
}

// SyncService runs the incremental provider sync, one tenant at a time.
// It is driven both by the background scheduler and by the manual HTTP
// trigger; both paths share syncTenant.
type SyncService struct {
	festivalRepo identity.FestivalRepository
	saleRepo     ledger.TicketSaleRepository
	syncLogRepo  ticketing.SyncLogRepository
	client       ticketing.OrderClient
	cacheStore   cache.Store
	cfg          config.SyncConfig
	pageSize     int
	logger       *zap.Logger
	now          func() time.Time
}

// NewSyncService creates the sync service with its dependencies
func NewSyncService(
	festivalRepo identity.FestivalRepository,
	saleRepo ledger.TicketSaleRepository,
	syncLogRepo ticketing.SyncLogRepository,
	client ticketing.OrderClient,
	cacheStore cache.Store,
	cfg config.SyncConfig,
	pageSize int,
	logger *zap.Logger,
) *SyncService {
	if pageSize <= 0 {
		pageSize = 200
	}
	return &SyncService{
		festivalRepo: festivalRepo,
		saleRepo:     saleRepo,
		syncLogRepo:  syncLogRepo,
		client:       client,
		cacheStore:   cacheStore,
		cfg:          cfg,
		pageSize:     pageSize,
		logger:       logger,
		now:          time.Now,
	}
}

// SyncAll sweeps every festival that has provider credentials configured.
// Tenants run sequentially, each under its own timeout; one tenant's failure
// never stops the sweep.
func (s *SyncService) SyncAll(ctx context.Context) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "ticketsync", "sync_all")
	defer span.End()

	festivals, err := s.festivalRepo.FindWithTicketProvider(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("list festivals for sync: %w", err)
	}

	failed := 0
	for i := range festivals {
		f := &festivals[i]

		tenantCtx, cancel := context.WithTimeout(ctx, s.cfg.TenantTimeout)
		records, err := s.syncTenant(tenantCtx, f)
		cancel()

		if err != nil {
			failed++
			s.logger.Error("Tenant sync failed",
				zap.String("tenant_id", f.ID.String()),
				zap.String("slug", f.Slug),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Tenant sync completed",
			zap.String("tenant_id", f.ID.String()),
			zap.String("slug", f.Slug),
			zap.Int("records", records),
		)
	}

	if failed > 0 {
		err := fmt.Errorf("sync sweep: %d of %d tenants failed", failed, len(festivals))
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// SyncTenant runs one tenant's sync on demand. Returns the number of records
// merged into the ledger.
func (s *SyncService) SyncTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	festival, err := s.festivalRepo.FindByID(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	if festival.TicketProviderToken == "" {
		return 0, shared.NewDomainError("SYNC_NOT_CONFIGURED", "festival has no ticket provider token")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TenantTimeout)
	defer cancel()
	return s.syncTenant(ctx, festival)
}

// syncTenant fetches every order page since the tenant's watermark, flattens
// the lines and merges them into the ledger. It always appends a sync log
// row, success or error.
func (s *SyncService) syncTenant(ctx context.Context, festival *identity.Festival) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ticketsync", "sync_tenant",
		attribute.String("tenant.id", festival.ID.String()),
		attribute.String("tenant.slug", festival.Slug),
	)
	defer span.End()

	// tag the run's logs and SQL traces with the tenant being synced
	ctx, _ = logger.WithFestivalSlug(ctx, s.logger, festival.Slug)

	startedAt := s.now()

	since, err := s.syncLogRepo.LastSuccessfulAt(ctx, festival.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, fmt.Errorf("read sync watermark: %w", err)
	}

	total := 0
	pending := make([]ledger.TicketSale, 0, s.cfg.BatchSize)

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := s.saleRepo.UpsertBatch(ctx, pending); err != nil {
			return fmt.Errorf("upsert sales batch: %w", err)
		}
		total += len(pending)
		pending = pending[:0]
		return nil
	}

	for page := 1; ; page++ {
		orders, err := s.client.FetchOrders(ctx, festival.TicketProviderToken, since, page, s.pageSize)
		if err != nil {
			s.appendLog(ctx, festival.ID, startedAt, total, ticketing.SyncError, err.Error())
			telemetry.RecordError(span, err)
			return total, fmt.Errorf("fetch orders page %d: %w", page, err)
		}
		if len(orders) == 0 {
			break
		}

		for i := range orders {
			pending = append(pending, s.flattenOrder(festival.ID, &orders[i], startedAt)...)
			for len(pending) >= s.cfg.BatchSize {
				batch := pending[:s.cfg.BatchSize]
				rest := append([]ledger.TicketSale(nil), pending[s.cfg.BatchSize:]...)
				if err := s.saleRepo.UpsertBatch(ctx, batch); err != nil {
					s.appendLog(ctx, festival.ID, startedAt, total, ticketing.SyncError, err.Error())
					telemetry.RecordError(span, err)
					return total, fmt.Errorf("upsert sales batch: %w", err)
				}
				total += len(batch)
				pending = rest
			}
		}
	}

	if err := flush(); err != nil {
		s.appendLog(ctx, festival.ID, startedAt, total, ticketing.SyncError, err.Error())
		telemetry.RecordError(span, err)
		return total, err
	}

	s.appendLog(ctx, festival.ID, startedAt, total, ticketing.SyncSuccess, "")
	s.invalidateReports(ctx, festival.ID)

	span.SetAttributes(attribute.Int("sync.records", total))
	return total, nil
}

// flattenOrder turns one provider order into ledger rows, one per line.
// Provider prices are gross; the ex-VAT unit price is gross minus VAT, and
// the percentage rate becomes a fraction.
func (s *SyncService) flattenOrder(tenantID uuid.UUID, order *ticketing.ProviderOrder, syncedAt time.Time) []ledger.TicketSale {
	sales := make([]ledger.TicketSale, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]

		var rate *decimal.Decimal
		if line.VATRatePct != nil {
			r := line.VATRatePct.Div(hundred)
			rate = &r
		}
		unitVAT := line.UnitVAT

		sales = append(sales, ledger.TicketSale{
			TenantEntity: shared.NewTenantEntity(tenantID),
			ExternalID:   fmt.Sprintf("%s-%s", order.ID, line.ID),
			ItemName:     line.ItemName,
			Category:     classifyLine(line.Category, line.ItemName),
			Quantity:     line.Quantity,
			PriceExVAT:   line.UnitGross.Sub(line.UnitVAT),
			VATRate:      rate,
			VATAmount:    &unitVAT,
			PriceIncVAT:  line.UnitGross,
			Channel:      ledger.SaleChannel(order.Channel).OrDefault(),
			SoldAt:       order.CreatedAt,
			SyncedAt:     syncedAt,
		})
	}
	return sales
}

// appendLog records the run outcome. Log failures must not mask the sync
// result, so they are only logged.
func (s *SyncService) appendLog(ctx context.Context, tenantID uuid.UUID, startedAt time.Time, records int, status ticketing.SyncStatus, errMsg string) {
	entry := ticketing.NewSyncLog(tenantID, startedAt, records, status, errMsg)
	if err := s.syncLogRepo.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Error("Failed to append sync log",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}

// invalidateReports drops the tenant's cached report summaries so the next
// read reflects the fresh data
func (s *SyncService) invalidateReports(ctx context.Context, tenantID uuid.UUID) {
	if s.cacheStore == nil {
		return
	}
	if err := s.cacheStore.DeletePrefix(ctx, cache.TenantPrefix(tenantID)); err != nil {
		s.logger.Warn("Failed to invalidate report cache",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}
