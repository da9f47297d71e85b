package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/festivo/backend/internal/domain/ticketing"
)

// newMockSyncLogRepository creates a GormSyncLogRepository with a mocked SQL connection
func newMockSyncLogRepository(t *testing.T) (*GormSyncLogRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSyncLogRepository(gormDB), mock, mockDB
}

func TestGormSyncLogRepository_LastSuccessfulAt(t *testing.T) {
	t.Run("returns latest successful run", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncLogRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		syncedAt := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "synced_at", "records_synced", "status", "error_message"}).
			AddRow(uuid.New(), tenantID, syncedAt, 120, "success", "")

		mock.ExpectQuery(`SELECT \* FROM "sync_logs" WHERE tenant_id = \$1 AND status = \$2 ORDER BY synced_at DESC,.* LIMIT .*`).
			WithArgs(tenantID, "success", 1).
			WillReturnRows(rows)

		got, err := repo.LastSuccessfulAt(context.Background(), tenantID)
		require.NoError(t, err)
		assert.True(t, got.Equal(syncedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to the epoch watermark when never synced", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncLogRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sync_logs"`).
			WithArgs(tenantID, "success", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		got, err := repo.LastSuccessfulAt(context.Background(), tenantID)
		require.NoError(t, err)
		assert.True(t, got.Equal(ticketing.WatermarkEpoch))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSyncLogRepository_Append(t *testing.T) {
	repo, mock, mockDB := newMockSyncLogRepository(t)
	defer mockDB.Close()

	log := ticketing.NewSyncLog(uuid.New(), time.Now(), 50, ticketing.SyncSuccess, "")

	mock.ExpectExec(`INSERT INTO "sync_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), log)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
