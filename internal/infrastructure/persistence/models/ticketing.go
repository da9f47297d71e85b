package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/festivo/backend/internal/domain/ticketing"
)

// SyncLogModel is the persistence model for ticket provider sync runs
type SyncLogModel struct {
	BaseModel
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	SyncedAt      time.Time `gorm:"not null;index"`
	RecordsSynced int       `gorm:"not null;default:0"`
	Status        string    `gorm:"not null"`
	ErrorMessage  string
}

// TableName returns the table name for SyncLogModel
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the model to a domain sync log
func (m *SyncLogModel) ToDomain() ticketing.SyncLog {
	return ticketing.SyncLog{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		SyncedAt:      m.SyncedAt,
		RecordsSynced: m.RecordsSynced,
		Status:        ticketing.SyncStatus(m.Status),
		ErrorMessage:  m.ErrorMessage,
	}
}

// FromDomain populates the model from a domain sync log
func (m *SyncLogModel) FromDomain(l *ticketing.SyncLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TenantID = l.TenantID
	m.SyncedAt = l.SyncedAt
	m.RecordsSynced = l.RecordsSynced
	m.Status = string(l.Status)
	m.ErrorMessage = l.ErrorMessage
}
