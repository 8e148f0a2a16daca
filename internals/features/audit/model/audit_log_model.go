package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogModel is append-only: rows are created, never updated or
// deleted. Before/After hold JSON snapshots of the touched entity.
type AuditLogModel struct {
	AuditLogID            uuid.UUID      `json:"audit_log_id" gorm:"type:uuid;primaryKey;column:audit_log_id"`
	AuditLogInstitutionID uuid.UUID      `json:"audit_log_institution_id" gorm:"type:uuid;not null;index;column:audit_log_institution_id"`
	AuditLogModule        string         `json:"audit_log_module" gorm:"type:varchar(60);not null;column:audit_log_module"`
	AuditLogEntity        string         `json:"audit_log_entity" gorm:"type:varchar(60);not null;column:audit_log_entity"`
	AuditLogEntityID      uuid.UUID      `json:"audit_log_entity_id" gorm:"type:uuid;not null;index;column:audit_log_entity_id"`
	AuditLogActorID       uuid.UUID      `json:"audit_log_actor_id" gorm:"type:uuid;not null;column:audit_log_actor_id"`
	AuditLogBefore        datatypes.JSON `json:"audit_log_before,omitempty" gorm:"column:audit_log_before"`
	AuditLogAfter         datatypes.JSON `json:"audit_log_after,omitempty" gorm:"column:audit_log_after"`
	AuditLogNote          *string        `json:"audit_log_note,omitempty" gorm:"type:text;column:audit_log_note"`
	AuditLogCreatedAt     time.Time      `json:"audit_log_created_at" gorm:"column:audit_log_created_at;autoCreateTime"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
