package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "academico_backend/internals/features/audit/model"
)

// Event is what business code hands the sink. Before/After take any
// serializable value; marshal failures degrade to a null snapshot rather
// than failing the record.
type Event struct {
	Module        string
	Entity        string
	EntityID      uuid.UUID
	ActorID       uuid.UUID
	InstitutionID uuid.UUID
	Before        any
	After         any
	Note          string
}

// Sink records state changes and security-relevant decisions. Record is
// fire-and-forget from the caller's point of view: it never returns an
// error, because a broken audit trail must not abort the business write
// that triggered it.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

const (
	failureWindow    = 60 * time.Second
	failureThreshold = 5
)

// GormSink writes audit rows through the given DB handle. Repeated write
// failures inside a short window escalate to an operational alert line,
// once per window.
type GormSink struct {
	DB *gorm.DB

	mu           sync.Mutex
	windowStart  time.Time
	failureCount int
	alerted      bool
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{DB: db}
}

func (s *GormSink) Record(ctx context.Context, ev Event) {
	row := auditModel.AuditLogModel{
		AuditLogID:            uuid.New(),
		AuditLogInstitutionID: ev.InstitutionID,
		AuditLogModule:        ev.Module,
		AuditLogEntity:        ev.Entity,
		AuditLogEntityID:      ev.EntityID,
		AuditLogActorID:       ev.ActorID,
		AuditLogBefore:        marshalSnapshot(ev.Before),
		AuditLogAfter:         marshalSnapshot(ev.After),
	}
	if ev.Note != "" {
		note := ev.Note
		row.AuditLogNote = &note
	}

	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[ERROR] AUDIT_WRITE_FAILED module=%s entity=%s entity_id=%s: %v",
			ev.Module, ev.Entity, ev.EntityID, err)
		s.trackFailure()
	}
}

func (s *GormSink) trackFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.windowStart) > failureWindow {
		s.windowStart = now
		s.failureCount = 0
		s.alerted = false
	}
	s.failureCount++
	if s.failureCount >= failureThreshold && !s.alerted {
		s.alerted = true
		log.Printf("[ALERT] audit sink failing repeatedly: %d failures within %s",
			s.failureCount, failureWindow)
	}
}

// FailuresInWindow exposes the counter for operational checks.
func (s *GormSink) FailuresInWindow() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.windowStart) > failureWindow {
		return 0
	}
	return s.failureCount
}

func marshalSnapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		log.Printf("[WARN] audit snapshot marshal failed: %v", err)
		return nil
	}
	return datatypes.JSON(b)
}
