package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditModel "academico_backend/internals/features/audit/model"
	"academico_backend/internals/testutil"
)

func TestGormSink_RecordWritesRow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	sink := NewGormSink(db)

	entityID := uuid.New()
	sink.Record(context.Background(), Event{
		Module:        "progression",
		Entity:        "yearly_enrollment",
		EntityID:      entityID,
		ActorID:       uuid.New(),
		InstitutionID: uuid.New(),
		Before:        map[string]string{"status": "draft"},
		After:         map[string]string{"status": "submitted"},
		Note:          "test write",
	})

	var row auditModel.AuditLogModel
	require.NoError(t, db.Where("audit_log_entity_id = ?", entityID).First(&row).Error)
	assert.Equal(t, "progression", row.AuditLogModule)
	assert.Contains(t, string(row.AuditLogBefore), "draft")
	assert.Contains(t, string(row.AuditLogAfter), "submitted")
	require.NotNil(t, row.AuditLogNote)
	assert.Equal(t, "test write", *row.AuditLogNote)
	assert.Equal(t, 0, sink.FailuresInWindow())
}

func TestGormSink_NilSnapshotsAndEmptyNote(t *testing.T) {
	db := testutil.OpenTestDB(t)
	sink := NewGormSink(db)

	entityID := uuid.New()
	sink.Record(context.Background(), Event{
		Module:   "teachers",
		Entity:   "teacher_entity",
		EntityID: entityID,
		ActorID:  uuid.New(),
	})

	var row auditModel.AuditLogModel
	require.NoError(t, db.Where("audit_log_entity_id = ?", entityID).First(&row).Error)
	assert.Nil(t, row.AuditLogNote)
	assert.Empty(t, row.AuditLogBefore)
}

func TestGormSink_FailuresNeverPropagateAndAreCounted(t *testing.T) {
	db := testutil.OpenTestDB(t)
	sink := NewGormSink(db)

	// break the sink's table; Record must swallow every failure
	require.NoError(t, db.Migrator().DropTable(&auditModel.AuditLogModel{}))

	for i := 0; i < failureThreshold+1; i++ {
		sink.Record(context.Background(), Event{
			Module:   "workflow",
			Entity:   "teaching_plan",
			EntityID: uuid.New(),
			ActorID:  uuid.New(),
		})
	}
	assert.Equal(t, failureThreshold+1, sink.FailuresInWindow())
}
