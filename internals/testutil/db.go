package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditModel "academico_backend/internals/features/audit/model"
	instModel "academico_backend/internals/features/institutions/model"
	academicsModel "academico_backend/internals/features/school/academics/model"
	enrollModel "academico_backend/internals/features/school/enrollments/model"
	wfModel "academico_backend/internals/features/school/workflow/model"
	teacherModel "academico_backend/internals/features/users/teachers/model"
)

// OpenTestDB gives each test an isolated in-memory database with the
// full schema migrated. Single connection, otherwise sqlite's :memory:
// databases drift apart per connection.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&instModel.InstitutionModel{},
		&instModel.ProgressionSettingsModel{},
		&teacherModel.TeacherEntityModel{},
		&academicsModel.AcademicYearModel{},
		&academicsModel.ClassLevelModel{},
		&enrollModel.YearlyEnrollmentModel{},
		&enrollModel.SubjectOutcomeModel{},
		&wfModel.CalendarEventModel{},
		&wfModel.TeachingPlanModel{},
		&wfModel.AssessmentModel{},
		&auditModel.AuditLogModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
