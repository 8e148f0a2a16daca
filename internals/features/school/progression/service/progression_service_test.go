package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditModel "academico_backend/internals/features/audit/model"
	auditService "academico_backend/internals/features/audit/service"
	instModel "academico_backend/internals/features/institutions/model"
	academicsModel "academico_backend/internals/features/school/academics/model"
	enrollModel "academico_backend/internals/features/school/enrollments/model"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
	"academico_backend/internals/testutil"
)

type progressionFixture struct {
	db    *gorm.DB
	scope helperAuth.Scope
	sink  *auditService.GormSink
}

func newProgressionFixture(t *testing.T, academic instModel.AcademicModel) progressionFixture {
	t.Helper()
	db := testutil.OpenTestDB(t)

	inst := instModel.InstitutionModel{
		InstitutionID:            uuid.New(),
		InstitutionName:          "Test Institution",
		InstitutionSlug:          "test-institution",
		InstitutionAcademicModel: academic,
		InstitutionIsActive:      true,
	}
	require.NoError(t, db.Create(&inst).Error)

	return progressionFixture{
		db:    db,
		scope: helperAuth.Scope{InstitutionID: inst.InstitutionID},
		sink:  auditService.NewGormSink(db),
	}
}

func (f progressionFixture) setSettings(t *testing.T, maxFailed int, allowOverride bool) {
	t.Helper()
	require.NoError(t, f.db.Create(&instModel.ProgressionSettingsModel{
		ProgressionSettingsID:                uuid.New(),
		ProgressionSettingsInstitutionID:     f.scope.InstitutionID,
		ProgressionSettingsMaxFailedSubjects: maxFailed,
		ProgressionSettingsAllowOverride:     allowOverride,
	}).Error)
}

func (f progressionFixture) addClassLevel(t *testing.T, name string, ordinal int) uuid.UUID {
	t.Helper()
	level := academicsModel.ClassLevelModel{
		ClassLevelID:            uuid.New(),
		ClassLevelInstitutionID: f.scope.InstitutionID,
		ClassLevelName:          name,
		ClassLevelOrdinal:       ordinal,
	}
	require.NoError(t, f.db.Create(&level).Error)
	return level.ClassLevelID
}

func (f progressionFixture) addYear(t *testing.T, number int) uuid.UUID {
	t.Helper()
	year := academicsModel.AcademicYearModel{
		AcademicYearID:            uuid.New(),
		AcademicYearInstitutionID: f.scope.InstitutionID,
		AcademicYearNumber:        number,
		AcademicYearState:         academicsModel.AcademicYearClosed,
	}
	require.NoError(t, f.db.Create(&year).Error)
	return year.AcademicYearID
}

func (f progressionFixture) addOutcomes(t *testing.T, studentID, yearID uuid.UUID, situations ...enrollModel.OutcomeSituation) {
	t.Helper()
	for _, s := range situations {
		require.NoError(t, f.db.Create(&enrollModel.SubjectOutcomeModel{
			SubjectOutcomeID:             uuid.New(),
			SubjectOutcomeInstitutionID:  f.scope.InstitutionID,
			SubjectOutcomeStudentID:      studentID,
			SubjectOutcomeSubjectID:      uuid.New(),
			SubjectOutcomeAcademicYearID: yearID,
			SubjectOutcomeSituation:      s,
		}).Error)
	}
}

func (f progressionFixture) addEnrollment(t *testing.T, studentID, yearID uuid.UUID, label string, classLevelID *uuid.UUID, status *enrollModel.FinalStatus) uuid.UUID {
	t.Helper()
	e := enrollModel.YearlyEnrollmentModel{
		YearlyEnrollmentID:             uuid.New(),
		YearlyEnrollmentInstitutionID:  f.scope.InstitutionID,
		YearlyEnrollmentStudentID:      studentID,
		YearlyEnrollmentAcademicYearID: yearID,
		YearlyEnrollmentCourseID:       uuid.New(),
		YearlyEnrollmentPlacementLabel: label,
		YearlyEnrollmentClassLevelID:   classLevelID,
		YearlyEnrollmentFinalStatus:    status,
	}
	require.NoError(t, f.db.Create(&e).Error)
	return e.YearlyEnrollmentID
}

func failedStatus() *enrollModel.FinalStatus {
	s := enrollModel.FinalStatusFailed
	return &s
}

func TestYearEndStatus_WithinTolerance(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	f.setSettings(t, 1, false)

	student := uuid.New()
	year := f.addYear(t, 2025)
	f.addOutcomes(t, student, year,
		enrollModel.SituationApproved,
		enrollModel.SituationApproved,
		enrollModel.SituationApproved,
		enrollModel.SituationApproved,
		enrollModel.SituationFailed,
	)

	got, err := ComputeYearEndStatus(context.Background(), f.db, f.scope, student, year)
	require.NoError(t, err)
	assert.Equal(t, enrollModel.FinalStatusApproved, got.Status)
	assert.Equal(t, 1, got.FailedCount)
	assert.Equal(t, 5, got.TotalCount)
	assert.Equal(t, 1, got.Tolerance)
}

func TestYearEndStatus_DefaultToleranceIsZero(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	// no settings row on purpose

	student := uuid.New()
	year := f.addYear(t, 2025)
	f.addOutcomes(t, student, year,
		enrollModel.SituationApproved,
		enrollModel.SituationFailedAttendance,
	)

	got, err := ComputeYearEndStatus(context.Background(), f.db, f.scope, student, year)
	require.NoError(t, err)
	assert.Equal(t, enrollModel.FinalStatusFailed, got.Status)
	assert.Equal(t, 1, got.FailedCount)
	assert.Equal(t, 0, got.Tolerance)
}

func TestYearEndStatus_NoOutcomesFailsClosed(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	f.setSettings(t, 3, false)

	got, err := ComputeYearEndStatus(context.Background(), f.db, f.scope, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, enrollModel.FinalStatusFailed, got.Status)
	assert.Equal(t, 0, got.TotalCount)
}

func TestFinalizeYearEndStatus_PersistsOnceAndAudits(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	f.setSettings(t, 0, false)

	student := uuid.New()
	year := f.addYear(t, 2025)
	f.addEnrollment(t, student, year, "10th Grade", nil, nil)
	f.addOutcomes(t, student, year, enrollModel.SituationApproved, enrollModel.SituationApproved)

	actor := uuid.New()
	got, err := FinalizeYearEndStatus(context.Background(), f.db, f.scope, f.sink, actor, student, year)
	require.NoError(t, err)
	assert.Equal(t, enrollModel.FinalStatusApproved, got.Status)

	var stored enrollModel.YearlyEnrollmentModel
	require.NoError(t, f.db.Where("yearly_enrollment_student_id = ?", student).First(&stored).Error)
	require.NotNil(t, stored.YearlyEnrollmentFinalStatus)
	assert.Equal(t, enrollModel.FinalStatusApproved, *stored.YearlyEnrollmentFinalStatus)

	var audits int64
	require.NoError(t, f.db.Model(&auditModel.AuditLogModel{}).
		Where("audit_log_module = ?", "progression").Count(&audits).Error)
	assert.EqualValues(t, 1, audits)

	// a second finalize returns the stored status and writes nothing new,
	// even if the outcome rows changed underneath
	f.addOutcomes(t, student, year, enrollModel.SituationFailed)
	again, err := FinalizeYearEndStatus(context.Background(), f.db, f.scope, f.sink, actor, student, year)
	require.NoError(t, err)
	assert.Equal(t, enrollModel.FinalStatusApproved, again.Status)

	require.NoError(t, f.db.Model(&auditModel.AuditLogModel{}).
		Where("audit_log_module = ?", "progression").Count(&audits).Error)
	assert.EqualValues(t, 1, audits)
}

func TestSuggestNextPlacement_SecondaryAdvancesTheLadder(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	tenth := f.addClassLevel(t, "10th Grade", 10)
	eleventh := f.addClassLevel(t, "11th Grade", 11)

	prior := enrollModel.YearlyEnrollmentModel{
		YearlyEnrollmentPlacementLabel: "10th Grade",
		YearlyEnrollmentClassLevelID:   &tenth,
	}

	got, err := SuggestNextPlacement(context.Background(), f.db, f.scope, prior,
		enrollModel.FinalStatusApproved, instModel.AcademicModelSecondary)
	require.NoError(t, err)
	assert.Equal(t, "11th Grade", got.Label)
	require.NotNil(t, got.ClassLevelID)
	assert.Equal(t, eleventh, *got.ClassLevelID)
}

func TestSuggestNextPlacement_FailedStaysPut(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	tenth := f.addClassLevel(t, "10th Grade", 10)
	f.addClassLevel(t, "11th Grade", 11)

	prior := enrollModel.YearlyEnrollmentModel{
		YearlyEnrollmentPlacementLabel: "10th Grade",
		YearlyEnrollmentClassLevelID:   &tenth,
	}

	got, err := SuggestNextPlacement(context.Background(), f.db, f.scope, prior,
		enrollModel.FinalStatusFailed, instModel.AcademicModelSecondary)
	require.NoError(t, err)
	assert.Equal(t, "10th Grade", got.Label)
}

func TestSuggestNextPlacement_TopOfLadderStaysPut(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	twelfth := f.addClassLevel(t, "12th Grade", 12)

	prior := enrollModel.YearlyEnrollmentModel{
		YearlyEnrollmentPlacementLabel: "12th Grade",
		YearlyEnrollmentClassLevelID:   &twelfth,
	}

	got, err := SuggestNextPlacement(context.Background(), f.db, f.scope, prior,
		enrollModel.FinalStatusApproved, instModel.AcademicModelSecondary)
	require.NoError(t, err)
	assert.Equal(t, "12th Grade", got.Label)
}

func TestSuggestNextPlacement_HigherParsesLabel(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelHigher)

	prior := enrollModel.YearlyEnrollmentModel{YearlyEnrollmentPlacementLabel: "2nd Year"}
	got, err := SuggestNextPlacement(context.Background(), f.db, f.scope, prior,
		enrollModel.FinalStatusApproved, instModel.AcademicModelHigher)
	require.NoError(t, err)
	assert.Equal(t, "3rd Year", got.Label)
	assert.Nil(t, got.ClassLevelID)

	// 6th year is terminal
	prior.YearlyEnrollmentPlacementLabel = "6th Year"
	got, err = SuggestNextPlacement(context.Background(), f.db, f.scope, prior,
		enrollModel.FinalStatusApproved, instModel.AcademicModelHigher)
	require.NoError(t, err)
	assert.Equal(t, "6th Year", got.Label)
}

func TestValidateNewEnrollment_NoHistoryAllows(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelHigher)

	got, err := ValidateNewEnrollment(context.Background(), f.db, f.scope, ValidateEnrollmentInput{
		StudentID:               uuid.New(),
		RequestedPlacementLabel: "1st Year",
		CourseID:                uuid.New(),
		CallerRoles:             []string{constants.RoleRegistrar},
	})
	require.NoError(t, err)
	assert.True(t, got.Allowed)
}

func TestValidateNewEnrollment_FailedYearBlocksAdvancement(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelHigher)
	f.setSettings(t, 0, false)

	student := uuid.New()
	prior := f.addYear(t, 2024)
	f.addYear(t, 2025)
	f.addEnrollment(t, student, prior, "2nd Year", nil, failedStatus())

	ref := 2025
	got, err := ValidateNewEnrollment(context.Background(), f.db, f.scope, ValidateEnrollmentInput{
		StudentID:               student,
		RequestedPlacementLabel: "3rd Year",
		CourseID:                uuid.New(),
		CallerRoles:             []string{constants.RoleRegistrar},
		ReferenceYearNumber:     &ref,
	})
	require.NoError(t, err)
	assert.False(t, got.Allowed)
	assert.Contains(t, got.Reason, "year")
	assert.False(t, got.OverrideAvailable)
}

func TestValidateNewEnrollment_RepeatAfterFailureAllowed(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelHigher)

	student := uuid.New()
	prior := f.addYear(t, 2024)
	f.addEnrollment(t, student, prior, "2nd Year", nil, failedStatus())

	got, err := ValidateNewEnrollment(context.Background(), f.db, f.scope, ValidateEnrollmentInput{
		StudentID:               student,
		RequestedPlacementLabel: "2nd Year",
		CourseID:                uuid.New(),
		CallerRoles:             []string{constants.RoleRegistrar},
	})
	require.NoError(t, err)
	assert.True(t, got.Allowed)
}

func TestValidateNewEnrollment_OverrideGateMatrix(t *testing.T) {
	cases := []struct {
		name          string
		allowOverride bool
		roles         []string
		requested     bool
		wantAllowed   bool
		wantApplied   bool
	}{
		{"admin override granted", true, []string{constants.RoleAdmin}, true, true, true},
		{"admin without request stays blocked", true, []string{constants.RoleAdmin}, false, false, false},
		{"registrar cannot override", true, []string{constants.RoleRegistrar}, true, false, false},
		{"policy disables override entirely", false, []string{constants.RoleAdmin}, true, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProgressionFixture(t, instModel.AcademicModelHigher)
			f.setSettings(t, 0, tc.allowOverride)

			student := uuid.New()
			prior := f.addYear(t, 2024)
			f.addEnrollment(t, student, prior, "2nd Year", nil, failedStatus())

			got, err := ValidateNewEnrollment(context.Background(), f.db, f.scope, ValidateEnrollmentInput{
				StudentID:               student,
				RequestedPlacementLabel: "3rd Year",
				CourseID:                uuid.New(),
				CallerRoles:             tc.roles,
				OverrideRequested:       tc.requested,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantAllowed, got.Allowed)
			assert.Equal(t, tc.wantApplied, got.OverrideApplied)
			if !tc.wantAllowed {
				assert.Equal(t, tc.allowOverride, got.OverrideAvailable)
			}
		})
	}
}

func TestValidateNewEnrollment_UnparseableLabelsAllow(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelHigher)
	f.setSettings(t, 0, false)

	student := uuid.New()
	prior := f.addYear(t, 2024)
	f.addEnrollment(t, student, prior, "Exchange Program", nil, failedStatus())

	got, err := ValidateNewEnrollment(context.Background(), f.db, f.scope, ValidateEnrollmentInput{
		StudentID:               student,
		RequestedPlacementLabel: "3rd Year",
		CourseID:                uuid.New(),
		CallerRoles:             []string{constants.RoleRegistrar},
	})
	require.NoError(t, err)
	assert.True(t, got.Allowed)
}

func TestCorrectFinalStatus(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)

	student := uuid.New()
	year := f.addYear(t, 2024)
	enrollmentID := f.addEnrollment(t, student, year, "10th Grade", nil, failedStatus())
	actor := uuid.New()

	_, err := CorrectFinalStatus(context.Background(), f.db, f.scope, f.sink,
		actor, enrollmentID, enrollModel.FinalStatusApproved, "")
	require.Error(t, err)
	assert.True(t, helper.IsCode(err, helper.CodeProgressionBlocked))

	corrected, err := CorrectFinalStatus(context.Background(), f.db, f.scope, f.sink,
		actor, enrollmentID, enrollModel.FinalStatusApproved, "grading appeal upheld")
	require.NoError(t, err)
	require.NotNil(t, corrected.YearlyEnrollmentFinalStatus)
	assert.Equal(t, enrollModel.FinalStatusApproved, *corrected.YearlyEnrollmentFinalStatus)

	var audit auditModel.AuditLogModel
	require.NoError(t, f.db.Where("audit_log_entity_id = ?", enrollmentID).First(&audit).Error)
	require.NotNil(t, audit.AuditLogNote)
	assert.Contains(t, *audit.AuditLogNote, "grading appeal upheld")
}

func TestComputeYearEndStatus_IgnoresOtherTenants(t *testing.T) {
	f := newProgressionFixture(t, instModel.AcademicModelSecondary)
	f.setSettings(t, 0, false)

	student := uuid.New()
	year := f.addYear(t, 2025)
	f.addOutcomes(t, student, year, enrollModel.SituationApproved)

	// same student+year under a different institution must stay invisible
	require.NoError(t, f.db.Create(&enrollModel.SubjectOutcomeModel{
		SubjectOutcomeID:             uuid.New(),
		SubjectOutcomeInstitutionID:  uuid.New(),
		SubjectOutcomeStudentID:      student,
		SubjectOutcomeSubjectID:      uuid.New(),
		SubjectOutcomeAcademicYearID: year,
		SubjectOutcomeSituation:      enrollModel.SituationFailed,
	}).Error)

	got, err := ComputeYearEndStatus(context.Background(), f.db, f.scope, student, year)
	require.NoError(t, err)
	assert.Equal(t, enrollModel.FinalStatusApproved, got.Status)
	assert.Equal(t, 1, got.TotalCount)
}
