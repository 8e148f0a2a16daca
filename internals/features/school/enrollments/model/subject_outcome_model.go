package model

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeSituation is the grading subsystem's verdict per subject. That
// subsystem is the sole writer; here the rows are read-only input to the
// progression engine.
type OutcomeSituation string

const (
	SituationApproved         OutcomeSituation = "approved"
	SituationFailed           OutcomeSituation = "failed"
	SituationFailedAttendance OutcomeSituation = "failed_attendance"
	SituationInProgress       OutcomeSituation = "in_progress"
)

// CountsAsFailed reports whether the situation counts against the
// year-end tolerance.
func (s OutcomeSituation) CountsAsFailed() bool {
	return s == SituationFailed || s == SituationFailedAttendance
}

// SubjectOutcomeModel: one row per (student, subject, academic year).
type SubjectOutcomeModel struct {
	SubjectOutcomeID             uuid.UUID        `json:"subject_outcome_id" gorm:"type:uuid;primaryKey;column:subject_outcome_id"`
	SubjectOutcomeInstitutionID  uuid.UUID        `json:"subject_outcome_institution_id" gorm:"type:uuid;not null;index;column:subject_outcome_institution_id"`
	SubjectOutcomeStudentID      uuid.UUID        `json:"subject_outcome_student_id" gorm:"type:uuid;not null;index;column:subject_outcome_student_id"`
	SubjectOutcomeSubjectID      uuid.UUID        `json:"subject_outcome_subject_id" gorm:"type:uuid;not null;column:subject_outcome_subject_id"`
	SubjectOutcomeAcademicYearID uuid.UUID        `json:"subject_outcome_academic_year_id" gorm:"type:uuid;not null;index;column:subject_outcome_academic_year_id"`
	SubjectOutcomeSituation      OutcomeSituation `json:"subject_outcome_situation" gorm:"type:varchar(30);not null;column:subject_outcome_situation"`

	SubjectOutcomeCreatedAt time.Time `json:"subject_outcome_created_at" gorm:"column:subject_outcome_created_at;autoCreateTime"`
	SubjectOutcomeUpdatedAt time.Time `json:"subject_outcome_updated_at" gorm:"column:subject_outcome_updated_at;autoUpdateTime"`
}

func (SubjectOutcomeModel) TableName() string { return "subject_outcomes" }
