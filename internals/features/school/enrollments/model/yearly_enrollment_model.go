package model

import (
	"time"

	"github.com/google/uuid"
)

// FinalStatus is the computed year-end outcome. Null until the year is
// finalized; immutable afterwards except through the administrative
// correction path, which audits the change.
type FinalStatus string

const (
	FinalStatusApproved FinalStatus = "approved"
	FinalStatusFailed   FinalStatus = "failed"
)

// YearlyEnrollmentModel: one row per (student, academic year).
// PlacementLabel is free text ("10th Grade", "2nd Year"); ClassLevelID is
// the structured ordinal link used by secondary-model institutions.
type YearlyEnrollmentModel struct {
	YearlyEnrollmentID             uuid.UUID   `json:"yearly_enrollment_id" gorm:"type:uuid;primaryKey;column:yearly_enrollment_id"`
	YearlyEnrollmentInstitutionID  uuid.UUID   `json:"yearly_enrollment_institution_id" gorm:"type:uuid;not null;index;column:yearly_enrollment_institution_id"`
	YearlyEnrollmentStudentID      uuid.UUID   `json:"yearly_enrollment_student_id" gorm:"type:uuid;not null;uniqueIndex:uq_yearly_enrollments_student_year;column:yearly_enrollment_student_id"`
	YearlyEnrollmentAcademicYearID uuid.UUID   `json:"yearly_enrollment_academic_year_id" gorm:"type:uuid;not null;uniqueIndex:uq_yearly_enrollments_student_year;column:yearly_enrollment_academic_year_id"`
	YearlyEnrollmentCourseID       uuid.UUID   `json:"yearly_enrollment_course_id" gorm:"type:uuid;not null;column:yearly_enrollment_course_id"`
	YearlyEnrollmentPlacementLabel string      `json:"yearly_enrollment_placement_label" gorm:"type:varchar(120);not null;column:yearly_enrollment_placement_label"`
	YearlyEnrollmentClassLevelID   *uuid.UUID  `json:"yearly_enrollment_class_level_id,omitempty" gorm:"type:uuid;column:yearly_enrollment_class_level_id"`
	YearlyEnrollmentFinalStatus    *FinalStatus `json:"yearly_enrollment_final_status,omitempty" gorm:"type:varchar(20);column:yearly_enrollment_final_status"`

	YearlyEnrollmentCreatedAt time.Time `json:"yearly_enrollment_created_at" gorm:"column:yearly_enrollment_created_at;autoCreateTime"`
	YearlyEnrollmentUpdatedAt time.Time `json:"yearly_enrollment_updated_at" gorm:"column:yearly_enrollment_updated_at;autoUpdateTime"`
}

func (YearlyEnrollmentModel) TableName() string { return "yearly_enrollments" }
