package dto

import (
	"github.com/google/uuid"

	enrollModel "academico_backend/internals/features/school/enrollments/model"
)

type ValidateEnrollmentRequest struct {
	StudentID           uuid.UUID  `json:"student_id" validate:"required"`
	PlacementLabel      string     `json:"placement_label" validate:"required,min=1,max=120"`
	ClassLevelID        *uuid.UUID `json:"class_level_id,omitempty"`
	CourseID            uuid.UUID  `json:"course_id" validate:"required"`
	OverrideRequested   bool       `json:"override_requested"`
	ReferenceYearNumber *int       `json:"reference_year_number,omitempty" validate:"omitempty,min=1900,max=2200"`
}

type CreateEnrollmentRequest struct {
	ValidateEnrollmentRequest
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
}

type EnrollmentResponse struct {
	YearlyEnrollmentID             uuid.UUID  `json:"yearly_enrollment_id"`
	YearlyEnrollmentStudentID      uuid.UUID  `json:"yearly_enrollment_student_id"`
	YearlyEnrollmentAcademicYearID uuid.UUID  `json:"yearly_enrollment_academic_year_id"`
	YearlyEnrollmentCourseID       uuid.UUID  `json:"yearly_enrollment_course_id"`
	YearlyEnrollmentPlacementLabel string     `json:"yearly_enrollment_placement_label"`
	YearlyEnrollmentClassLevelID   *uuid.UUID `json:"yearly_enrollment_class_level_id,omitempty"`
	YearlyEnrollmentFinalStatus    *string    `json:"yearly_enrollment_final_status,omitempty"`
}

func ToEnrollmentResponse(m enrollModel.YearlyEnrollmentModel) EnrollmentResponse {
	resp := EnrollmentResponse{
		YearlyEnrollmentID:             m.YearlyEnrollmentID,
		YearlyEnrollmentStudentID:      m.YearlyEnrollmentStudentID,
		YearlyEnrollmentAcademicYearID: m.YearlyEnrollmentAcademicYearID,
		YearlyEnrollmentCourseID:       m.YearlyEnrollmentCourseID,
		YearlyEnrollmentPlacementLabel: m.YearlyEnrollmentPlacementLabel,
		YearlyEnrollmentClassLevelID:   m.YearlyEnrollmentClassLevelID,
	}
	if m.YearlyEnrollmentFinalStatus != nil {
		s := string(*m.YearlyEnrollmentFinalStatus)
		resp.YearlyEnrollmentFinalStatus = &s
	}
	return resp
}
