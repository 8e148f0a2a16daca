package dto

import "github.com/google/uuid"

type YearEndStatusRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
}

type SuggestPlacementRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
}

type CorrectFinalStatusRequest struct {
	EnrollmentID uuid.UUID `json:"enrollment_id" validate:"required"`
	NewStatus    string    `json:"new_status" validate:"required,oneof=approved failed"`
	Note         string    `json:"note" validate:"required,min=3"`
}
