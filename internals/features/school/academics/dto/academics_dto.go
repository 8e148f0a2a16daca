package dto

import (
	"time"

	"github.com/google/uuid"

	academicsModel "academico_backend/internals/features/school/academics/model"
)

type CreateAcademicYearRequest struct {
	AcademicYearNumber int    `json:"academic_year_number" validate:"required,min=1900,max=2200"`
	AcademicYearState  string `json:"academic_year_state" validate:"omitempty,oneof=planned active closed"`
}

type AcademicYearResponse struct {
	AcademicYearID        uuid.UUID  `json:"academic_year_id"`
	AcademicYearNumber    int        `json:"academic_year_number"`
	AcademicYearState     string     `json:"academic_year_state"`
	AcademicYearStartedAt *time.Time `json:"academic_year_started_at,omitempty"`
}

func ToAcademicYearResponse(m academicsModel.AcademicYearModel) AcademicYearResponse {
	return AcademicYearResponse{
		AcademicYearID:        m.AcademicYearID,
		AcademicYearNumber:    m.AcademicYearNumber,
		AcademicYearState:     string(m.AcademicYearState),
		AcademicYearStartedAt: m.AcademicYearStartedAt,
	}
}

type CreateClassLevelRequest struct {
	ClassLevelName    string `json:"class_level_name" validate:"required,min=1,max=80"`
	ClassLevelOrdinal int    `json:"class_level_ordinal" validate:"required,min=1,max=20"`
}

type ClassLevelResponse struct {
	ClassLevelID      uuid.UUID `json:"class_level_id"`
	ClassLevelName    string    `json:"class_level_name"`
	ClassLevelOrdinal int       `json:"class_level_ordinal"`
}

func ToClassLevelResponse(m academicsModel.ClassLevelModel) ClassLevelResponse {
	return ClassLevelResponse{
		ClassLevelID:      m.ClassLevelID,
		ClassLevelName:    m.ClassLevelName,
		ClassLevelOrdinal: m.ClassLevelOrdinal,
	}
}
