package dto

import (
	"github.com/google/uuid"

	instModel "academico_backend/internals/features/institutions/model"
)

type CreateInstitutionRequest struct {
	InstitutionName          string `json:"institution_name" validate:"required,min=3,max=120"`
	InstitutionSlug          string `json:"institution_slug" validate:"required,min=3,max=120"`
	InstitutionAcademicModel string `json:"institution_academic_model" validate:"required,oneof=secondary higher"`
}

type InstitutionResponse struct {
	InstitutionID            uuid.UUID `json:"institution_id"`
	InstitutionName          string    `json:"institution_name"`
	InstitutionSlug          string    `json:"institution_slug"`
	InstitutionAcademicModel string    `json:"institution_academic_model"`
	InstitutionIsActive      bool      `json:"institution_is_active"`
}

func ToInstitutionResponse(m instModel.InstitutionModel) InstitutionResponse {
	return InstitutionResponse{
		InstitutionID:            m.InstitutionID,
		InstitutionName:          m.InstitutionName,
		InstitutionSlug:          m.InstitutionSlug,
		InstitutionAcademicModel: string(m.InstitutionAcademicModel),
		InstitutionIsActive:      m.InstitutionIsActive,
	}
}

type UpsertProgressionSettingsRequest struct {
	MaxFailedSubjects int  `json:"max_failed_subjects" validate:"min=0,max=50"`
	AllowOverride     bool `json:"allow_override"`
}

type ProgressionSettingsResponse struct {
	MaxFailedSubjects int  `json:"max_failed_subjects"`
	AllowOverride     bool `json:"allow_override"`
}
