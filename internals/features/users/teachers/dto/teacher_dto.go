package dto

import (
	"github.com/google/uuid"

	teacherModel "academico_backend/internals/features/users/teachers/model"
)

type TeacherEntityResponse struct {
	TeacherEntityID            uuid.UUID `json:"teacher_entity_id"`
	TeacherEntityUserID        uuid.UUID `json:"teacher_entity_user_id"`
	TeacherEntityInstitutionID uuid.UUID `json:"teacher_entity_institution_id"`
	TeacherEntityIsActive      bool      `json:"teacher_entity_is_active"`
	AutoProvisioned            bool      `json:"auto_provisioned"`
	TenantDiscrepancy          bool      `json:"tenant_discrepancy"`
}

func ToTeacherEntityResponse(m teacherModel.TeacherEntityModel, created, discrepancy bool) TeacherEntityResponse {
	return TeacherEntityResponse{
		TeacherEntityID:            m.TeacherEntityID,
		TeacherEntityUserID:        m.TeacherEntityUserID,
		TeacherEntityInstitutionID: m.TeacherEntityInstitutionID,
		TeacherEntityIsActive:      m.TeacherEntityIsActive,
		AutoProvisioned:            created,
		TenantDiscrepancy:          discrepancy,
	}
}
