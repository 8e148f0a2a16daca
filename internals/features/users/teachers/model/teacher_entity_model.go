package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherEntityModel is the domain role record, distinct from the user
// identity. A user holds at most one row per institution; the composite
// unique index is what makes auto-provisioning race-safe.
type TeacherEntityModel struct {
	TeacherEntityID            uuid.UUID `json:"teacher_entity_id" gorm:"type:uuid;primaryKey;column:teacher_entity_id"`
	TeacherEntityUserID        uuid.UUID `json:"teacher_entity_user_id" gorm:"type:uuid;not null;uniqueIndex:uq_teacher_entities_user_institution;column:teacher_entity_user_id"`
	TeacherEntityInstitutionID uuid.UUID `json:"teacher_entity_institution_id" gorm:"type:uuid;not null;uniqueIndex:uq_teacher_entities_user_institution;column:teacher_entity_institution_id"`

	TeacherEntityFullNameCache *string `json:"teacher_entity_full_name_cache,omitempty" gorm:"type:varchar(100);column:teacher_entity_full_name_cache"`
	TeacherEntityIsActive      bool    `json:"teacher_entity_is_active" gorm:"not null;default:true;column:teacher_entity_is_active"`

	TeacherEntityCreatedAt time.Time      `json:"teacher_entity_created_at" gorm:"column:teacher_entity_created_at;autoCreateTime"`
	TeacherEntityUpdatedAt time.Time      `json:"teacher_entity_updated_at" gorm:"column:teacher_entity_updated_at;autoUpdateTime"`
	TeacherEntityDeletedAt gorm.DeletedAt `json:"teacher_entity_deleted_at,omitempty" gorm:"column:teacher_entity_deleted_at;index"`
}

func (TeacherEntityModel) TableName() string { return "teacher_entities" }
