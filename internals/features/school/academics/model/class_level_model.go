package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassLevelModel defines the succession ladder for secondary-model
// institutions: ordinal n is followed by ordinal n+1. Higher-model
// institutions do not use class levels.
type ClassLevelModel struct {
	ClassLevelID            uuid.UUID `json:"class_level_id" gorm:"type:uuid;primaryKey;column:class_level_id"`
	ClassLevelInstitutionID uuid.UUID `json:"class_level_institution_id" gorm:"type:uuid;not null;uniqueIndex:uq_class_levels_institution_ordinal;column:class_level_institution_id"`
	ClassLevelName          string    `json:"class_level_name" gorm:"type:varchar(80);not null;column:class_level_name"`
	ClassLevelOrdinal       int       `json:"class_level_ordinal" gorm:"not null;uniqueIndex:uq_class_levels_institution_ordinal;column:class_level_ordinal"`

	ClassLevelCreatedAt time.Time `json:"class_level_created_at" gorm:"column:class_level_created_at;autoCreateTime"`
	ClassLevelUpdatedAt time.Time `json:"class_level_updated_at" gorm:"column:class_level_updated_at;autoUpdateTime"`
}

func (ClassLevelModel) TableName() string { return "class_levels" }
