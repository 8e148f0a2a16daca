package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicModel discriminates the two institutional numbering schemes.
// It is immutable for the life of an institution.
type AcademicModel string

const (
	AcademicModelSecondary AcademicModel = "secondary" // graded classes on an ordinal ladder
	AcademicModelHigher    AcademicModel = "higher"    // numbered years 1..6
)

func (m AcademicModel) Valid() bool {
	return m == AcademicModelSecondary || m == AcademicModelHigher
}

type InstitutionModel struct {
	InstitutionID            uuid.UUID      `json:"institution_id" gorm:"type:uuid;primaryKey;column:institution_id"`
	InstitutionName          string         `json:"institution_name" gorm:"type:varchar(120);not null;column:institution_name"`
	InstitutionSlug          string         `json:"institution_slug" gorm:"type:varchar(120);not null;uniqueIndex:uq_institutions_slug;column:institution_slug"`
	InstitutionAcademicModel AcademicModel  `json:"institution_academic_model" gorm:"type:varchar(20);not null;column:institution_academic_model"`
	InstitutionIsActive      bool           `json:"institution_is_active" gorm:"not null;default:true;column:institution_is_active"`
	InstitutionCreatedAt     time.Time      `json:"institution_created_at" gorm:"column:institution_created_at;autoCreateTime"`
	InstitutionUpdatedAt     time.Time      `json:"institution_updated_at" gorm:"column:institution_updated_at;autoUpdateTime"`
	InstitutionDeletedAt     gorm.DeletedAt `json:"institution_deleted_at,omitempty" gorm:"column:institution_deleted_at;index"`
}

func (InstitutionModel) TableName() string { return "institutions" }
