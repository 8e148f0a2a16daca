package model

import (
	"time"

	"github.com/google/uuid"
)

type AcademicYearState string

const (
	AcademicYearPlanned AcademicYearState = "planned"
	AcademicYearActive  AcademicYearState = "active"
	AcademicYearClosed  AcademicYearState = "closed"
)

// AcademicYearModel: one row per institution per calendar school year.
// Exactly one active year per institution is the expected steady state;
// lookups take the most recently started active row.
type AcademicYearModel struct {
	AcademicYearID            uuid.UUID         `json:"academic_year_id" gorm:"type:uuid;primaryKey;column:academic_year_id"`
	AcademicYearInstitutionID uuid.UUID         `json:"academic_year_institution_id" gorm:"type:uuid;not null;uniqueIndex:uq_academic_years_institution_number;column:academic_year_institution_id"`
	AcademicYearNumber        int               `json:"academic_year_number" gorm:"not null;uniqueIndex:uq_academic_years_institution_number;column:academic_year_number"`
	AcademicYearState         AcademicYearState `json:"academic_year_state" gorm:"type:varchar(20);not null;default:'planned';column:academic_year_state"`
	AcademicYearStartedAt     *time.Time        `json:"academic_year_started_at,omitempty" gorm:"column:academic_year_started_at"`

	AcademicYearCreatedAt time.Time `json:"academic_year_created_at" gorm:"column:academic_year_created_at;autoCreateTime"`
	AcademicYearUpdatedAt time.Time `json:"academic_year_updated_at" gorm:"column:academic_year_updated_at;autoUpdateTime"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }
