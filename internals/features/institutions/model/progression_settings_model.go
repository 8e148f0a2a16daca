package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressionSettingsModel is the per-institution progression policy.
// An institution without a row runs the strictest policy: zero failed
// subjects tolerated, no override (see DefaultProgressionSettings).
type ProgressionSettingsModel struct {
	ProgressionSettingsID            uuid.UUID `json:"progression_settings_id" gorm:"type:uuid;primaryKey;column:progression_settings_id"`
	ProgressionSettingsInstitutionID uuid.UUID `json:"progression_settings_institution_id" gorm:"type:uuid;not null;uniqueIndex:uq_progression_settings_institution;column:progression_settings_institution_id"`

	// Year-end tolerance: APPROVED iff failed subjects <= this value.
	ProgressionSettingsMaxFailedSubjects int `json:"progression_settings_max_failed_subjects" gorm:"not null;default:0;column:progression_settings_max_failed_subjects"`

	// Whether an administrator may override an enrollment blocked by a
	// failed prior year.
	ProgressionSettingsAllowOverride bool `json:"progression_settings_allow_override" gorm:"not null;default:false;column:progression_settings_allow_override"`

	ProgressionSettingsCreatedAt time.Time `json:"progression_settings_created_at" gorm:"column:progression_settings_created_at;autoCreateTime"`
	ProgressionSettingsUpdatedAt time.Time `json:"progression_settings_updated_at" gorm:"column:progression_settings_updated_at;autoUpdateTime"`
}

func (ProgressionSettingsModel) TableName() string { return "institution_progression_settings" }

// ProgressionSettings is the resolved policy handed to the engine.
type ProgressionSettings struct {
	MaxFailedSubjects int
	AllowOverride     bool
}

// DefaultProgressionSettings is the fail-closed policy used when an
// institution has no settings row.
func DefaultProgressionSettings() ProgressionSettings {
	return ProgressionSettings{MaxFailedSubjects: 0, AllowOverride: false}
}
