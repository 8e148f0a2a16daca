package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	instModel "academico_backend/internals/features/institutions/model"
	helperAuth "academico_backend/internals/helpers/auth"
)

// ResolveProgressionSettings loads the scoped institution's policy,
// falling back to the strict default when no row exists.
func ResolveProgressionSettings(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope) (instModel.ProgressionSettings, error) {
	var row instModel.ProgressionSettingsModel
	err := scope.Where(tx.WithContext(ctx), "progression_settings_institution_id").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return instModel.DefaultProgressionSettings(), nil
		}
		return instModel.ProgressionSettings{}, err
	}
	return instModel.ProgressionSettings{
		MaxFailedSubjects: row.ProgressionSettingsMaxFailedSubjects,
		AllowOverride:     row.ProgressionSettingsAllowOverride,
	}, nil
}

// ResolveAcademicModel returns the scoped institution's numbering scheme.
// Unknown institutions resolve to the empty model; progression treats
// that as "never invent an advancement" (fail-safe).
func ResolveAcademicModel(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope) (instModel.AcademicModel, error) {
	var inst instModel.InstitutionModel
	err := scope.Where(tx.WithContext(ctx), "institution_id").First(&inst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return inst.InstitutionAcademicModel, nil
}
