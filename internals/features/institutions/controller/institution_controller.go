package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/institutions/dto"
	instModel "academico_backend/internals/features/institutions/model"
	instService "academico_backend/internals/features/institutions/service"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type InstitutionController struct {
	DB    *gorm.DB
	Sink  auditService.Sink
	valid *validator.Validate
}

func NewInstitutionController(db *gorm.DB, sink auditService.Sink) *InstitutionController {
	return &InstitutionController{DB: db, Sink: sink, valid: validator.New()}
}

// Create registers a new institution. Owner-only; this is the one write
// that happens outside any tenant scope.
func (ctrl *InstitutionController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsOwner(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the platform owner may register institutions")
	}

	var body dto.CreateInstitutionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := instModel.InstitutionModel{
		InstitutionID:            uuid.New(),
		InstitutionName:          strings.TrimSpace(body.InstitutionName),
		InstitutionSlug:          strings.ToLower(strings.TrimSpace(body.InstitutionSlug)),
		InstitutionAcademicModel: instModel.AcademicModel(body.InstitutionAcademicModel),
		InstitutionIsActive:      true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] institution create failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register institution")
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	ctrl.Sink.Record(c.UserContext(), auditService.Event{
		Module:        "institutions",
		Entity:        "institution",
		EntityID:      row.InstitutionID,
		ActorID:       actorID,
		InstitutionID: row.InstitutionID,
		After:         row,
		Note:          "institution registered",
	})

	return helper.JsonCreated(c, "Institution registered", dto.ToInstitutionResponse(row))
}

// GetSettings returns the scoped progression policy (defaults included).
func (ctrl *InstitutionController) GetSettings(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	settings, err := instService.ResolveProgressionSettings(c.UserContext(), ctrl.DB, scope)
	if err != nil {
		log.Printf("[ERROR] settings lookup failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load progression settings")
	}

	return helper.JsonOK(c, "Progression settings", dto.ProgressionSettingsResponse{
		MaxFailedSubjects: settings.MaxFailedSubjects,
		AllowOverride:     settings.AllowOverride,
	})
}

// UpsertSettings writes the scoped progression policy. Admin-gated at the
// route; body tenant ids are rejected before the write.
func (ctrl *InstitutionController) UpsertSettings(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.UpsertProgressionSettingsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var before *instModel.ProgressionSettingsModel
	var row instModel.ProgressionSettingsModel
	err = scope.Where(ctrl.DB.WithContext(c.UserContext()), "progression_settings_institution_id").
		First(&row).Error
	switch {
	case err == nil:
		cp := row
		before = &cp
		row.ProgressionSettingsMaxFailedSubjects = body.MaxFailedSubjects
		row.ProgressionSettingsAllowOverride = body.AllowOverride
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = instModel.ProgressionSettingsModel{
			ProgressionSettingsID:                uuid.New(),
			ProgressionSettingsInstitutionID:     scope.InstitutionID,
			ProgressionSettingsMaxFailedSubjects: body.MaxFailedSubjects,
			ProgressionSettingsAllowOverride:     body.AllowOverride,
		}
	default:
		log.Printf("[ERROR] settings lookup failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load progression settings")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		log.Printf("[ERROR] settings save failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save progression settings")
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	ctrl.Sink.Record(c.UserContext(), auditService.Event{
		Module:        "institutions",
		Entity:        "progression_settings",
		EntityID:      row.ProgressionSettingsID,
		ActorID:       actorID,
		InstitutionID: scope.InstitutionID,
		Before:        before,
		After:         row,
		Note:          "progression settings updated",
	})

	return helper.JsonUpdated(c, "Progression settings saved", dto.ProgressionSettingsResponse{
		MaxFailedSubjects: row.ProgressionSettingsMaxFailedSubjects,
		AllowOverride:     row.ProgressionSettingsAllowOverride,
	})
}
