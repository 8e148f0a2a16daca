package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/academics/dto"
	academicsModel "academico_backend/internals/features/school/academics/model"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type AcademicsController struct {
	DB    *gorm.DB
	Sink  auditService.Sink
	valid *validator.Validate
}

func NewAcademicsController(db *gorm.DB, sink auditService.Sink) *AcademicsController {
	return &AcademicsController{DB: db, Sink: sink, valid: validator.New()}
}

func (ctrl *AcademicsController) CreateAcademicYear(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.CreateAcademicYearRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	state := academicsModel.AcademicYearState(strings.TrimSpace(body.AcademicYearState))
	if state == "" {
		state = academicsModel.AcademicYearPlanned
	}

	row := academicsModel.AcademicYearModel{
		AcademicYearID:            uuid.New(),
		AcademicYearInstitutionID: scope.InstitutionID,
		AcademicYearNumber:        body.AcademicYearNumber,
		AcademicYearState:         state,
	}
	if state == academicsModel.AcademicYearActive {
		now := time.Now()
		row.AcademicYearStartedAt = &now
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] academic year create failed: %v", err)
		return helper.JsonError(c, fiber.StatusConflict, "Academic year already exists for this institution")
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	ctrl.Sink.Record(c.UserContext(), auditService.Event{
		Module:        "academics",
		Entity:        "academic_year",
		EntityID:      row.AcademicYearID,
		ActorID:       actorID,
		InstitutionID: scope.InstitutionID,
		After:         row,
	})

	return helper.JsonCreated(c, "Academic year created", dto.ToAcademicYearResponse(row))
}

func (ctrl *AcademicsController) ListAcademicYears(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	var rows []academicsModel.AcademicYearModel
	if err := scope.Where(ctrl.DB.WithContext(c.UserContext()), "academic_year_institution_id").
		Order("academic_year_number DESC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] academic year list failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list academic years")
	}

	out := make([]dto.AcademicYearResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToAcademicYearResponse(r))
	}
	return helper.JsonOK(c, "Academic years", out)
}

func (ctrl *AcademicsController) CreateClassLevel(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.CreateClassLevelRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := academicsModel.ClassLevelModel{
		ClassLevelID:            uuid.New(),
		ClassLevelInstitutionID: scope.InstitutionID,
		ClassLevelName:          strings.TrimSpace(body.ClassLevelName),
		ClassLevelOrdinal:       body.ClassLevelOrdinal,
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] class level create failed: %v", err)
		return helper.JsonError(c, fiber.StatusConflict, "Class level ordinal already exists for this institution")
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	ctrl.Sink.Record(c.UserContext(), auditService.Event{
		Module:        "academics",
		Entity:        "class_level",
		EntityID:      row.ClassLevelID,
		ActorID:       actorID,
		InstitutionID: scope.InstitutionID,
		After:         row,
	})

	return helper.JsonCreated(c, "Class level created", dto.ToClassLevelResponse(row))
}

func (ctrl *AcademicsController) ListClassLevels(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	var rows []academicsModel.ClassLevelModel
	if err := scope.Where(ctrl.DB.WithContext(c.UserContext()), "class_level_institution_id").
		Order("class_level_ordinal ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] class level list failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list class levels")
	}

	out := make([]dto.ClassLevelResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToClassLevelResponse(r))
	}
	return helper.JsonOK(c, "Class levels", out)
}
