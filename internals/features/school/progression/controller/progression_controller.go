package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "academico_backend/internals/features/audit/service"
	instService "academico_backend/internals/features/institutions/service"
	enrollModel "academico_backend/internals/features/school/enrollments/model"
	"academico_backend/internals/features/school/progression/dto"
	progressionService "academico_backend/internals/features/school/progression/service"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type ProgressionController struct {
	DB    *gorm.DB
	Sink  auditService.Sink
	valid *validator.Validate
}

func NewProgressionController(db *gorm.DB, sink auditService.Sink) *ProgressionController {
	return &ProgressionController{DB: db, Sink: sink, valid: validator.New()}
}

func (ctrl *ProgressionController) YearEndStatus(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.YearEndStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	status, err := progressionService.ComputeYearEndStatus(c.UserContext(), ctrl.DB, scope, body.StudentID, body.AcademicYearID)
	if err != nil {
		log.Printf("[ERROR] year-end status failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute year-end status")
	}
	return helper.JsonOK(c, "Year-end status", status)
}

func (ctrl *ProgressionController) Finalize(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.YearEndStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	status, err := progressionService.FinalizeYearEndStatus(c.UserContext(), ctrl.DB, scope, ctrl.Sink, actorID, body.StudentID, body.AcademicYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No enrollment found for that student and year")
		}
		log.Printf("[ERROR] finalize failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to finalize year-end status")
	}
	return helper.JsonUpdated(c, "Year-end status finalized", status)
}

func (ctrl *ProgressionController) SuggestPlacement(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.SuggestPlacementRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var prior enrollModel.YearlyEnrollmentModel
	err = scope.Where(ctrl.DB.WithContext(c.UserContext()), "yearly_enrollment_institution_id").
		Where("yearly_enrollment_student_id = ? AND yearly_enrollment_academic_year_id = ?", body.StudentID, body.AcademicYearID).
		First(&prior).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No enrollment found for that student and year")
		}
		log.Printf("[ERROR] prior enrollment lookup failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load enrollment")
	}

	status, err := progressionService.ComputeYearEndStatus(c.UserContext(), ctrl.DB, scope, body.StudentID, body.AcademicYearID)
	if err != nil {
		log.Printf("[ERROR] year-end status failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute year-end status")
	}

	model, err := instService.ResolveAcademicModel(c.UserContext(), ctrl.DB, scope)
	if err != nil {
		log.Printf("[ERROR] academic model lookup failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve academic model")
	}

	suggestion, err := progressionService.SuggestNextPlacement(c.UserContext(), ctrl.DB, scope, prior, status.Status, model)
	if err != nil {
		log.Printf("[ERROR] placement suggestion failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to suggest placement")
	}

	return helper.JsonOK(c, "Suggested next placement", fiber.Map{
		"year_end":   status,
		"suggestion": suggestion,
	})
}

// CorrectFinalStatus is the explicit administrative correction path for
// an otherwise immutable final status. Admin-gated at the route.
func (ctrl *ProgressionController) CorrectFinalStatus(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.CorrectFinalStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	row, err := progressionService.CorrectFinalStatus(
		c.UserContext(), ctrl.DB, scope, ctrl.Sink,
		actorID, body.EnrollmentID,
		enrollModel.FinalStatus(body.NewStatus), body.Note,
	)
	if err != nil {
		if _, ok := helper.AsDomainError(err); ok {
			return helper.JsonDomainError(c, err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found in your institution")
		}
		log.Printf("[ERROR] final-status correction failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to correct final status")
	}

	return helper.JsonUpdated(c, "Final status corrected", row)
}
