package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/enrollments/dto"
	enrollModel "academico_backend/internals/features/school/enrollments/model"
	progressionService "academico_backend/internals/features/school/progression/service"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type EnrollmentController struct {
	DB    *gorm.DB
	Sink  auditService.Sink
	valid *validator.Validate
}

func NewEnrollmentController(db *gorm.DB, sink auditService.Sink) *EnrollmentController {
	return &EnrollmentController{DB: db, Sink: sink, valid: validator.New()}
}

// Validate runs the progression gate without writing anything.
func (ctrl *EnrollmentController) Validate(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.ValidateEnrollmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	decision, err := ctrl.decide(c, scope, body)
	if err != nil {
		log.Printf("[ERROR] enrollment validation failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate enrollment")
	}

	return helper.JsonOK(c, "Enrollment validation", decision)
}

// Create validates, then inserts the enrollment in one transaction. A
// blocked decision surfaces as PROGRESSION_BLOCKED and writes nothing.
func (ctrl *EnrollmentController) Create(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.CreateEnrollmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row enrollModel.YearlyEnrollmentModel
	var decision progressionService.EnrollmentDecision

	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		decision, err = ctrl.decideTx(c, tx, scope, body.ValidateEnrollmentRequest)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return helper.NewDomainErrorWithDetails(helper.CodeProgressionBlocked, decision.Reason, fiber.Map{
				"override_available": decision.OverrideAvailable,
			})
		}

		row = enrollModel.YearlyEnrollmentModel{
			YearlyEnrollmentID:             uuid.New(),
			YearlyEnrollmentInstitutionID:  scope.InstitutionID,
			YearlyEnrollmentStudentID:      body.StudentID,
			YearlyEnrollmentAcademicYearID: body.AcademicYearID,
			YearlyEnrollmentCourseID:       body.CourseID,
			YearlyEnrollmentPlacementLabel: strings.TrimSpace(body.PlacementLabel),
			YearlyEnrollmentClassLevelID:   body.ClassLevelID,
		}
		return tx.Create(&row).Error
	})
	if txErr != nil {
		if _, ok := helper.AsDomainError(txErr); ok {
			return helper.JsonDomainError(c, txErr)
		}
		log.Printf("[ERROR] enrollment create failed: %v", txErr)
		return helper.JsonError(c, fiber.StatusConflict, "Failed to create enrollment (student may already be enrolled for that year)")
	}

	actorID, _ := helperAuth.GetUserIDFromToken(c)
	note := "enrollment created"
	if decision.OverrideApplied {
		note = "enrollment created via administrative progression override"
	}
	ctrl.Sink.Record(c.UserContext(), auditService.Event{
		Module:        "enrollments",
		Entity:        "yearly_enrollment",
		EntityID:      row.YearlyEnrollmentID,
		ActorID:       actorID,
		InstitutionID: scope.InstitutionID,
		After:         row,
		Note:          note,
	})

	return helper.JsonCreated(c, "Enrollment created", dto.ToEnrollmentResponse(row))
}

func (ctrl *EnrollmentController) decide(c *fiber.Ctx, scope helperAuth.Scope, body dto.ValidateEnrollmentRequest) (progressionService.EnrollmentDecision, error) {
	return ctrl.decideTx(c, ctrl.DB, scope, body)
}

func (ctrl *EnrollmentController) decideTx(c *fiber.Ctx, tx *gorm.DB, scope helperAuth.Scope, body dto.ValidateEnrollmentRequest) (progressionService.EnrollmentDecision, error) {
	return progressionService.ValidateNewEnrollment(c.UserContext(), tx, scope, progressionService.ValidateEnrollmentInput{
		StudentID:               body.StudentID,
		RequestedPlacementLabel: body.PlacementLabel,
		RequestedClassLevelID:   body.ClassLevelID,
		CourseID:                body.CourseID,
		CallerRoles:             helperAuth.RolesInInstitution(c, scope.InstitutionID),
		OverrideRequested:       body.OverrideRequested,
		ReferenceYearNumber:     body.ReferenceYearNumber,
	})
}
