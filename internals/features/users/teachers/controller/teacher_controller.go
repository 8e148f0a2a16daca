package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/users/teachers/dto"
	teacherService "academico_backend/internals/features/users/teachers/service"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type TeacherController struct {
	DB   *gorm.DB
	Sink auditService.Sink
}

func NewTeacherController(db *gorm.DB, sink auditService.Sink) *TeacherController {
	return &TeacherController{DB: db, Sink: sink}
}

// Resolve maps the caller to their TeacherEntity in the scoped
// institution, auto-provisioning when the role allows it.
func (ctrl *TeacherController) Resolve(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing user identity")
	}

	roles := helperAuth.RolesInInstitution(c, scope.InstitutionID)

	row, res, err := teacherService.Resolve(c.UserContext(), ctrl.DB, ctrl.Sink, userID, scope.InstitutionID, roles)
	if err != nil {
		if _, ok := helper.AsDomainError(err); ok {
			return helper.JsonDomainError(c, err)
		}
		log.Printf("[ERROR] teacher resolve failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve teacher entity")
	}

	return helper.JsonOK(c, "Teacher entity resolved",
		dto.ToTeacherEntityResponse(*row, res.Created, res.TenantDiscrepancy))
}

// ValidateClaim hardens a privileged action that received a teacher id
// from the token: storage is the authority, the claim is only a hint.
func (ctrl *TeacherController) ValidateClaim(c *fiber.Ctx) error {
	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing user identity")
	}
	claimID, err := helperAuth.GetTeacherIDFromToken(c)
	if err != nil || claimID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Token carries no teacher entity claim")
	}

	row, err := teacherService.ValidateAgainstToken(c.UserContext(), ctrl.DB, claimID, userID, scope.InstitutionID)
	if err != nil {
		log.Printf("[ERROR] teacher claim validation failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate teacher claim")
	}
	if row == nil {
		return helper.JsonOK(c, "Teacher claim does not match storage", fiber.Map{"valid": false})
	}
	return helper.JsonOK(c, "Teacher claim valid", fiber.Map{
		"valid":   true,
		"teacher": dto.ToTeacherEntityResponse(*row, false, false),
	})
}
