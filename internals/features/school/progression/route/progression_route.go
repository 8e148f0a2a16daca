package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/progression/controller"
	authMw "academico_backend/internals/middlewares/auth"
)

func ProgressionRoutes(r fiber.Router, db *gorm.DB, sink auditService.Sink) {
	ctrl := controller.NewProgressionController(db, sink)

	g := r.Group("/progression")
	g.Post("/year-end-status", ctrl.YearEndStatus)
	g.Post("/suggest-placement", ctrl.SuggestPlacement)

	staff := authMw.RequireRolesInScope(constants.RoleErrorApprover("progression finalization"), constants.ApproverCapable...)
	g.Post("/finalize", staff, ctrl.Finalize)

	adminOnly := authMw.RequireRolesInScope(constants.RoleErrorAdmin("final-status correction"), constants.AdministrativeRoles...)
	g.Post("/correct-final-status", adminOnly, ctrl.CorrectFinalStatus)
}
