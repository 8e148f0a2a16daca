package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/institutions/controller"
	authMw "academico_backend/internals/middlewares/auth"
)

func InstitutionAdminRoutes(r fiber.Router, db *gorm.DB, sink auditService.Sink) {
	ctrl := controller.NewInstitutionController(db, sink)

	r.Post("/institutions", ctrl.Create) // owner check inside

	settings := r.Group("/progression-settings",
		authMw.RequireRolesInScope(constants.RoleErrorAdmin("progression settings"), constants.AdministrativeRoles...),
	)
	settings.Get("/", ctrl.GetSettings)
	settings.Put("/", ctrl.UpsertSettings)
}
