package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/academics/controller"
	authMw "academico_backend/internals/middlewares/auth"
)

func AcademicsRoutes(r fiber.Router, db *gorm.DB, sink auditService.Sink) {
	ctrl := controller.NewAcademicsController(db, sink)

	g := r.Group("/academics")
	g.Get("/years", ctrl.ListAcademicYears)
	g.Get("/class-levels", ctrl.ListClassLevels)

	adminOnly := authMw.RequireRolesInScope(constants.RoleErrorAdmin("academics administration"), constants.AdministrativeRoles...)
	g.Post("/years", adminOnly, ctrl.CreateAcademicYear)
	g.Post("/class-levels", adminOnly, ctrl.CreateClassLevel)
}
