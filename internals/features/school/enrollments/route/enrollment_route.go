package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/enrollments/controller"
	authMw "academico_backend/internals/middlewares/auth"
)

func EnrollmentRoutes(r fiber.Router, db *gorm.DB, sink auditService.Sink) {
	ctrl := controller.NewEnrollmentController(db, sink)

	g := r.Group("/enrollments",
		authMw.RequireRolesInScope(constants.RoleErrorTeacher("enrollment"), constants.AuthorCapable...),
	)
	g.Post("/validate", ctrl.Validate)
	g.Post("/", ctrl.Create)
}
