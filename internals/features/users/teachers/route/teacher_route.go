package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/users/teachers/controller"
)

func TeacherRoutes(r fiber.Router, db *gorm.DB, sink auditService.Sink) {
	ctrl := controller.NewTeacherController(db, sink)

	g := r.Group("/teachers")
	g.Post("/resolve", ctrl.Resolve)
	g.Get("/validate-claim", ctrl.ValidateClaim)
}
