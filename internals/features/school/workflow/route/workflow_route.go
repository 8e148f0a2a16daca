package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/workflow/controller"
	authMw "academico_backend/internals/middlewares/auth"
)

func WorkflowRoutes(r fiber.Router, db *gorm.DB, sink auditService.Sink) {
	ctrl := controller.NewWorkflowController(db, sink)

	// fine-grained capability checks (approve vs submit etc.) live in the
	// engine; the route gate only keeps students and parents out
	g := r.Group("/workflow",
		authMw.RequireRolesInScope(constants.RoleErrorTeacher("workflow"), constants.AuthorCapable...),
	)

	g.Post("/:kind", ctrl.Create)
	g.Get("/:kind", ctrl.List)
	g.Get("/:kind/:id/actions", ctrl.Actions)
	g.Post("/:kind/:id/:action", ctrl.Transition)
}
