package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academico_backend/internals/configs"
	auditService "academico_backend/internals/features/audit/service"
	institutionRoute "academico_backend/internals/features/institutions/route"
	academicsRoute "academico_backend/internals/features/school/academics/route"
	enrollmentRoute "academico_backend/internals/features/school/enrollments/route"
	progressionRoute "academico_backend/internals/features/school/progression/route"
	workflowRoute "academico_backend/internals/features/school/workflow/route"
	teacherRoute "academico_backend/internals/features/users/teachers/route"
	authMw "academico_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under one authenticated API group.
// Tenant scoping happens per-request inside the handlers, never here.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	sink := auditService.NewGormSink(db)

	api := app.Group("/api/a", authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))

	institutionRoute.InstitutionAdminRoutes(api, db, sink)
	teacherRoute.TeacherRoutes(api, db, sink)
	academicsRoute.AcademicsRoutes(api, db, sink)
	enrollmentRoute.EnrollmentRoutes(api, db, sink)
	progressionRoute.ProgressionRoutes(api, db, sink)
	workflowRoute.WorkflowRoutes(api, db, sink)
}
