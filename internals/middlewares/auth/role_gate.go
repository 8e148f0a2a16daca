package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

// RequireRolesInScope gates a route group on the caller holding one of the
// allowed roles within the resolved institution scope. Owners pass.
func RequireRolesInScope(message string, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := helperAuth.ResolveScope(c)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		if scope.SuperOperator {
			return c.Next()
		}
		for _, role := range allowed {
			if helperAuth.HasRoleInInstitution(c, scope.InstitutionID, role) {
				return c.Next()
			}
		}
		if message == "" {
			message = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, message)
	}
}
