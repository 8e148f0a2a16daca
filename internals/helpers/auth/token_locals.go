package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys hydrated by the JWT middleware. Everything under these keys
// comes from the verified token and nowhere else.
const (
	LocUserID            = "user_id"               // string UUID
	LocActiveInstitution = "active_institution_id" // string UUID
	LocInstitutionRoles  = "institution_roles"     // []InstitutionRolesEntry
	LocRolesGlobal       = "roles_global"          // []string
	LocIsOwner           = "is_owner"              // bool
	LocTeacherID         = "teacher_id"            // string UUID (claim hint, must be re-validated)
	LocRequestID         = "reqid"                 // string
)

// InstitutionRolesEntry is one per-institution role grant inside the token.
type InstitutionRolesEntry struct {
	InstitutionID uuid.UUID
	Roles         []string
}

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" not found in token")
	}
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" empty in token")
		}
		return uuid.Parse(s)
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+" format in token")
}

// GetUserIDFromToken returns the verified caller's user id.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID)
}

// GetActiveInstitutionID returns the institution the session is bound to.
func GetActiveInstitutionID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocActiveInstitution)
}

// GetTeacherIDFromToken returns the teacher-entity id claim, if present.
// This is a hint only; privileged paths must re-validate it against
// storage (see teachers service ValidateAgainstToken).
func GetTeacherIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocTeacherID)
}

// IsOwner reports whether the token carries the platform owner flag.
func IsOwner(c *fiber.Ctx) bool {
	if v, ok := c.Locals(LocIsOwner).(bool); ok {
		return v
	}
	if v, ok := c.Locals(LocRolesGlobal).([]string); ok {
		for _, r := range v {
			if strings.EqualFold(r, "owner") {
				return true
			}
		}
	}
	return false
}

// RolesInInstitution returns the caller's roles for one institution.
func RolesInInstitution(c *fiber.Ctx, institutionID uuid.UUID) []string {
	entries, ok := c.Locals(LocInstitutionRoles).([]InstitutionRolesEntry)
	if !ok {
		return nil
	}
	for _, e := range entries {
		if e.InstitutionID == institutionID {
			return e.Roles
		}
	}
	return nil
}

// HasRoleInInstitution reports whether the token grants role within the
// given institution.
func HasRoleInInstitution(c *fiber.Ctx, institutionID uuid.UUID, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range RolesInInstitution(c, institutionID) {
		if r == role {
			return true
		}
	}
	return false
}
