package constants

import "fmt"

// Role names as they appear inside the verified token's per-institution
// role entries. "owner" is the platform super-operator and is the only
// role that exists outside an institution scope.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleRegistrar = "registrar"
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess  = "Only teachers, registrars, or admins may access %s."
	ErrOnlyAdminsCanAccess    = "Only admins may access %s."
	ErrOnlyApproversCanAccess = "Only admins or registrars may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorApprover(feature string) string {
	return fmt.Sprintf(ErrOnlyApproversCanAccess, feature)
}

// ==========================
// Grouped capability slices
// ==========================
//
// The workflow transition table and the progression override gate are
// expressed against these groups, never against ad-hoc role strings.
var (
	AllRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleRegistrar,
		RoleTeacher,
		RoleStudent,
	}

	// AuthorCapable may create and submit workflowable documents.
	AuthorCapable = []string{
		RoleTeacher,
		RoleRegistrar,
		RoleAdmin,
	}

	// ApproverCapable may approve or reject submitted documents.
	ApproverCapable = []string{
		RoleAdmin,
		RoleRegistrar,
	}

	// AdministrativeRoles gate locking and the progression override.
	AdministrativeRoles = []string{
		RoleAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}
)

// HasAnyRole reports whether roles contains at least one of wanted.
func HasAnyRole(roles []string, wanted []string) bool {
	for _, r := range roles {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}
