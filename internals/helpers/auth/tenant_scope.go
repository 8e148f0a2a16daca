package helper

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "academico_backend/internals/helpers"
)

// HeaderTargetInstitution is the one sanctioned out-of-band way for a
// platform owner to act on an institution other than their own. Regular
// principals never get a tenant id from anywhere but the verified token.
const HeaderTargetInstitution = "X-Target-Institution"

// Scope is the tenant predicate for one request. It is resolved once from
// the verified token and threaded through every storage call; feature code
// never writes its own institution filter.
type Scope struct {
	InstitutionID uuid.UUID
	SuperOperator bool
}

// ResolveScope derives the request scope from token locals.
//
// Rules, in order:
//  1. token carries an active institution id → that id, always.
//  2. owner without an institution id may target one explicitly via the
//     X-Target-Institution header.
//  3. anyone else without an institution id is unscoped → rejected.
func ResolveScope(c *fiber.Ctx) (Scope, error) {
	owner := IsOwner(c)

	if id, err := GetActiveInstitutionID(c); err == nil && id != uuid.Nil {
		return Scope{InstitutionID: id, SuperOperator: owner}, nil
	}

	if owner {
		if h := strings.TrimSpace(c.Get(HeaderTargetInstitution)); h != "" {
			id, err := uuid.Parse(h)
			if err != nil {
				return Scope{}, helper.NewDomainError(helper.CodeUnscopedPrincipal,
					"invalid "+HeaderTargetInstitution+" header")
			}
			return Scope{InstitutionID: id, SuperOperator: true}, nil
		}
	}

	return Scope{}, helper.NewDomainError(helper.CodeUnscopedPrincipal,
		"principal carries no institution scope")
}

// Where conjoins the tenant predicate onto a query. column is the fully
// prefixed institution-id column of the table being touched.
func (s Scope) Where(tx *gorm.DB, column string) *gorm.DB {
	return tx.Where(column+" = ?", s.InstitutionID)
}

// Owns reports whether an already-loaded row belongs to this scope.
func (s Scope) Owns(institutionID uuid.UUID) bool {
	return s.InstitutionID != uuid.Nil && s.InstitutionID == institutionID
}

// bodyTenantKeys are field names a client might use to smuggle a tenant id
// through a request body. Token-derived scoping always wins; a body that
// names any of these is rejected outright rather than silently ignored, so
// the client learns the request was malformed.
var bodyTenantKeys = []string{
	"institution_id",
	"tenant_id",
	"institution_tenant_id",
}

// RejectBodyInstitutionID fails the request when the JSON body carries a
// tenant identifier. Non-JSON and empty bodies pass.
func RejectBodyInstitutionID(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	var m map[string]any
	if err := sonic.Unmarshal(body, &m); err != nil {
		return nil
	}
	for _, k := range bodyTenantKeys {
		if _, found := m[k]; found {
			return helper.NewDomainError(helper.CodeTenantIDInBodyRejected,
				"tenant id must not be supplied in the request body; scoping is derived from the verified token")
		}
	}
	return nil
}
