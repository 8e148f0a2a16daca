package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Stable error codes surfaced to callers. Storage-level errors are never
// passed through; they are wrapped or replaced before leaving a service.
const (
	CodeUnscopedPrincipal      = "UNSCOPED_PRINCIPAL"
	CodeTenantIDInBodyRejected = "TENANT_ID_IN_BODY_REJECTED"
	CodeAmbiguousIdentity      = "AMBIGUOUS_IDENTITY"
	CodeTeacherEntityNotFound  = "TEACHER_ENTITY_NOT_FOUND"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeProgressionBlocked     = "PROGRESSION_BLOCKED"
	CodeAuditWriteFailed       = "AUDIT_WRITE_FAILED"
	CodeForbidden              = "FORBIDDEN"
)

var codeStatus = map[string]int{
	CodeUnscopedPrincipal:      fiber.StatusUnauthorized,
	CodeTenantIDInBodyRejected: fiber.StatusBadRequest,
	CodeAmbiguousIdentity:      fiber.StatusConflict,
	CodeTeacherEntityNotFound:  fiber.StatusNotFound,
	CodeInvalidTransition:      fiber.StatusConflict,
	CodeProgressionBlocked:     fiber.StatusForbidden,
	CodeForbidden:              fiber.StatusForbidden,
}

// DomainError is the only error type that crosses a service boundary with
// caller-visible content. Details carries structured context (for example
// override_available on progression blocks).
type DomainError struct {
	Code    string
	Message string
	Details fiber.Map
}

func (e *DomainError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *DomainError) HTTPStatus() int {
	if s, ok := codeStatus[e.Code]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func NewDomainErrorWithDetails(code, message string, details fiber.Map) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code string) bool {
	if de, ok := AsDomainError(err); ok {
		return de.Code == code
	}
	return false
}
