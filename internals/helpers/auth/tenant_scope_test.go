package helper

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpers "academico_backend/internals/helpers"
)

// scopeApp runs ResolveScope (and optionally the body gate) behind a
// middleware that plants token locals, the way the JWT middleware would.
func scopeApp(locals map[string]any, checkBody bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		return c.Next()
	})
	app.Post("/probe", func(c *fiber.Ctx) error {
		if checkBody {
			if err := RejectBodyInstitutionID(c); err != nil {
				return helpers.JsonDomainError(c, err)
			}
		}
		scope, err := ResolveScope(c)
		if err != nil {
			return helpers.JsonDomainError(c, err)
		}
		return c.JSON(fiber.Map{
			"institution_id": scope.InstitutionID.String(),
			"super_operator": scope.SuperOperator,
		})
	})
	return app
}

func probe(t *testing.T, app *fiber.App, body string, header map[string]string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/probe", reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(payload)
}

func TestResolveScope_FromToken(t *testing.T) {
	instID := uuid.New()
	app := scopeApp(map[string]any{LocActiveInstitution: instID.String()}, false)

	status, body := probe(t, app, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, instID.String())
	assert.Contains(t, body, `"super_operator":false`)
}

func TestResolveScope_TokenBeatsHeader(t *testing.T) {
	tokenInst := uuid.New()
	headerInst := uuid.New()
	app := scopeApp(map[string]any{LocActiveInstitution: tokenInst.String()}, false)

	status, body := probe(t, app, "", map[string]string{HeaderTargetInstitution: headerInst.String()})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, tokenInst.String())
	assert.NotContains(t, body, headerInst.String())
}

func TestResolveScope_UnscopedPrincipalRejected(t *testing.T) {
	app := scopeApp(map[string]any{LocUserID: uuid.New().String()}, false)

	status, body := probe(t, app, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, helpers.CodeUnscopedPrincipal)
}

func TestResolveScope_OwnerHeaderFallback(t *testing.T) {
	target := uuid.New()
	app := scopeApp(map[string]any{LocIsOwner: true}, false)

	status, body := probe(t, app, "", map[string]string{HeaderTargetInstitution: target.String()})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, target.String())
	assert.Contains(t, body, `"super_operator":true`)

	// garbage header is rejected rather than ignored
	status, body = probe(t, app, "", map[string]string{HeaderTargetInstitution: "not-a-uuid"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, helpers.CodeUnscopedPrincipal)

	// owner with neither token scope nor header is still unscoped
	status, _ = probe(t, app, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResolveScope_NonOwnerHeaderIgnored(t *testing.T) {
	app := scopeApp(map[string]any{LocUserID: uuid.New().String()}, false)

	status, body := probe(t, app, "", map[string]string{HeaderTargetInstitution: uuid.New().String()})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, helpers.CodeUnscopedPrincipal)
}

func TestRejectBodyInstitutionID(t *testing.T) {
	instID := uuid.New()
	app := scopeApp(map[string]any{LocActiveInstitution: instID.String()}, true)

	for _, key := range []string{"institution_id", "tenant_id", "institution_tenant_id"} {
		status, body := probe(t, app, `{"`+key+`":"`+uuid.New().String()+`"}`, nil)
		assert.Equal(t, http.StatusBadRequest, status, "key %s", key)
		assert.Contains(t, body, helpers.CodeTenantIDInBodyRejected, "key %s", key)
	}

	// a clean body passes untouched
	status, _ := probe(t, app, `{"student_id":"`+uuid.New().String()+`"}`, nil)
	assert.Equal(t, http.StatusOK, status)

	// non-JSON bodies are someone else's problem
	status, _ = probe(t, app, "plain text", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestScopeOwns(t *testing.T) {
	id := uuid.New()
	assert.True(t, Scope{InstitutionID: id}.Owns(id))
	assert.False(t, Scope{InstitutionID: id}.Owns(uuid.New()))
	assert.False(t, Scope{}.Owns(uuid.Nil))
}
