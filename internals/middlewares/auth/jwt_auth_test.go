package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "academico_backend/internals/helpers/auth"
)

const testSecret = "unit-test-secret"

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// authApp exposes the hydrated locals so assertions can read them back.
func authApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthJWT(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		inst, _ := helperAuth.GetActiveInstitutionID(c)
		return c.JSON(fiber.Map{
			"user_id":        c.Locals(helperAuth.LocUserID),
			"institution_id": inst.String(),
			"is_owner":       helperAuth.IsOwner(c),
			"roles":          helperAuth.RolesInInstitution(c, inst),
		})
	})
	return app
}

func get(t *testing.T, app *fiber.App, header, cookie string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	if cookie != "" {
		req.Header.Set("Cookie", "access_token="+cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthJWT_HydratesLocals(t *testing.T) {
	app := authApp()
	userID := uuid.New()
	instID := uuid.New()

	token := mintToken(t, testSecret, jwt.MapClaims{
		"id":             userID.String(),
		"institution_id": instID.String(),
		"institution_roles": []any{
			map[string]any{"institution_id": instID.String(), "roles": []any{"Teacher", "registrar"}},
		},
	})

	status, body := get(t, app, "Bearer "+token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, userID.String())
	assert.Contains(t, body, instID.String())
	// role names are normalized to lower case
	assert.Contains(t, body, `"teacher"`)
	assert.Contains(t, body, `"registrar"`)
	assert.Contains(t, body, `"is_owner":false`)
}

func TestAuthJWT_OwnerFlagAndSubFallback(t *testing.T) {
	app := authApp()
	userID := uuid.New()

	token := mintToken(t, testSecret, jwt.MapClaims{
		"sub":      userID.String(),
		"is_owner": true,
	})

	status, body := get(t, app, "Bearer "+token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, userID.String())
	assert.Contains(t, body, `"is_owner":true`)
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	app := authApp()
	token := mintToken(t, testSecret, jwt.MapClaims{"id": uuid.New().String()})

	status, _ := get(t, app, "", token)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthJWT_Rejections(t *testing.T) {
	app := authApp()

	// no token at all
	status, _ := get(t, app, "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// wrong secret
	bad := mintToken(t, "some-other-secret", jwt.MapClaims{"id": uuid.New().String()})
	status, _ = get(t, app, "Bearer "+bad, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// valid signature but no user id claim
	anonymous := mintToken(t, testSecret, jwt.MapClaims{"institution_id": uuid.New().String()})
	status, _ = get(t, app, "Bearer "+anonymous, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
