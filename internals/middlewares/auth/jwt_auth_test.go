package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"university_backend/internals/constants"
	helperAuth "university_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me",
		AuthJWT(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": c.Locals(helperAuth.LocUserID),
				"role":    c.Locals(helperAuth.LocRole),
			})
		})
	app.Get("/admin",
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		OnlyRolesSlice("admins only", constants.AdminAndAbove),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuthJWT(t *testing.T) {
	uid := uuid.NewString()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		path   string
		token  string
		cookie bool
		want   int
	}{
		{"missing token", "/me", "", false, fiber.StatusUnauthorized},
		{"wrong secret", "/me", sign(t, jwt.MapClaims{"sub": uid, "exp": exp}, "other"), false, fiber.StatusUnauthorized},
		{"expired", "/me", sign(t, jwt.MapClaims{"sub": uid, "exp": time.Now().Add(-time.Hour).Unix()}, testSecret), false, fiber.StatusUnauthorized},
		{"sub not uuid", "/me", sign(t, jwt.MapClaims{"sub": "abc", "exp": exp}, testSecret), false, fiber.StatusUnauthorized},
		{"valid bearer", "/me", sign(t, jwt.MapClaims{"sub": uid, "exp": exp}, testSecret), false, fiber.StatusOK},
		{"valid cookie", "/me", sign(t, jwt.MapClaims{"sub": uid, "exp": exp}, testSecret), true, fiber.StatusOK},
		{"student on admin route", "/admin", sign(t, jwt.MapClaims{"sub": uid, "exp": exp}, testSecret), false, fiber.StatusForbidden},
		{"admin via app_metadata", "/admin", sign(t, jwt.MapClaims{"sub": uid, "exp": exp, "app_metadata": map[string]any{"roles": []string{"teacher", "admin"}}}, testSecret), false, fiber.StatusOK},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.token != "" {
				if tt.cookie {
					req.Header.Set("Cookie", "access_token="+tt.token)
				} else {
					req.Header.Set("Authorization", "Bearer "+tt.token)
				}
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRolesFromClaims(t *testing.T) {
	got := rolesFromClaims(jwt.MapClaims{
		"roles":        []any{"teacher", " "},
		"user_role":    "owner",
		"app_metadata": map[string]any{"role": "admin"},
	})
	assert.Equal(t, []string{"teacher", "owner", "admin"}, got)
	assert.Equal(t, constants.RoleOwner, constants.PrimaryRole(got))
}
