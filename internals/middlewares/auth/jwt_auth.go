package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"university_backend/internals/constants"
	helperAuth "university_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi access token HS256 dari auth provider lalu mengisi Locals.
// Klaim: sub (user id), role / roles / app_metadata.roles.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		userID := firstClaim(claims, "sub", "user_id", "id")
		if _, err := uuid.Parse(userID); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
		}

		roles := rolesFromClaims(claims)
		role := constants.PrimaryRole(roles)
		if role == "" {
			role = constants.RoleStudent
		}

		c.Locals(helperAuth.LocClaims, claims)
		c.Locals(helperAuth.LocUserID, userID)
		c.Locals(helperAuth.LocRoles, roles)
		c.Locals(helperAuth.LocRole, role)
		return c.Next()
	}
}

func firstClaim(m jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func rolesFromClaims(m jwt.MapClaims) []string {
	out := readStringSlice(m["roles"])
	if r := firstClaim(m, "user_role"); r != "" {
		out = append(out, r)
	}
	if meta, ok := m["app_metadata"].(map[string]any); ok {
		out = append(out, readStringSlice(meta["roles"])...)
		if r, ok := meta["role"].(string); ok && strings.TrimSpace(r) != "" {
			out = append(out, strings.TrimSpace(r))
		}
	}
	return out
}

// util: ubah nilai interface{} → []string (robust untuk []string atau []any)
func readStringSlice(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
