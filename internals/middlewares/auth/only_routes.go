package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "university_backend/internals/helpers/auth"
)

// OnlyRolesSlice: hanya role di allowedRoles yang boleh lanjut.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helperAuth.LocRole).(string)
		if !ok || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Role not found")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}
