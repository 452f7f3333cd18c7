package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "university_backend/internals/helpers"
)

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "❌ Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Webhook payment gateway: lebih longgar, key per IP gateway.
func WebhookRateLimiter() fiber.Handler {
	return newLimiter(300, time.Minute, "too many webhook calls")
}

func newLimiter(limit int, exp time.Duration, msg string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
		},
	})
}
