package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"university_backend/internals/middlewares/logger"
)

const requestTimeout = 5 * time.Second

// RequestID + timeout guard per request (selaras statement_timeout di DB).
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()
		if d := time.Since(start); d > time.Second {
			log.Printf("[SLOW REQ] id=%s %s %s dur=%s", id, c.Method(), c.OriginalURL(), d)
		}
		return err
	}
}

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
}
