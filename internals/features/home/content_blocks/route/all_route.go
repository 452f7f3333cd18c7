package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/features/home/content_blocks/controller"
)

// Publik: /api/public/content-blocks?page=home
func AllContentBlockRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewContentBlockController(db)
	api.Get("/content-blocks", ctrl.ListPublic)
}
