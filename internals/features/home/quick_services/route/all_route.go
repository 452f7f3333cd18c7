package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"university_backend/internals/features/home/quick_services/controller"
)

// Publik: /api/public/quick-services
func AllQuickServiceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuickServiceController(db)
	api.Get("/quick-services", ctrl.ListPublic)
}
