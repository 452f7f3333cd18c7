package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ContentBlockRoutes "university_backend/internals/features/home/content_blocks/route"
	NotificationRoutes "university_backend/internals/features/home/notifications/route"
	notificationService "university_backend/internals/features/home/notifications/service"
	QuickServiceRoutes "university_backend/internals/features/home/quick_services/route"
	orderingController "university_backend/internals/features/ordering/controller"
)

// ✅ Untuk route publik tanpa token
// Contoh akses: /api/public/quick-services
func HomePublicRoutes(api fiber.Router, db *gorm.DB) {
	QuickServiceRoutes.AllQuickServiceRoutes(api, db)
	ContentBlockRoutes.AllContentBlockRoutes(api, db)
}

// ✅ Untuk route user login (dengan token)
// Contoh akses: /api/u/notifications
func HomePrivateRoutes(api fiber.Router, notifs *notificationService.NotificationService) {
	NotificationRoutes.NotificationUserRoutes(api, notifs)
}

// ✅ Untuk route admin (token + staff)
// Contoh akses: /api/a/quick-services/reorder
func HomeAdminRoutes(api fiber.Router, db *gorm.DB, reorder *orderingController.ReorderController, notifs *notificationService.NotificationService) {
	QuickServiceRoutes.QuickServiceAdminRoutes(api, db, reorder)
	ContentBlockRoutes.ContentBlockAdminRoutes(api, db, reorder)
	NotificationRoutes.NotificationAdminRoutes(api, notifs)
}
