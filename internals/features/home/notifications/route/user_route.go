package route

import (
	"github.com/gofiber/fiber/v2"

	"university_backend/internals/features/home/notifications/controller"
	"university_backend/internals/features/home/notifications/service"
)

// Inbox user login: /api/u/notifications
func NotificationUserRoutes(api fiber.Router, svc *service.NotificationService) {
	ctrl := controller.NewNotificationController(svc)

	g := api.Group("/notifications")
	g.Get("/", ctrl.ListMine)
	g.Get("/unread-count", ctrl.UnreadCount)
	g.Patch("/:id/read", ctrl.MarkRead)
}
