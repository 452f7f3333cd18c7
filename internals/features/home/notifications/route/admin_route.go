package route

import (
	"github.com/gofiber/fiber/v2"

	"university_backend/internals/constants"
	"university_backend/internals/features/home/notifications/controller"
	"university_backend/internals/features/home/notifications/service"
	authMiddleware "university_backend/internals/middlewares/auth"
)

func NotificationAdminRoutes(api fiber.Router, svc *service.NotificationService) {
	ctrl := controller.NewNotificationController(svc)

	g := api.Group("/notifications",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("mengelola notifikasi"), constants.AdminAndAbove),
	)
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.ListAll)
}
