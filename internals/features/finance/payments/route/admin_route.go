package route

import (
	"github.com/gofiber/fiber/v2"

	"university_backend/internals/constants"
	"university_backend/internals/features/finance/payments/controller"
	"university_backend/internals/features/finance/payments/service"
	authMiddleware "university_backend/internals/middlewares/auth"
)

func PaymentAdminRoutes(api fiber.Router, svc *service.PaymentService) {
	ctrl := controller.NewPaymentController(svc)

	g := api.Group("/payments",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("melihat pembayaran"), constants.AdminAndAbove),
	)
	g.Get("/", ctrl.ListAdmin)
	g.Get("/summary", ctrl.Summary)
}
