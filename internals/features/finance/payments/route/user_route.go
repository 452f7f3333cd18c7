package route

import (
	"github.com/gofiber/fiber/v2"

	"university_backend/internals/features/finance/payments/controller"
	"university_backend/internals/features/finance/payments/service"
)

// Mahasiswa: /api/u/payments
func PaymentUserRoutes(api fiber.Router, svc *service.PaymentService) {
	ctrl := controller.NewPaymentController(svc)

	g := api.Group("/payments")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.ListMine)
}
