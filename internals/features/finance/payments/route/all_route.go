package route

import (
	"github.com/gofiber/fiber/v2"

	"university_backend/internals/features/finance/payments/controller"
	"university_backend/internals/features/finance/payments/service"
	"university_backend/internals/middlewares"
)

// Publik: webhook Midtrans (tanpa JWT, diverifikasi lewat signature)
func AllPaymentRoutes(api fiber.Router, svc *service.PaymentService) {
	ctrl := controller.NewPaymentController(svc)
	api.Post("/payments/midtrans/notification", middlewares.WebhookRateLimiter(), ctrl.MidtransNotification)
}
