package details

import (
	"github.com/gofiber/fiber/v2"

	PaymentRoutes "university_backend/internals/features/finance/payments/route"
	paymentService "university_backend/internals/features/finance/payments/service"
)

// Publik: webhook Midtrans
func FinancePublicRoutes(api fiber.Router, svc *paymentService.PaymentService) {
	PaymentRoutes.AllPaymentRoutes(api, svc)
}

// Mahasiswa: /api/u/payments
func FinanceUserRoutes(api fiber.Router, svc *paymentService.PaymentService) {
	PaymentRoutes.PaymentUserRoutes(api, svc)
}

// Admin: /api/a/payments
func FinanceAdminRoutes(api fiber.Router, svc *paymentService.PaymentService) {
	PaymentRoutes.PaymentAdminRoutes(api, svc)
}
