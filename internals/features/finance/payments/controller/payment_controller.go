package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"university_backend/internals/features/finance/payments/dto"
	"university_backend/internals/features/finance/payments/model"
	"university_backend/internals/features/finance/payments/service"
	helper "university_backend/internals/helpers"
	"university_backend/internals/helpers/dbtime"
)

var adminSortColumns = map[string]string{
	"created_at": "payment_created_at",
	"amount":     "payment_amount_idr",
	"paid_at":    "payment_paid_at",
	"status":     "payment_status",
}

type PaymentController struct {
	Svc *service.PaymentService
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{Svc: svc}
}

// =============================
// ➕ Create (mahasiswa) → snap token
// =============================
func (ctrl *PaymentController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		if fields, ok := helper.ValidationErrors(err); ok {
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := ctrl.Svc.Create(c.UserContext(), req.ToInput(studentID))
	var gwErr *service.GatewayError
	switch {
	case err == nil:
		return helper.JsonCreated(c, "Payment created", dto.ToPaymentDTO(*p))
	case errors.Is(err, service.ErrDuplicateExternalID):
		return helper.JsonError(c, fiber.StatusConflict, "payment_external_id sudah dipakai")
	case errors.Is(err, service.ErrGatewayDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Payment gateway belum dikonfigurasi")
	case errors.As(err, &gwErr):
		return helper.JsonErrorWithData(c, fiber.StatusBadGateway, "Gagal membuat transaksi di payment gateway", dto.ToPaymentDTO(*p))
	default:
		log.Printf("[ERROR] create payment student=%s: %v", studentID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create payment")
	}
}

// =============================
// 📄 List milik mahasiswa
// =============================
func (ctrl *PaymentController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.Svc.DB.WithContext(c.UserContext()).Model(&model.Payment{}).
		Where("payment_student_id = ?", studentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count payments")
	}
	var rows []model.Payment
	if err := q.Order("payment_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve payments")
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", dto.ToPaymentDTOs(rows), &pg)
}

// =============================
// 📄 List admin (?status=&q=&sort_by=&order=)
// =============================
func (ctrl *PaymentController) ListAdmin(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	q := ctrl.Svc.DB.WithContext(c.UserContext()).Model(&model.Payment{})

	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		if !model.PaymentStatus(s).Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid")
		}
		q = q.Where("payment_status = ?", s)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(payment_external_id) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count payments")
	}
	var rows []model.Payment
	order := helper.ParseSort(c, "created_at", "desc").OrderClause(adminSortColumns, "created_at")
	if err := q.Order(order).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve payments")
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", dto.ToPaymentDTOs(rows), &pg)
}

// GET /api/a/payments/summary?from=2025-01-01&to=2025-02-01
func (ctrl *PaymentController) Summary(c *fiber.Ctx) error {
	loc := dbtime.CampusLocation()
	from, err := dbtime.ParseDay(c.Query("from"), loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "from harus YYYY-MM-DD")
	}
	to, err := dbtime.ParseDay(c.Query("to"), loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "to harus YYYY-MM-DD")
	}

	sum, err := ctrl.Svc.Summary(c.UserContext(), from, to)
	if err != nil {
		log.Printf("[ERROR] payment summary: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build summary")
	}
	return helper.JsonOK(c, "ok", sum)
}

// =============================
// 🔔 Webhook Midtrans (publik)
// =============================
func (ctrl *PaymentController) MidtransNotification(c *fiber.Ctx) error {
	var n service.MidtransNotification
	if err := c.BodyParser(&n); err != nil || n.OrderID == "" || n.TransactionStatus == "" {
		log.Println("[ERROR] Payload webhook tidak lengkap")
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}

	p, err := ctrl.Svc.HandleNotification(c.UserContext(), n, append([]byte(nil), c.Body()...))
	switch {
	case err == nil:
		return helper.JsonOK(c, "ok", fiber.Map{
			"payment_id":     p.PaymentID,
			"payment_status": p.PaymentStatus,
		})
	case errors.Is(err, service.ErrInvalidSignature):
		return helper.JsonError(c, fiber.StatusForbidden, "invalid signature")
	case errors.Is(err, service.ErrPaymentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
	case errors.Is(err, service.ErrAmountMismatch):
		return helper.JsonError(c, fiber.StatusBadRequest, "gross_amount mismatch")
	default:
		log.Printf("[ERROR] webhook order=%s: %v", n.OrderID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process notification")
	}
}
