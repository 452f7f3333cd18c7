package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"university_backend/internals/constants"
	"university_backend/internals/features/finance/payments/model"
	"university_backend/internals/features/finance/payments/route"
	"university_backend/internals/features/finance/payments/service"
	helperAuth "university_backend/internals/helpers/auth"
)

const serverKey = "SB-Mid-server-test"

type stubGateway struct{}

func (stubGateway) CreateTransaction(p model.Payment, _ service.CustomerInput) (string, string, error) {
	return "snap-" + p.PaymentExternalID, "https://pay.example/" + p.PaymentExternalID, nil
}

type harness struct {
	app       *fiber.App
	db        *gorm.DB
	studentID uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Payment{}, &model.PaymentGatewayEventModel{}))

	svc := service.NewPaymentService(db, stubGateway{}, serverKey, nil)
	h := &harness{db: db, studentID: uuid.New()}

	app := fiber.New()
	student := app.Group("/api/u", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, h.studentID.String())
		c.Locals(helperAuth.LocRole, constants.RoleStudent)
		return c.Next()
	})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, constants.RoleAdmin)
		return c.Next()
	})
	route.PaymentUserRoutes(student, svc)
	route.PaymentAdminRoutes(admin, svc)
	route.AllPaymentRoutes(app.Group("/api/public"), svc)
	h.app = app
	return h
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (h *harness) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

type paymentDTO struct {
	ID         string `json:"payment_id"`
	Status     string `json:"payment_status"`
	ExternalID string `json:"payment_external_id"`
	SnapToken  string `json:"payment_snap_token"`
}

func TestCreatePaymentFlow(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodPost, "/api/u/payments", map[string]any{
		"payment_amount_idr":  150000,
		"payment_external_id": "ORDER-1",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var p paymentDTO
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "snap-ORDER-1", p.SnapToken)

	status, _ = h.do(t, http.MethodPost, "/api/u/payments", map[string]any{
		"payment_amount_idr":  150000,
		"payment_external_id": "ORDER-1",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = h.do(t, http.MethodPost, "/api/u/payments", map[string]any{"payment_amount_idr": 10})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = h.do(t, http.MethodGet, "/api/u/payments", nil)
	require.Equal(t, http.StatusOK, status)
	var mine []paymentDTO
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "ORDER-1", mine[0].ExternalID)
}

func TestMidtransWebhook(t *testing.T) {
	h := newHarness(t)
	status, _ := h.do(t, http.MethodPost, "/api/u/payments", map[string]any{
		"payment_amount_idr":  150000,
		"payment_external_id": "ORDER-7",
	})
	require.Equal(t, http.StatusCreated, status)

	body := map[string]any{
		"order_id":           "ORDER-7",
		"status_code":        "200",
		"gross_amount":       "150000.00",
		"transaction_status": "settlement",
		"signature_key":      "not-a-signature",
	}
	status, _ = h.do(t, http.MethodPost, "/api/public/payments/midtrans/notification", body)
	assert.Equal(t, http.StatusForbidden, status)

	body["signature_key"] = service.Signature("ORDER-7", "200", "150000.00", serverKey)
	status, env := h.do(t, http.MethodPost, "/api/public/payments/midtrans/notification", body)
	require.Equal(t, http.StatusOK, status, env.Message)

	status, _ = h.do(t, http.MethodPost, "/api/public/payments/midtrans/notification", map[string]any{"order_id": ""})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = h.do(t, http.MethodGet, "/api/a/payments?status=paid", nil)
	require.Equal(t, http.StatusOK, status)
	var paid []paymentDTO
	require.NoError(t, json.Unmarshal(env.Data, &paid))
	require.Len(t, paid, 1)
	assert.Equal(t, "ORDER-7", paid[0].ExternalID)

	status, env = h.do(t, http.MethodGet, "/api/a/payments/summary", nil)
	require.Equal(t, http.StatusOK, status)
	var sum service.Summary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.EqualValues(t, 150000, sum.TotalPaidIDR)

	status, _ = h.do(t, http.MethodGet, "/api/a/payments?status=unknown", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = h.do(t, http.MethodGet, "/api/a/payments/summary?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
