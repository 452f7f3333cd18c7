package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"university_backend/internals/databases"
	"university_backend/internals/features/finance/payments/model"
	notifModel "university_backend/internals/features/home/notifications/model"
	"university_backend/internals/helpers/metrics"
)

var (
	ErrGatewayDisabled     = errors.New("payment gateway is not configured")
	ErrDuplicateExternalID = errors.New("payment external_id already exists")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvalidSignature    = errors.New("invalid notification signature")
	ErrAmountMismatch      = errors.New("gross_amount does not match payment")
)

// GatewayError: gateway menolak / gagal membuat transaksi.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string { return "payment gateway: " + e.Err.Error() }
func (e *GatewayError) Unwrap() error { return e.Err }

// StudentNotifier: kirim notifikasi inbox ke mahasiswa.
type StudentNotifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, kind notifModel.NotificationKind, title, message string, tags ...string) error
}

type PaymentService struct {
	DB        *gorm.DB
	Gateway   Gateway
	ServerKey string
	Notifier  StudentNotifier
	now       func() time.Time
}

func NewPaymentService(db *gorm.DB, gateway Gateway, serverKey string, notifier StudentNotifier) *PaymentService {
	return &PaymentService{DB: db, Gateway: gateway, ServerKey: serverKey, Notifier: notifier, now: time.Now}
}

type CreateInput struct {
	StudentID   uuid.UUID
	AmountIDR   int64
	Description *string
	ExternalID  string
	Customer    CustomerInput
}

// NewExternalID: order id Midtrans, unik per payment.
func NewExternalID(now time.Time) string {
	return "UNIV-" + now.Format("20060102") + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// Create menyimpan payment pending lalu meminta Snap token.
// Jika gateway gagal, payment ditandai failed dan *GatewayError dikembalikan bersama payment-nya.
func (s *PaymentService) Create(ctx context.Context, in CreateInput) (*model.Payment, error) {
	if s.Gateway == nil {
		return nil, ErrGatewayDisabled
	}

	extID := strings.TrimSpace(in.ExternalID)
	if extID == "" {
		extID = NewExternalID(s.now())
	}

	var exists int64
	if err := s.DB.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_external_id = ?", extID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrDuplicateExternalID
	}

	p := &model.Payment{
		PaymentStudentID:   in.StudentID,
		PaymentAmountIDR:   in.AmountIDR,
		PaymentDescription: in.Description,
		PaymentStatus:      model.PaymentStatusPending,
		PaymentExternalID:  extID,
		PaymentMetadata:    datatypes.JSONMap{},
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if database.IsUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateExternalID
		}
		return nil, err
	}

	token, redirectURL, err := s.Gateway.CreateTransaction(*p, in.Customer)
	if err != nil {
		log.Printf("[ERROR] midtrans create transaction order=%s: %v", extID, err)
		p.PaymentStatus = model.PaymentStatusFailed
		p.PaymentMetadata["gateway_error"] = err.Error()
		if uerr := s.DB.WithContext(ctx).Model(p).Updates(map[string]any{
			"payment_status":   p.PaymentStatus,
			"payment_metadata": p.PaymentMetadata,
		}).Error; uerr != nil {
			log.Printf("[ERROR] mark payment failed %s: %v", p.PaymentID, uerr)
		}
		return p, &GatewayError{Err: err}
	}

	p.PaymentSnapToken = &token
	p.PaymentRedirectURL = &redirectURL
	if err := s.DB.WithContext(ctx).Model(p).Updates(map[string]any{
		"payment_snap_token":   token,
		"payment_redirect_url": redirectURL,
	}).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// HandleNotification memproses webhook Midtrans. Status final tidak pernah berubah lagi,
// dan notifikasi ulang dengan status sama tidak mengirim pemberitahuan kedua.
func (s *PaymentService) HandleNotification(ctx context.Context, n MidtransNotification, raw []byte) (*model.Payment, error) {
	ev := &model.PaymentGatewayEventModel{
		GatewayEventProvider: "midtrans",
		GatewayEventOrderID:  n.OrderID,
		GatewayEventType:     n.TransactionStatus,
		GatewayEventPayload:  datatypes.JSON(raw),
		GatewayEventStatus:   model.GatewayEventReceived,
	}
	defer s.recordEvent(ctx, ev)

	if !VerifySignature(n, s.ServerKey) {
		return nil, s.reject(ev, ErrInvalidSignature)
	}

	var p model.Payment
	if err := s.DB.WithContext(ctx).Where("payment_external_id = ?", n.OrderID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.reject(ev, ErrPaymentNotFound)
		}
		return nil, s.reject(ev, err)
	}
	ev.GatewayEventPaymentID = &p.PaymentID

	if !grossMatches(n.GrossAmount, p.PaymentAmountIDR) {
		return nil, s.reject(ev, ErrAmountMismatch)
	}

	next, ok := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		log.Printf("[INFO] Status tidak diproses: order=%s status=%s", n.OrderID, n.TransactionStatus)
		ev.GatewayEventStatus = model.GatewayEventIgnored
		return &p, nil
	}
	if next == p.PaymentStatus || p.PaymentStatus.Final() {
		ev.GatewayEventStatus = model.GatewayEventIgnored
		return &p, nil
	}

	meta := datatypes.JSONMap{}
	for k, v := range p.PaymentMetadata {
		meta[k] = v
	}
	meta["transaction_status"] = n.TransactionStatus
	if n.TransactionID != "" {
		meta["transaction_id"] = n.TransactionID
	}
	if n.PaymentType != "" {
		meta["payment_type"] = n.PaymentType
	}

	updates := map[string]any{
		"payment_status":   next,
		"payment_metadata": meta,
	}
	if next == model.PaymentStatusPaid {
		now := s.now()
		p.PaymentPaidAt = &now
		updates["payment_paid_at"] = now
	}
	// guard status lama supaya dua webhook paralel tidak sama-sama menang
	res := s.DB.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_id = ? AND payment_status = ?", p.PaymentID, p.PaymentStatus).
		Updates(updates)
	if res.Error != nil {
		return nil, s.reject(ev, res.Error)
	}
	if res.RowsAffected == 0 {
		ev.GatewayEventStatus = model.GatewayEventIgnored
		return &p, nil
	}

	p.PaymentStatus = next
	p.PaymentMetadata = meta
	ev.GatewayEventStatus = model.GatewayEventProcessed
	metrics.PaymentNotifications.WithLabelValues(string(next)).Inc()
	s.notifyStudent(ctx, p)
	return &p, nil
}

func (s *PaymentService) reject(ev *model.PaymentGatewayEventModel, err error) error {
	ev.GatewayEventStatus = model.GatewayEventRejected
	msg := err.Error()
	ev.GatewayEventError = &msg
	return err
}

func (s *PaymentService) recordEvent(ctx context.Context, ev *model.PaymentGatewayEventModel) {
	if err := s.DB.WithContext(context.WithoutCancel(ctx)).Create(ev).Error; err != nil {
		log.Printf("[ERROR] simpan payment_gateway_event order=%s: %v", ev.GatewayEventOrderID, err)
	}
}

func (s *PaymentService) notifyStudent(ctx context.Context, p model.Payment) {
	if s.Notifier == nil {
		return
	}
	kind := notifModel.KindError
	title := "Pembayaran gagal"
	switch p.PaymentStatus {
	case model.PaymentStatusPending:
		return
	case model.PaymentStatusPaid:
		kind = notifModel.KindSuccess
		title = "Pembayaran berhasil"
	case model.PaymentStatusExpired:
		title = "Pembayaran kedaluwarsa"
	case model.PaymentStatusCanceled:
		title = "Pembayaran dibatalkan"
	}
	msg := fmt.Sprintf("Order %s sebesar Rp%d: %s", p.PaymentExternalID, p.PaymentAmountIDR, p.PaymentStatus)
	if err := s.Notifier.NotifyUser(context.WithoutCancel(ctx), p.PaymentStudentID, kind, title, msg, "payment"); err != nil {
		log.Printf("[ERROR] notify student %s: %v", p.PaymentStudentID, err)
	}
}

type StatusCount struct {
	Status    model.PaymentStatus `gorm:"column:status" json:"status"`
	Count     int64               `gorm:"column:count" json:"count"`
	AmountIDR int64               `gorm:"column:amount_idr" json:"amount_idr"`
}

type Summary struct {
	ByStatus      []StatusCount `json:"by_status"`
	TotalPayments int64         `json:"total_payments"`
	TotalPaidIDR  int64         `json:"total_paid_idr"`
	AvgPaidIDR    float64       `json:"avg_paid_idr"`
}

// Summary: kartu dashboard admin. from/to opsional (filter created_at).
func (s *PaymentService) Summary(ctx context.Context, from, to *time.Time) (Summary, error) {
	q := s.DB.WithContext(ctx).Model(&model.Payment{})
	if from != nil {
		q = q.Where("payment_created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("payment_created_at < ?", *to)
	}

	var rows []StatusCount
	if err := q.Select("payment_status AS status, COUNT(*) AS count, COALESCE(SUM(payment_amount_idr), 0) AS amount_idr").
		Group("payment_status").
		Scan(&rows).Error; err != nil {
		return Summary{}, err
	}

	byStatus := make(map[model.PaymentStatus]StatusCount, len(rows))
	for _, r := range rows {
		byStatus[r.Status] = r
	}

	out := Summary{ByStatus: make([]StatusCount, 0, len(model.AllPaymentStatuses))}
	for _, st := range model.AllPaymentStatuses {
		r := byStatus[st]
		r.Status = st
		out.ByStatus = append(out.ByStatus, r)
		out.TotalPayments += r.Count
	}
	paid := byStatus[model.PaymentStatusPaid]
	out.TotalPaidIDR = paid.AmountIDR
	if paid.Count > 0 {
		out.AvgPaidIDR = float64(paid.AmountIDR) / float64(paid.Count)
	}
	return out, nil
}
