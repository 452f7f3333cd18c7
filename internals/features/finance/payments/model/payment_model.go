package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusCanceled PaymentStatus = "canceled"
	PaymentStatusExpired  PaymentStatus = "expired"
)

var AllPaymentStatuses = []PaymentStatus{
	PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCanceled, PaymentStatusExpired,
}

func (s PaymentStatus) Valid() bool {
	for _, v := range AllPaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Final: status yang tidak boleh kembali ke pending.
func (s PaymentStatus) Final() bool {
	return s != PaymentStatusPending
}

type Payment struct {
	PaymentID          uuid.UUID         `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentStudentID   uuid.UUID         `gorm:"column:payment_student_id;type:uuid;not null;index" json:"payment_student_id"`
	PaymentAmountIDR   int64             `gorm:"column:payment_amount_idr;not null" json:"payment_amount_idr"`
	PaymentDescription *string           `gorm:"column:payment_description;type:varchar(255)" json:"payment_description"`
	PaymentStatus      PaymentStatus     `gorm:"column:payment_status;type:varchar(20);not null;index" json:"payment_status"`
	PaymentExternalID  string            `gorm:"column:payment_external_id;type:varchar(80);not null;uniqueIndex" json:"payment_external_id"`
	PaymentSnapToken   *string           `gorm:"column:payment_snap_token;type:varchar(255)" json:"payment_snap_token"`
	PaymentRedirectURL *string           `gorm:"column:payment_redirect_url;type:text" json:"payment_redirect_url"`
	PaymentPaidAt      *time.Time        `gorm:"column:payment_paid_at" json:"payment_paid_at"`
	PaymentMetadata    datatypes.JSONMap `gorm:"column:payment_metadata" json:"payment_metadata"`
	PaymentCreatedAt   time.Time         `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt   time.Time         `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentStatusPending
	}
	return nil
}
