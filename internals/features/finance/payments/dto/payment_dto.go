package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"university_backend/internals/features/finance/payments/model"
	"university_backend/internals/features/finance/payments/service"
)

type CustomerRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
}

type CreatePaymentRequest struct {
	PaymentAmountIDR   int64            `json:"payment_amount_idr" validate:"required,min=1000"`
	PaymentDescription *string          `json:"payment_description" validate:"omitempty,max=255"`
	PaymentExternalID  string           `json:"payment_external_id" validate:"omitempty,max=80"`
	Customer           *CustomerRequest `json:"customer"`
}

func (r CreatePaymentRequest) ToInput(studentID uuid.UUID) service.CreateInput {
	in := service.CreateInput{
		StudentID:  studentID,
		AmountIDR:  r.PaymentAmountIDR,
		ExternalID: strings.TrimSpace(r.PaymentExternalID),
	}
	if r.PaymentDescription != nil {
		if d := strings.TrimSpace(*r.PaymentDescription); d != "" {
			in.Description = &d
		}
	}
	if r.Customer != nil {
		in.Customer = service.CustomerInput{
			FirstName: strings.TrimSpace(r.Customer.FirstName),
			LastName:  strings.TrimSpace(r.Customer.LastName),
			Email:     strings.TrimSpace(r.Customer.Email),
			Phone:     strings.TrimSpace(r.Customer.Phone),
		}
	}
	return in
}

type PaymentDTO struct {
	PaymentID          uuid.UUID      `json:"payment_id"`
	PaymentStudentID   uuid.UUID      `json:"payment_student_id"`
	PaymentAmountIDR   int64          `json:"payment_amount_idr"`
	PaymentDescription *string        `json:"payment_description"`
	PaymentStatus      string         `json:"payment_status"`
	PaymentExternalID  string         `json:"payment_external_id"`
	PaymentSnapToken   *string        `json:"payment_snap_token,omitempty"`
	PaymentRedirectURL *string        `json:"payment_redirect_url,omitempty"`
	PaymentPaidAt      *time.Time     `json:"payment_paid_at"`
	PaymentMetadata    map[string]any `json:"payment_metadata"`
	PaymentCreatedAt   time.Time      `json:"payment_created_at"`
	PaymentUpdatedAt   time.Time      `json:"payment_updated_at"`
}

func ToPaymentDTO(p model.Payment) PaymentDTO {
	meta := map[string]any(p.PaymentMetadata)
	if meta == nil {
		meta = map[string]any{}
	}
	return PaymentDTO{
		PaymentID:          p.PaymentID,
		PaymentStudentID:   p.PaymentStudentID,
		PaymentAmountIDR:   p.PaymentAmountIDR,
		PaymentDescription: p.PaymentDescription,
		PaymentStatus:      string(p.PaymentStatus),
		PaymentExternalID:  p.PaymentExternalID,
		PaymentSnapToken:   p.PaymentSnapToken,
		PaymentRedirectURL: p.PaymentRedirectURL,
		PaymentPaidAt:      p.PaymentPaidAt,
		PaymentMetadata:    meta,
		PaymentCreatedAt:   p.PaymentCreatedAt,
		PaymentUpdatedAt:   p.PaymentUpdatedAt,
	}
}

func ToPaymentDTOs(rows []model.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToPaymentDTO(r))
	}
	return out
}
