package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = log webhook dari gateway
  - bisa banyak row per payment (tiap notifikasi)
  - payload mentah disimpan untuk debug / replay
*/

type GatewayEventStatus string

const (
	GatewayEventReceived  GatewayEventStatus = "received"
	GatewayEventProcessed GatewayEventStatus = "processed"
	GatewayEventIgnored   GatewayEventStatus = "ignored"
	GatewayEventRejected  GatewayEventStatus = "rejected"
)

type PaymentGatewayEventModel struct {
	GatewayEventID        uuid.UUID          `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`
	GatewayEventPaymentID *uuid.UUID         `gorm:"column:gateway_event_payment_id;type:uuid;index" json:"gateway_event_payment_id"`
	GatewayEventProvider  string             `gorm:"column:gateway_event_provider;type:varchar(30);not null" json:"gateway_event_provider"`
	GatewayEventOrderID   string             `gorm:"column:gateway_event_order_id;type:varchar(80)" json:"gateway_event_order_id"`
	GatewayEventType      string             `gorm:"column:gateway_event_type;type:varchar(40)" json:"gateway_event_type"`
	GatewayEventPayload   datatypes.JSON     `gorm:"column:gateway_event_payload" json:"gateway_event_payload"`
	GatewayEventStatus    GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(20);not null" json:"gateway_event_status"`
	GatewayEventError     *string            `gorm:"column:gateway_event_error" json:"gateway_event_error"`
	GatewayEventCreatedAt time.Time          `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`
}

func (PaymentGatewayEventModel) TableName() string {
	return "payment_gateway_events"
}

func (e *PaymentGatewayEventModel) BeforeCreate(tx *gorm.DB) error {
	if e.GatewayEventID == uuid.Nil {
		e.GatewayEventID = uuid.New()
	}
	return nil
}
