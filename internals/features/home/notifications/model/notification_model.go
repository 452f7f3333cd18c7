package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo:
		return true
	}
	return false
}

// NotificationModel: notifikasi untuk satu user, atau broadcast jika NotificationUserID nil.
type NotificationModel struct {
	NotificationID        uuid.UUID        `gorm:"column:notification_id;primaryKey;type:uuid" json:"notification_id"`
	NotificationUserID    *uuid.UUID       `gorm:"column:notification_user_id;type:uuid;index" json:"notification_user_id"` // nullable → broadcast
	NotificationKind      NotificationKind `gorm:"column:notification_kind;type:varchar(20);not null" json:"notification_kind"`
	NotificationTitle     string           `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage   string           `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationTags      pq.StringArray   `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationCreatedAt time.Time        `gorm:"column:notification_created_at;autoCreateTime;index" json:"notification_created_at"`
	NotificationUpdatedAt time.Time        `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}

// NotificationReadModel: tanda baca per user (berlaku juga untuk broadcast).
type NotificationReadModel struct {
	NotificationReadNotificationID uuid.UUID `gorm:"column:notification_read_notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationReadUserID         uuid.UUID `gorm:"column:notification_read_user_id;type:uuid;primaryKey" json:"user_id"`
	NotificationReadAt             time.Time `gorm:"column:notification_read_at;not null" json:"read_at"`
}

func (NotificationReadModel) TableName() string {
	return "notification_reads"
}
