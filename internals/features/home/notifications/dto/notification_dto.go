package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"university_backend/internals/features/home/notifications/model"
)

type CreateNotificationRequest struct {
	NotificationUserID  *uuid.UUID `json:"notification_user_id"` // kosong = broadcast
	NotificationKind    string     `json:"notification_kind" validate:"required,oneof=success error info"`
	NotificationTitle   string     `json:"notification_title" validate:"required,max=255"`
	NotificationMessage string     `json:"notification_message" validate:"omitempty,max=4000"`
	NotificationTags    []string   `json:"notification_tags" validate:"omitempty,max=10,dive,max=40"`
}

type NotificationDTO struct {
	NotificationID        uuid.UUID  `json:"notification_id"`
	NotificationUserID    *uuid.UUID `json:"notification_user_id"`
	NotificationKind      string     `json:"notification_kind"`
	NotificationTitle     string     `json:"notification_title"`
	NotificationMessage   string     `json:"notification_message"`
	NotificationTags      []string   `json:"notification_tags"`
	NotificationCreatedAt time.Time  `json:"notification_created_at"`
	NotificationReadAt    *time.Time `json:"notification_read_at,omitempty"`
	NotificationIsRead    bool       `json:"notification_is_read"`
}

func (r CreateNotificationRequest) ToModel() *model.NotificationModel {
	tags := make(pq.StringArray, 0, len(r.NotificationTags))
	for _, t := range r.NotificationTags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return &model.NotificationModel{
		NotificationUserID:  r.NotificationUserID,
		NotificationKind:    model.NotificationKind(r.NotificationKind),
		NotificationTitle:   strings.TrimSpace(r.NotificationTitle),
		NotificationMessage: strings.TrimSpace(r.NotificationMessage),
		NotificationTags:    tags,
	}
}

func ToNotificationDTO(m model.NotificationModel, readAt *time.Time) NotificationDTO {
	tags := []string(m.NotificationTags)
	if tags == nil {
		tags = []string{}
	}
	return NotificationDTO{
		NotificationID:        m.NotificationID,
		NotificationUserID:    m.NotificationUserID,
		NotificationKind:      string(m.NotificationKind),
		NotificationTitle:     m.NotificationTitle,
		NotificationMessage:   m.NotificationMessage,
		NotificationTags:      tags,
		NotificationCreatedAt: m.NotificationCreatedAt,
		NotificationReadAt:    readAt,
		NotificationIsRead:    readAt != nil,
	}
}
