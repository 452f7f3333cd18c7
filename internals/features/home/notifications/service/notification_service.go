package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"university_backend/internals/features/home/notifications/dto"
	"university_backend/internals/features/home/notifications/model"
	orderingService "university_backend/internals/features/ordering/service"
)

var ErrNotFound = errors.New("notification not found")

const purgeBatchSize = 500

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) Create(ctx context.Context, n *model.NotificationModel) error {
	if !n.NotificationKind.Valid() {
		return fmt.Errorf("invalid notification kind %q", n.NotificationKind)
	}
	return s.DB.WithContext(ctx).Create(n).Error
}

// NotifyUser: shortcut membuat notifikasi untuk satu user.
func (s *NotificationService) NotifyUser(ctx context.Context, userID uuid.UUID, kind model.NotificationKind, title, message string, tags ...string) error {
	uid := userID
	return s.Create(ctx, &model.NotificationModel{
		NotificationUserID:  &uid,
		NotificationKind:    kind,
		NotificationTitle:   title,
		NotificationMessage: message,
		NotificationTags:    pq.StringArray(tags),
	})
}

type ListFilter struct {
	UnreadOnly bool
	Kind       string
	Offset     int
	Limit      int
}

type notificationRow struct {
	model.NotificationModel `gorm:"embedded"`
	ReadAt                  *time.Time `gorm:"column:read_at"`
}

func (s *NotificationService) visibleTo(ctx context.Context, userID uuid.UUID, f ListFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).
		Table("notifications AS n").
		Joins("LEFT JOIN notification_reads r ON r.notification_read_notification_id = n.notification_id AND r.notification_read_user_id = ?", userID).
		Where("n.notification_user_id = ? OR n.notification_user_id IS NULL", userID)
	if f.UnreadOnly {
		q = q.Where("r.notification_read_at IS NULL")
	}
	if f.Kind != "" {
		q = q.Where("n.notification_kind = ?", f.Kind)
	}
	return q
}

// ListForUser: notifikasi milik user + broadcast, terbaru dulu, dengan status baca.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, f ListFilter) ([]dto.NotificationDTO, int64, error) {
	var total int64
	if err := s.visibleTo(ctx, userID, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []notificationRow
	if err := s.visibleTo(ctx, userID, f).
		Select("n.*, r.notification_read_at AS read_at").
		Order("n.notification_created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]dto.NotificationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToNotificationDTO(r.NotificationModel, r.ReadAt))
	}
	return out, total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.visibleTo(ctx, userID, ListFilter{UnreadOnly: true}).Count(&n).Error
	return n, err
}

// ListAll (admin): semua notifikasi, terbaru dulu.
func (s *NotificationService) ListAll(ctx context.Context, f ListFilter) ([]model.NotificationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.NotificationModel{})
	if f.Kind != "" {
		q = q.Where("notification_kind = ?", f.Kind)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.NotificationModel
	err := q.Order("notification_created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error
	return rows, total, err
}

// MarkRead idempoten; notifikasi harus terlihat oleh user.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ?", notificationID).
		Where("notification_user_id = ? OR notification_user_id IS NULL", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	read := model.NotificationReadModel{
		NotificationReadNotificationID: notificationID,
		NotificationReadUserID:         userID,
		NotificationReadAt:             time.Now(),
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&read).Error
}

// PurgeBefore menghapus notifikasi lama: broadcast, atau personal yang sudah dibaca.
func (s *NotificationService) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for {
		var ids []uuid.UUID
		if err := s.DB.WithContext(ctx).
			Table("notifications AS n").
			Where("n.notification_created_at < ?", cutoff).
			Where("n.notification_user_id IS NULL OR EXISTS (SELECT 1 FROM notification_reads r WHERE r.notification_read_notification_id = n.notification_id)").
			Limit(purgeBatchSize).
			Pluck("n.notification_id", &ids).Error; err != nil {
			return purged, err
		}
		if len(ids) == 0 {
			return purged, nil
		}

		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("notification_read_notification_id IN ?", ids).Delete(&model.NotificationReadModel{}).Error; err != nil {
				return err
			}
			res := tx.Where("notification_id IN ?", ids).Delete(&model.NotificationModel{})
			purged += res.RowsAffected
			return res.Error
		})
		if err != nil {
			return purged, err
		}
		if len(ids) < purgeBatchSize {
			return purged, nil
		}
	}
}

// ForUser: notifier untuk ListAdapter. Sukses cukup di-log; gagal disimpan ke inbox admin.
func (s *NotificationService) ForUser(userID uuid.UUID) orderingService.Notifier {
	return orderingService.NotifierFunc(func(ctx context.Context, kind orderingService.NotifyKind, message string) {
		log.Printf("[NOTIFY] user=%s kind=%s %s", userID, kind, message)
		if kind != orderingService.NotifyError {
			return
		}
		if err := s.NotifyUser(context.WithoutCancel(ctx), userID, model.KindError, "Reorder failed", message, "ordering"); err != nil {
			log.Printf("[ERROR] simpan notifikasi reorder: %v", err)
		}
	})
}
