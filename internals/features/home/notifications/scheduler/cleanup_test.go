package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"university_backend/internals/features/home/notifications/model"
	"university_backend/internals/features/home/notifications/service"
)

func TestCleanupRunUsesRetentionWindow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE notifications (
		notification_id text PRIMARY KEY, notification_user_id text,
		notification_kind text NOT NULL, notification_title text NOT NULL,
		notification_message text, notification_tags text,
		notification_created_at datetime, notification_updated_at datetime)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE notification_reads (
		notification_read_notification_id text NOT NULL, notification_read_user_id text NOT NULL,
		notification_read_at datetime NOT NULL,
		PRIMARY KEY (notification_read_notification_id, notification_read_user_id))`).Error)

	svc := service.NewNotificationService(db)
	now := time.Now()
	for _, age := range []int{1, 9, 12} {
		require.NoError(t, svc.Create(context.Background(), &model.NotificationModel{
			NotificationKind:      model.KindInfo,
			NotificationTitle:     "broadcast",
			NotificationCreatedAt: now.Add(-time.Duration(age) * 24 * time.Hour),
		}))
	}

	c := NewCleanup(svc, 7)
	c.now = func() time.Time { return now }

	n, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewCleanupDefaultsRetention(t *testing.T) {
	c := NewCleanup(nil, 0)
	assert.Equal(t, 30*24*time.Hour, c.Retention)
}

func TestStartRejectsBadSpec(t *testing.T) {
	_, err := Start(NewCleanup(nil, 1), "not a cron spec")
	assert.Error(t, err)
}
